package monitor

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

type MIDIModel Model

func (m *Model) MIDI() *MIDIModel { return (*MIDIModel)(m) }

type (
	midiState struct {
		currentInput MIDIInputDevice
		context      MIDIContext
		inputs       []MIDIInputDevice
	}

	// MIDIContext lists the MIDI input devices. The devices deliver their
	// events as MIDIControl messages to Broker.ToModel.
	MIDIContext interface {
		Inputs(yield func(input MIDIInputDevice) bool)
		Close()
		Support() MIDISupport
	}

	MIDIInputDevice interface {
		Open() error
		Close() error
		IsOpen() bool
		String() string
	}

	MIDISupport int

	// MIDIControl is a remote control event decoded from MIDI: transport
	// messages start and stop the playback, a controller scrubs and notes step
	// through the states.
	MIDIControl struct {
		Kind  MIDIControlKind
		Value int // controller value 0..127 for MIDIScrub
	}

	MIDIControlKind int
)

const (
	MIDISupportNotCompiled MIDISupport = iota
	MIDISupportNoDriver
	MIDISupported
)

const (
	MIDIStart MIDIControlKind = iota
	MIDIStop
	MIDIContinue
	MIDIScrub
	MIDIStepLeft
	MIDIStepRight
)

// Refresh returns an Action to rescan the MIDI input devices. If the open
// device is still present under the same name, it is reopened.
func (m *MIDIModel) Refresh() Action { return MakeAction((*midiRefresh)(m)) }

type midiRefresh MIDIModel

func (m *midiRefresh) Enabled() bool { return m.midi.context != nil }
func (m *midiRefresh) Do() {
	openName := ""
	if m.midi.currentInput != nil {
		openName = m.midi.currentInput.String()
		m.midi.currentInput.Close()
		m.midi.currentInput = nil
	}
	m.midi.inputs = slices.Collect(m.midi.context.Inputs)
	if openName == "" {
		return
	}
	i := slices.IndexFunc(m.midi.inputs, func(d MIDIInputDevice) bool { return d.String() == openName })
	if i < 0 {
		(*Model)(m).Alerts().Add(fmt.Sprintf("MIDI input port %s disappeared", openName), Warning)
		return
	}
	if err := m.midi.inputs[i].Open(); err != nil {
		(*Model)(m).Alerts().Add(fmt.Sprintf("Failed to reopen MIDI input port %s: %v", openName, err), Error)
		return
	}
	m.midi.currentInput = m.midi.inputs[i]
}

// Input returns an Int selecting the open MIDI input device. The value 0
// means that all devices are closed and n > 0 opens the n-th device found by
// the last Refresh.
func (m *MIDIModel) Input() Int { return MakeInt((*midiInput)(m)) }

type midiInput MIDIModel

func (m *midiInput) Range() RangeInclusive { return RangeInclusive{0, len(m.midi.inputs)} }
func (m *midiInput) Value() int {
	return slices.Index(m.midi.inputs, m.midi.currentInput) + 1
}
func (m *midiInput) SetValue(val int) bool {
	alerts := (*Model)(m).Alerts()
	if cur := m.midi.currentInput; cur != nil {
		m.midi.currentInput = nil
		if err := cur.Close(); err != nil {
			alerts.Add(fmt.Sprintf("Failed to close MIDI input port %s: %v", cur, err), Error)
		}
	}
	if val == 0 {
		return true
	}
	dev := m.midi.inputs[val-1]
	if err := dev.Open(); err != nil {
		alerts.Add(fmt.Sprintf("Failed to open MIDI input port %s: %v", dev, err), Error)
		return false
	}
	m.midi.currentInput = dev
	alerts.Add(fmt.Sprintf("Opened MIDI input port: %s", dev), Info)
	return true
}
func (m *midiInput) StringOf(value int) string {
	switch {
	case value > 0 && value <= len(m.midi.inputs):
		return m.midi.inputs[value-1].String()
	case value != 0:
		return ""
	case m.midi.context == nil:
		return "Not compiled"
	}
	switch m.midi.context.Support() {
	case MIDISupportNoDriver:
		return "No driver"
	case MIDISupported:
		return "Closed"
	default:
		return "Not compiled"
	}
}

// OpenByPrefix opens the first MIDI input whose name starts with prefix. An
// empty prefix opens nothing. Returns false if no device matched.
func (m *MIDIModel) OpenByPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	m.Refresh().Do()
	for i, d := range m.midi.inputs {
		if strings.HasPrefix(d.String(), prefix) {
			return m.Input().Value() == i+1 || m.Input().SetValue(i+1)
		}
	}
	(*Model)(m).Alerts().Add(fmt.Sprintf("Could not find a MIDI input starting with %q", prefix), Warning)
	return false
}

func (m *MIDIModel) handleControl(c MIDIControl) {
	model := (*Model)(m)
	switch c.Kind {
	case MIDIStart, MIDIContinue:
		model.Play().Start().Do()
	case MIDIStop:
		model.Play().Pause().Do()
	case MIDIStepLeft:
		model.Play().StepLeft().Do()
	case MIDIStepRight:
		model.Play().StepRight().Do()
	case MIDIScrub:
		last := m.recording.Len() - 1
		if last < 1 {
			return
		}
		v := max(min(c.Value, 127), 0)
		model.Index().SetValue(int(math.Round(float64(v) * float64(last) / 127)))
	}
}

// NullMIDIContext is a mockup MIDIContext if you don't want to create a real
// one.
type NullMIDIContext struct{}

func (m NullMIDIContext) Inputs(yield func(input MIDIInputDevice) bool) {}
func (m NullMIDIContext) Close()                                        {}
func (m NullMIDIContext) Support() MIDISupport                          { return MIDISupportNotCompiled }
