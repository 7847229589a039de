// Package monitor contains the host-agnostic model of the state history
// monitor: the recording being inspected, the index of the current state, the
// slider scrubbing it and the sequencer replaying it. The GUIs in the
// subpackages only render the model and call its Actions, Bools and Ints.
package monitor

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/vsariola/slidermon"
	"github.com/vsariola/slidermon/slider"
	"gopkg.in/yaml.v3"
)

type (
	// Model is the monitor model. It is not safe for concurrent use: it should
	// be owned by a single goroutine (e.g. the GUI loop), and other goroutines
	// communicate with it through the Broker.
	Model struct {
		recording slidermon.Recording
		filePath  string
		index     int

		sequencer *Sequencer
		slider    *slider.Slider
		source    slider.EventSource

		broker *Broker
		alerts Alerts
		midi   midiState
	}

	// IndexChanged is sent to Broker.ToGUI whenever the current state
	// changes, so GUIs that are not redrawn continuously can refresh.
	IndexChanged struct {
		Index int
	}

	// sequencerHost adapts the Model to the SequencerHost interface.
	sequencerHost Model
)

// NewModel creates a model showing the given recording. The scheduler is
// used for the playback timers; BrokerScheduler{broker} is the usual choice.
func NewModel(broker *Broker, scheduler Scheduler, midiContext MIDIContext, recording slidermon.Recording) *Model {
	m := &Model{broker: broker}
	m.midi.context = midiContext
	m.sequencer = NewSequencer((*sequencerHost)(m), scheduler)
	m.setRecording(recording, "")
	return m
}

// Broker returns the broker the model was created with.
func (m *Model) Broker() *Broker { return m.broker }

// Recording returns the recording being shown. It must not be modified.
func (m *Model) Recording() *slidermon.Recording { return &m.recording }

// FilePath returns the path the recording was loaded from, if any.
func (m *Model) FilePath() string { return m.filePath }

// Step returns the currently shown step of the recording.
func (m *Model) Step() (slidermon.Step, bool) {
	if m.index < 0 || m.index >= m.recording.Len() {
		return slidermon.Step{}, false
	}
	return m.recording.Steps[m.index], true
}

// Slider returns the slider scrubbing the recording. The slider is replaced
// whenever a new recording is loaded.
func (m *Model) Slider() *slider.Slider { return m.slider }

// Sequencer returns the sequencer replaying the recording.
func (m *Model) Sequencer() *Sequencer { return m.sequencer }

// Mount subscribes the slider of the model to the event source. The sliders
// created later for new recordings are mounted to the same source.
func (m *Model) Mount(src slider.EventSource) error {
	m.source = src
	return m.slider.Mount(src)
}

// Close unmounts the slider and closes the MIDI context.
func (m *Model) Close() {
	m.sequencer.Pause()
	m.slider.Close()
	if m.midi.context != nil {
		m.midi.context.Close()
	}
}

// ProcessMsg handles a message sent to the model through the broker.
func (m *Model) ProcessMsg(msg MsgToModel) {
	switch d := msg.Data.(type) {
	case func():
		d()
	case MIDIControl:
		m.MIDI().handleControl(d)
	case *slidermon.Recording:
		m.setRecording(*d, "")
	case slidermon.Recording:
		m.setRecording(d, "")
	}
}

// Index returns an Int controlling the index of the current state. Setting
// it pauses the playback.
func (m *Model) Index() Int { return MakeInt((*modelIndex)(m)) }

type modelIndex Model

func (v *modelIndex) Value() int { return v.index }
func (v *modelIndex) Range() RangeInclusive {
	return RangeInclusive{0, max(v.recording.Len()-1, 0)}
}
func (v *modelIndex) SetValue(value int) bool {
	v.sequencer.Pause()
	(*Model)(v).jumpTo(value)
	return true
}
func (v *modelIndex) StringOf(value int) string {
	if value < 0 || value >= v.recording.Len() {
		return "-"
	}
	return fmt.Sprintf("%d/%d %s", value+1, v.recording.Len(), v.recording.Steps[value].Action)
}

// Reset returns an Action that truncates the recording to its first state,
// pauses the playback and jumps to the beginning.
func (m *Model) Reset() Action { return MakeAction((*resetRecording)(m)) }

type resetRecording Model

func (m *resetRecording) Enabled() bool { return m.recording.Len() > 1 }
func (m *resetRecording) Do() {
	m.sequencer.Pause()
	(*Model)(m).setRecording(m.recording.Truncate(1), m.filePath)
	(*Model)(m).Alerts().AddNamed("Reset", "Recording reset to the initial state", Info)
}

// ReadRecording reads a recording from r, trying to parse it both as json
// and yaml. Errors are reported as alerts.
func (m *Model) ReadRecording(r io.ReadCloser) {
	rec, err := slidermon.ReadRecording(r)
	if cerr := r.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error reading a recording: %v", err), Error)
		return
	}
	path := ""
	if f, ok := r.(*os.File); ok {
		path = f.Name()
	}
	m.sequencer.Pause()
	m.setRecording(rec, path)
	m.Alerts().Add(fmt.Sprintf("Loaded %d states", rec.Len()), Info)
}

// WriteRecording writes the recording to w. If w is an os.File with the
// extension ".json", the recording is marshaled as json; otherwise, as yaml.
func (m *Model) WriteRecording(w io.WriteCloser) {
	asJSON := false
	if f, ok := w.(*os.File); ok {
		asJSON = filepath.Ext(f.Name()) == ".json"
	}
	contents, err := slidermon.MarshalRecording(&m.recording, asJSON)
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error marshaling a recording: %v", err), Error)
		return
	}
	if _, err := w.Write(contents); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error writing to file: %v", err), Error)
		return
	}
	if err := w.Close(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error closing the recording file: %v", err), Error)
	}
}

// StateText returns the state of the current step formatted as yaml, or
// json if asJSON is true.
func (m *Model) StateText(asJSON bool) string {
	step, ok := m.Step()
	if !ok || step.State == nil {
		return ""
	}
	var b []byte
	var err error
	if asJSON {
		b, err = json.MarshalIndent(step.State, "", "  ")
	} else {
		b, err = yaml.Marshal(step.State)
	}
	if err != nil {
		return err.Error()
	}
	return string(b)
}

func (m *Model) setRecording(rec slidermon.Recording, path string) {
	m.recording = rec
	m.filePath = path
	m.index = 0
	last := rec.Len() - 1
	cfg := slider.DefaultConfig()
	cfg.Max = float64(max(last, 1))
	cfg.DefaultValue = []float64{0}
	cfg.Disabled = last < 1
	s, err := slider.New(cfg, slider.Callbacks{
		OnBeforeChange: func(slidermon.Value) { m.sequencer.Pause() },
		OnChange:       m.sliderChanged,
	})
	if err != nil {
		// cannot happen: the axis is always [0, max(last, 1)] with step 1
		m.Alerts().Add(fmt.Sprintf("Could not create the slider: %v", err), Error)
		return
	}
	var geometry slider.Geometry
	if m.slider != nil {
		geometry = m.slider.Geometry()
		m.slider.Close()
	}
	m.slider = s
	m.slider.SetGeometry(geometry)
	if m.source != nil {
		if err := m.slider.Mount(m.source); err != nil {
			m.Alerts().Add(fmt.Sprintf("Could not mount the slider: %v", err), Error)
		}
	}
	TrySend(m.broker.ToGUI, any(IndexChanged{m.index}))
}

func (m *Model) sliderChanged(v slidermon.Value) {
	m.sequencer.Pause()
	i := int(math.Round(v.Float()))
	if i == m.index {
		return
	}
	m.index = i
	TrySend(m.broker.ToGUI, any(IndexChanged{m.index}))
}

// canStart reports whether the playback may start: there is somewhere to
// go and the user is not dragging the slider, which owns the index until
// released.
func (m *Model) canStart() bool {
	if m.recording.Len() < 2 {
		return false
	}
	st, _ := m.slider.State()
	return st == slider.Idle
}

// jumpTo moves to the i-th state and moves the slider along.
func (m *Model) jumpTo(i int) {
	i = max(min(i, m.recording.Len()-1), 0)
	m.index = i
	m.slider.SetValue(slidermon.ScalarValue(float64(i)))
	TrySend(m.broker.ToGUI, any(IndexChanged{m.index}))
}

func (h *sequencerHost) StepCount() int                { return h.recording.Len() }
func (h *sequencerHost) CurrentIndex() int             { return h.index }
func (h *sequencerHost) Timestamp(i int) time.Duration { return h.recording.Timestamp(i) }
func (h *sequencerHost) JumpTo(i int)                  { (*Model)(h).jumpTo(i) }
