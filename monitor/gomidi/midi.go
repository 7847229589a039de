// Package gomidi implements monitor.MIDIContext on top of the rtmidi driver
// of gitlab.com/gomidi/midi, turning the messages of a MIDI controller into
// monitor.MIDIControl remote control events.
package gomidi

import (
	"errors"
	"fmt"
	"log"

	"github.com/vsariola/slidermon/monitor"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	RTMIDIContext struct {
		driver             *rtmididrv.Driver
		currentIn          drivers.In
		stopListening      func()
		inputDevices       []*RTMIDIDevice
		devicesInitialized bool
		broker             *monitor.Broker
		mapping            Mapping
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}

	// Mapping tells which controller scrubs the recording and which notes
	// step through it. Transport messages (start, stop, continue) are always
	// recognized.
	Mapping struct {
		Channel       int   `yaml:"channel"` // 0-15, or -1 for any channel
		ScrubControl  uint8 `yaml:"scrubcontrol"`
		StepLeftNote  uint8 `yaml:"stepleftnote"`
		StepRightNote uint8 `yaml:"steprightnote"`
	}
)

const (
	realtimeStart    = 0xFA
	realtimeContinue = 0xFB
	realtimeStop     = 0xFC
)

// DefaultMapping scrubs with the modulation wheel and steps with C4 and D4
// on any channel.
var DefaultMapping = Mapping{Channel: -1, ScrubControl: 1, StepLeftNote: 60, StepRightNote: 62}

// NewContext opens the driver. The decoded events are sent to
// broker.ToModel.
func NewContext(broker *monitor.Broker) *RTMIDIContext {
	m := RTMIDIContext{broker: broker, mapping: DefaultMapping}
	// there's not much we can do if this fails, so just use m.driver = nil to
	// indicate no driver available
	m.driver, _ = rtmididrv.New()
	return &m
}

// SetMapping changes the mapping of the controller messages.
func (m *RTMIDIContext) SetMapping(mapping Mapping) { m.mapping = mapping }

func (m *RTMIDIContext) Inputs(yield func(monitor.MIDIInputDevice) bool) {
	if !m.devicesInitialized {
		m.initInputDevices()
	}
	for _, device := range m.inputDevices {
		if !yield(device) {
			break
		}
	}
}

func (m *RTMIDIContext) initInputDevices() {
	if m.driver == nil {
		return
	}
	ins, err := m.driver.Ins()
	if err != nil {
		log.Printf("gomidi: listing MIDI inputs failed: %v", err)
		return
	}
	for _, in := range ins {
		m.inputDevices = append(m.inputDevices, &RTMIDIDevice{context: m, in: in})
	}
	m.devicesInitialized = true
}

func (m *RTMIDIContext) Support() monitor.MIDISupport {
	if m.driver == nil {
		return monitor.MIDISupportNoDriver
	}
	return monitor.MIDISupported
}

func (c *RTMIDIContext) Close() {
	if c.driver == nil {
		return
	}
	c.closeCurrent()
	c.driver.Close()
}

func (c *RTMIDIContext) closeCurrent() error {
	if c.stopListening != nil {
		c.stopListening()
		c.stopListening = nil
	}
	in := c.currentIn
	c.currentIn = nil
	if in != nil && in.IsOpen() {
		return in.Close()
	}
	return nil
}

// Open an input device while closing the currently open if necessary.
func (d *RTMIDIDevice) Open() error {
	if d.context.currentIn == d.in {
		return nil
	}
	if d.context.driver == nil {
		return errors.New("no driver available")
	}
	d.context.closeCurrent()
	if err := d.in.Open(); err != nil {
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	stop, err := midi.ListenTo(d.in, d.context.HandleMessage)
	if err != nil {
		d.in.Close()
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	d.context.currentIn = d.in
	d.context.stopListening = stop
	return nil
}

func (d *RTMIDIDevice) Close() error {
	if d.context.currentIn != d.in {
		return nil
	}
	return d.context.closeCurrent()
}

func (d *RTMIDIDevice) IsOpen() bool {
	return d.context.currentIn == d.in && d.in.IsOpen()
}

func (d *RTMIDIDevice) String() string {
	return d.in.String()
}

// HandleMessage is called by the driver on its own goroutine; recognized
// messages are posted to the model without blocking.
func (m *RTMIDIContext) HandleMessage(msg midi.Message, timestampms int32) {
	c, ok := m.mapping.Decode(msg)
	if !ok {
		return
	}
	if !monitor.TrySend(m.broker.ToModel, monitor.MsgToModel{Data: c}) {
		log.Printf("gomidi: model queue full, dropped %v", msg)
	}
}

// Decode converts a MIDI message into a remote control event. ok is false if
// the message is not mapped to anything.
func (p Mapping) Decode(msg midi.Message) (c monitor.MIDIControl, ok bool) {
	if len(msg) == 1 {
		switch msg[0] {
		case realtimeStart:
			return monitor.MIDIControl{Kind: monitor.MIDIStart}, true
		case realtimeContinue:
			return monitor.MIDIControl{Kind: monitor.MIDIContinue}, true
		case realtimeStop:
			return monitor.MIDIControl{Kind: monitor.MIDIStop}, true
		}
		return c, false
	}
	var channel, key, value uint8
	switch {
	case msg.GetControlChange(&channel, &key, &value):
		if p.matches(channel) && key == p.ScrubControl {
			return monitor.MIDIControl{Kind: monitor.MIDIScrub, Value: int(value)}, true
		}
	case msg.GetNoteOn(&channel, &key, &value):
		if !p.matches(channel) || value == 0 {
			return c, false
		}
		switch key {
		case p.StepLeftNote:
			return monitor.MIDIControl{Kind: monitor.MIDIStepLeft}, true
		case p.StepRightNote:
			return monitor.MIDIControl{Kind: monitor.MIDIStepRight}, true
		}
	}
	return c, false
}

func (p Mapping) matches(channel uint8) bool {
	return p.Channel < 0 || int(channel) == p.Channel
}
