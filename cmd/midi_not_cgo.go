//go:build !cgo

package cmd

import (
	"github.com/vsariola/slidermon/monitor"
)

func NewMidiContext(broker *monitor.Broker) monitor.MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return monitor.NullMIDIContext{}
}
