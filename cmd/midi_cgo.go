//go:build cgo

package cmd

import (
	"github.com/vsariola/slidermon/monitor"
	"github.com/vsariola/slidermon/monitor/gomidi"
)

func NewMidiContext(broker *monitor.Broker) monitor.MIDIContext {
	return gomidi.NewContext(broker)
}
