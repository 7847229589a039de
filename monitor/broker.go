package monitor

import (
	"time"
)

type (
	// Broker is the centralized message broker of the monitor. It is used to
	// communicate between the model, the timers of the sequencer, the MIDI
	// remote and the GUI. At the moment, the broker is just many-to-one
	// communication, implemented with one channel for each recipient.
	//
	// For closing the GUI goroutine, the broker has two channels: CloseGUI and
	// FinishedGUI. CloseGUI has a capacity of 1, so you can always send a
	// empty message (struct{}{}) to it without blocking. If the channel is
	// already full, someone else has already requested the closure and the
	// GUI is already closing, so dropping the message is fine. FinishedGUI is
	// used to signal that the GUI has succesfully closed and cleaned up.
	// Nothing is ever sent to the channel, it is only closed. You can wait
	// until the GUI is done closing with "<- FinishedGUI", which for avoiding
	// deadlocks can be combined with a timeout:
	//    select {
	//      case <-FinishedGUI:
	//      case <-time.After(3 * time.Second):
	//    }
	Broker struct {
		ToModel chan MsgToModel
		ToGUI   chan any

		CloseGUI    chan struct{}
		FinishedGUI chan struct{}
	}

	// MsgToModel is a message sent to the model goroutine. Data can be a
	// func() scheduled by the sequencer, a MIDIControl from the MIDI remote or
	// a *slidermon.Recording to load.
	MsgToModel struct {
		Data any
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:     make(chan MsgToModel, 1024),
		ToGUI:       make(chan any, 1024),
		CloseGUI:    make(chan struct{}, 1),
		FinishedGUI: make(chan struct{}),
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutSend is a helper function to block until the value is sent to a
// channel, or timing out after t. Returns true if the value was sent.
func TimeoutSend[T any](c chan<- T, v T, t time.Duration) bool {
	select {
	case c <- v:
		return true
	case <-time.After(t):
		return false
	}
}

// TimeoutReceive is a helper function to block until a value is received from a
// channel, or timing out after t. ok will be false if the timeout occurred or
// if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
