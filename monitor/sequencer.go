package monitor

import (
	"fmt"
	"log"
	"time"
)

type (
	// Sequencer plays back a recording by advancing the index of the current
	// state on a timer. It never stores the sequence itself: the host tells
	// how many steps there are, where the playback is and when each step was
	// recorded, and the sequencer only decides when to call JumpTo.
	//
	// The Sequencer is not safe for concurrent use. All calls, including the
	// callbacks scheduled with the Scheduler, must happen on the goroutine
	// owning the host.
	Sequencer struct {
		host      SequencerHost
		scheduler Scheduler
		speed     SpeedMode
		running   bool
		// generation is bumped whenever the playback is paused, so callbacks
		// already queued by the scheduler become no-ops.
		generation int
		stop       func() bool
	}

	SequencerHost interface {
		StepCount() int
		CurrentIndex() int
		Timestamp(i int) time.Duration
		JumpTo(i int)
	}

	// Scheduler runs f once after d. The returned stop function cancels the
	// call if it has not happened yet. The callback must be run on the
	// goroutine owning the Sequencer.
	Scheduler interface {
		AfterFunc(d time.Duration, f func()) (stop func() bool)
	}

	// SequencerState is a snapshot of the state of the Sequencer.
	SequencerState struct {
		Running bool
		Speed   SpeedMode
		Index   int
	}

	SpeedMode int

	// BrokerScheduler is a Scheduler that posts the callbacks to the model
	// goroutine through Broker.ToModel.
	BrokerScheduler struct {
		Broker *Broker
	}
)

const (
	Normal SpeedMode = iota
	Fast
	RealTime
	NumSpeedModes
)

const (
	NormalInterval = 500 * time.Millisecond
	FastInterval   = 200 * time.Millisecond

	// scheduleSendTimeout is how long a fired timer waits for room in
	// Broker.ToModel before giving up on the model goroutine.
	scheduleSendTimeout = 3 * time.Second
)

var speedLabels = [NumSpeedModes]string{"1x", "2x", "Live"}

func (s SpeedMode) String() string {
	if s < 0 || s >= NumSpeedModes {
		return fmt.Sprintf("SpeedMode(%d)", int(s))
	}
	return speedLabels[s]
}

// ParseSpeedMode parses the labels returned by SpeedMode.String.
func ParseSpeedMode(s string) (SpeedMode, error) {
	for i, l := range speedLabels {
		if l == s {
			return SpeedMode(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown speed %q, expected one of 1x, 2x, Live", s)
}

func NewSequencer(host SequencerHost, scheduler Scheduler) *Sequencer {
	return &Sequencer{host: host, scheduler: scheduler}
}

// Start starts the playback. It is a no-op if already running or if there
// are less than two steps. When at the last step, the playback restarts from
// the first one.
func (s *Sequencer) Start() {
	count := s.host.StepCount()
	if s.running || count < 2 {
		return
	}
	s.running = true
	if s.host.CurrentIndex() >= count-1 {
		s.host.JumpTo(0)
	}
	s.scheduleNext()
}

// Pause stops the playback, leaving the index where it is. Safe to call when
// already paused.
func (s *Sequencer) Pause() {
	s.generation++
	s.running = false
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// StepLeft pauses and moves one step back, if not at the first step.
func (s *Sequencer) StepLeft() {
	s.Pause()
	if i := s.host.CurrentIndex(); i > 0 {
		s.host.JumpTo(i - 1)
	}
}

// StepRight pauses and moves one step forward, if not at the last step.
func (s *Sequencer) StepRight() {
	s.Pause()
	if i := s.host.CurrentIndex(); i < s.host.StepCount()-1 {
		s.host.JumpTo(i + 1)
	}
}

// SetSpeed changes the speed mode. If running, the playback is restarted from
// the current index with the new mode.
func (s *Sequencer) SetSpeed(mode SpeedMode) {
	if mode < 0 || mode >= NumSpeedModes || mode == s.speed {
		return
	}
	if !s.running {
		s.speed = mode
		return
	}
	s.Pause()
	s.speed = mode
	s.Start()
}

// CycleSpeed changes the speed: 1x -> 2x -> Live -> 1x.
func (s *Sequencer) CycleSpeed() {
	s.SetSpeed((s.speed + 1) % NumSpeedModes)
}

func (s *Sequencer) Running() bool    { return s.running }
func (s *Sequencer) Speed() SpeedMode { return s.speed }

func (s *Sequencer) State() SequencerState {
	return SequencerState{Running: s.running, Speed: s.speed, Index: s.host.CurrentIndex()}
}

func (s *Sequencer) scheduleNext() {
	i := s.host.CurrentIndex()
	if i >= s.host.StepCount()-1 {
		s.running = false
		s.stop = nil
		return
	}
	var delay time.Duration
	switch s.speed {
	case Fast:
		delay = FastInterval
	case RealTime:
		delay = max(s.host.Timestamp(i+1)-s.host.Timestamp(i), 0)
	default:
		delay = NormalInterval
	}
	generation := s.generation
	s.stop = s.scheduler.AfterFunc(delay, func() { s.tick(generation) })
}

func (s *Sequencer) tick(generation int) {
	if generation != s.generation || !s.running {
		return
	}
	next := s.host.CurrentIndex() + 1
	if last := s.host.StepCount() - 1; next > last {
		next = last
	}
	s.host.JumpTo(next)
	s.scheduleNext()
}

// AfterFunc implements Scheduler. The timer itself runs on its own
// goroutine, but it only posts f to Broker.ToModel. A full queue delays the
// callback instead of dropping it.
func (s BrokerScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := time.AfterFunc(d, func() {
		if !TimeoutSend(s.Broker.ToModel, MsgToModel{Data: f}, scheduleSendTimeout) {
			log.Printf("monitor: model goroutine not responding, dropped a scheduled playback step")
		}
	})
	return t.Stop
}
