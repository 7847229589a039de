package monitor

type Play Model

func (m *Model) Play() *Play { return (*Play)(m) }

// State returns a snapshot of the sequencer state.
func (m *Play) State() SequencerState { return m.sequencer.State() }

// Start returns an Action to start the playback from the current state, or
// from the first state if at the last one.
func (m *Play) Start() Action { return MakeAction((*playStart)(m)) }

type playStart Play

func (m *playStart) Enabled() bool { return !m.sequencer.Running() && (*Model)(m).canStart() }
func (m *playStart) Do()           { m.sequencer.Start() }

// Pause returns an Action to pause the playback.
func (m *Play) Pause() Action { return MakeAction((*playPause)(m)) }

type playPause Play

func (m *playPause) Enabled() bool { return m.sequencer.Running() }
func (m *playPause) Do()           { m.sequencer.Pause() }

// Toggle returns an Action that pauses the playback if running and starts it
// otherwise.
func (m *Play) Toggle() Action { return MakeAction((*playToggle)(m)) }

type playToggle Play

func (m *playToggle) Enabled() bool { return m.sequencer.Running() || (*Model)(m).canStart() }
func (m *playToggle) Do() {
	if m.sequencer.Running() {
		m.sequencer.Pause()
		return
	}
	m.sequencer.Start()
}

// StepLeft returns an Action to pause and move to the previous state.
func (m *Play) StepLeft() Action { return MakeAction((*playStepLeft)(m)) }

type playStepLeft Play

func (m *playStepLeft) Enabled() bool { return m.index > 0 }
func (m *playStepLeft) Do()           { m.sequencer.StepLeft() }

// StepRight returns an Action to pause and move to the next state.
func (m *Play) StepRight() Action { return MakeAction((*playStepRight)(m)) }

type playStepRight Play

func (m *playStepRight) Enabled() bool { return m.index < m.recording.Len()-1 }
func (m *playStepRight) Do()           { m.sequencer.StepRight() }

// CycleSpeed returns an Action to change the playback speed 1x -> 2x -> Live
// -> 1x.
func (m *Play) CycleSpeed() Action { return MakeAction((*playCycleSpeed)(m)) }

type playCycleSpeed Play

func (m *playCycleSpeed) Do() { m.sequencer.CycleSpeed() }

// Playing returns a Bool telling whether the playback is running; setting it
// starts or pauses the playback.
func (m *Play) Playing() Bool { return MakeBool((*playPlaying)(m)) }

type playPlaying Play

func (m *playPlaying) Value() bool { return m.sequencer.Running() }
func (m *playPlaying) SetValue(val bool) {
	if !val {
		m.sequencer.Pause()
		return
	}
	if (*Model)(m).canStart() {
		m.sequencer.Start()
	}
}
func (m *playPlaying) Enabled() bool { return m.sequencer.Running() || (*Model)(m).canStart() }

// Speed returns an Int controlling the speed mode, labeled 1x, 2x and Live.
func (m *Play) Speed() Int { return MakeInt((*playSpeed)(m)) }

type playSpeed Play

func (v *playSpeed) Value() int            { return int(v.sequencer.Speed()) }
func (v *playSpeed) Range() RangeInclusive { return RangeInclusive{0, int(NumSpeedModes) - 1} }
func (v *playSpeed) SetValue(value int) bool {
	v.sequencer.SetSpeed(SpeedMode(value))
	return true
}
func (v *playSpeed) StringOf(value int) string { return SpeedMode(value).String() }
