package monitor_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/slidermon"
	"github.com/vsariola/slidermon/monitor"
	"github.com/vsariola/slidermon/slider"
)

func testRecording(count int) slidermon.Recording {
	r := slidermon.Recording{Name: "test"}
	for i := range count {
		r.Steps = append(r.Steps, slidermon.Step{
			Action:    "STEP",
			Timestamp: time.Duration(i) * 100 * time.Millisecond,
			State:     map[string]any{"count": i},
		})
	}
	return r
}

func newTestModel(t *testing.T, count int) (*monitor.Model, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	m := monitor.NewModel(monitor.NewBroker(), sched, monitor.NullMIDIContext{}, testRecording(count))
	// travel of 100 pixels, starting at x = 5
	m.Slider().SetGeometry(slider.Geometry{Start: 0, AxisLength: 110, HandleExtent: 10})
	return m, sched
}

func TestModelIndex(t *testing.T) {
	m, _ := newTestModel(t, 5)
	assert.Equal(t, monitor.RangeInclusive{Min: 0, Max: 4}, m.Index().Range())
	require.True(t, m.Index().SetValue(2))
	assert.Equal(t, 2, m.Index().Value())
	assert.Equal(t, 2.0, m.Slider().GetValue().Float())
	assert.Equal(t, "3/5 STEP", m.Index().String())
	step, ok := m.Step()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"count": 2}, step.State)
	assert.False(t, m.Index().SetValue(2), "setting the same index should report no change")
	m.Index().SetValue(100)
	assert.Equal(t, 4, m.Index().Value())
}

func TestModelPlaybackMovesSlider(t *testing.T) {
	m, sched := newTestModel(t, 3)
	m.Play().Start().Do()
	require.True(t, m.Play().Playing().Value())
	assert.False(t, m.Play().Start().Enabled())
	sched.Advance(monitor.NormalInterval)
	assert.Equal(t, 1, m.Index().Value())
	assert.Equal(t, 1.0, m.Slider().GetValue().Float())
	var last monitor.IndexChanged
	for len(m.Broker().ToGUI) > 0 {
		if ic, ok := (<-m.Broker().ToGUI).(monitor.IndexChanged); ok {
			last = ic
		}
	}
	assert.Equal(t, 1, last.Index)
	sched.Advance(monitor.NormalInterval)
	assert.False(t, m.Play().Playing().Value())
	assert.False(t, m.Play().StepRight().Enabled())
}

func TestModelSliderDragPausesPlayback(t *testing.T) {
	m, sched := newTestModel(t, 5)
	m.Play().Start().Do()
	s := m.Slider()
	s.HandleEvent(slider.PointerEvent{Kind: slider.Press, Handle: 0, Position: slider.Point{X: 5}})
	assert.False(t, m.Sequencer().Running(), "grabbing the slider should pause")
	// 50 pixels is half of the axis [0, 4]
	s.HandleEvent(slider.PointerEvent{Kind: slider.Move, Handle: 0, Position: slider.Point{X: 55}})
	s.HandleEvent(slider.PointerEvent{Kind: slider.Release, Handle: 0, Position: slider.Point{X: 55}})
	assert.Equal(t, 2, m.Index().Value())
	sched.Advance(10 * time.Second)
	assert.Equal(t, 2, m.Index().Value())
}

func TestModelMountFollowsNewRecordings(t *testing.T) {
	m, _ := newTestModel(t, 5)
	bus := &slider.EventBus{}
	require.NoError(t, m.Mount(bus))
	assert.Equal(t, 1, bus.Subscribers())
	m.ProcessMsg(monitor.MsgToModel{Data: testRecording(3)})
	assert.Equal(t, 1, bus.Subscribers(), "the old slider should be unmounted")
	assert.Equal(t, 3, m.Recording().Len())
	assert.Equal(t, 110.0, m.Slider().Geometry().AxisLength, "the geometry should carry over")
	bus.Publish(slider.PointerEvent{Kind: slider.Press, Handle: 0, Position: slider.Point{X: 5}})
	bus.Publish(slider.PointerEvent{Kind: slider.Move, Handle: 0, Position: slider.Point{X: 105}})
	bus.Publish(slider.PointerEvent{Kind: slider.Release, Handle: 0, Position: slider.Point{X: 105}})
	assert.Equal(t, 2, m.Index().Value())
	m.Close()
	assert.Equal(t, 0, bus.Subscribers())
}

func TestModelSingleStepDisablesSlider(t *testing.T) {
	m, _ := newTestModel(t, 1)
	assert.True(t, m.Slider().Disabled())
	assert.False(t, m.Play().Toggle().Enabled())
	assert.False(t, m.Reset().Enabled())
}

func TestModelReset(t *testing.T) {
	m, _ := newTestModel(t, 5)
	m.Index().SetValue(3)
	m.Play().Start().Do()
	m.Reset().Do()
	assert.Equal(t, 1, m.Recording().Len())
	assert.Equal(t, 0, m.Index().Value())
	assert.False(t, m.Sequencer().Running())
	assert.True(t, m.Slider().Disabled())
	var names []string
	for _, a := range m.Alerts().Iterate {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Reset"}, names)
}

func TestModelReadRecording(t *testing.T) {
	m, _ := newTestModel(t, 5)
	m.ReadRecording(io.NopCloser(strings.NewReader("steps: [")))
	assert.Equal(t, 5, m.Recording().Len(), "a broken file should keep the old recording")
	require.Equal(t, 1, m.Alerts().Len())
	for _, a := range m.Alerts().Iterate {
		assert.Equal(t, monitor.Error, a.Priority)
	}
	m.ReadRecording(io.NopCloser(strings.NewReader(`{"steps":[{"action":"A","timestamp":0},{"action":"B","timestamp":5}]}`)))
	assert.Equal(t, 2, m.Recording().Len())
	assert.Equal(t, "1/2 A", m.Index().String())
}

type failingWriter struct{ closed bool }

func (w *failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (w *failingWriter) Close() error              { w.closed = true; return nil }

type bufferCloser struct {
	strings.Builder
}

func (b *bufferCloser) Close() error { return nil }

func TestModelWriteRecording(t *testing.T) {
	m, _ := newTestModel(t, 2)
	var b bufferCloser
	m.WriteRecording(&b)
	rec, err := slidermon.ParseRecording([]byte(b.String()))
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Len())
	assert.Equal(t, 100*time.Millisecond, rec.Timestamp(1))

	m.WriteRecording(&failingWriter{})
	assert.Equal(t, 1, m.Alerts().Len())
}

func TestModelStateText(t *testing.T) {
	m, _ := newTestModel(t, 2)
	m.Index().SetValue(1)
	assert.Equal(t, "count: 1\n", m.StateText(false))
	assert.JSONEq(t, `{"count":1}`, m.StateText(true))
}

func TestProcessMsg(t *testing.T) {
	m, _ := newTestModel(t, 5)
	called := false
	m.ProcessMsg(monitor.MsgToModel{Data: func() { called = true }})
	assert.True(t, called)

	m.ProcessMsg(monitor.MsgToModel{Data: monitor.MIDIControl{Kind: monitor.MIDIScrub, Value: 127}})
	assert.Equal(t, 4, m.Index().Value())
	m.ProcessMsg(monitor.MsgToModel{Data: monitor.MIDIControl{Kind: monitor.MIDIScrub, Value: 64}})
	assert.Equal(t, 2, m.Index().Value())
	m.ProcessMsg(monitor.MsgToModel{Data: monitor.MIDIControl{Kind: monitor.MIDIStepLeft}})
	assert.Equal(t, 1, m.Index().Value())
	m.ProcessMsg(monitor.MsgToModel{Data: monitor.MIDIControl{Kind: monitor.MIDIStart}})
	assert.True(t, m.Sequencer().Running())
	m.ProcessMsg(monitor.MsgToModel{Data: monitor.MIDIControl{Kind: monitor.MIDIStop}})
	assert.False(t, m.Sequencer().Running())
	m.ProcessMsg(monitor.MsgToModel{Data: monitor.MIDIControl{Kind: monitor.MIDIStepRight}})
	assert.Equal(t, 2, m.Index().Value())

	rec := testRecording(2)
	m.ProcessMsg(monitor.MsgToModel{Data: &rec})
	assert.Equal(t, 2, m.Recording().Len())
}

func TestBrokerSchedulerPostsToModel(t *testing.T) {
	broker := monitor.NewBroker()
	called := false
	monitor.BrokerScheduler{Broker: broker}.AfterFunc(time.Millisecond, func() { called = true })
	msg, ok := monitor.TimeoutReceive(broker.ToModel, time.Second)
	require.True(t, ok)
	assert.False(t, called, "the callback should run on the model goroutine")
	f, ok := msg.Data.(func())
	require.True(t, ok)
	f()
	assert.True(t, called)
}

func TestBrokerSchedulerWaitsForFullQueue(t *testing.T) {
	broker := &monitor.Broker{ToModel: make(chan monitor.MsgToModel, 1)}
	broker.ToModel <- monitor.MsgToModel{Data: "filler"}
	called := false
	monitor.BrokerScheduler{Broker: broker}.AfterFunc(time.Millisecond, func() { called = true })
	time.Sleep(20 * time.Millisecond) // the timer fires while the queue is full
	msg, ok := monitor.TimeoutReceive(broker.ToModel, time.Second)
	require.True(t, ok)
	assert.Equal(t, "filler", msg.Data)
	msg, ok = monitor.TimeoutReceive(broker.ToModel, time.Second)
	require.True(t, ok, "the playback step should be delivered once there is room")
	f, ok := msg.Data.(func())
	require.True(t, ok)
	f()
	assert.True(t, called)
}

func TestModelPlaybackCannotStartWhileDragging(t *testing.T) {
	m, sched := newTestModel(t, 5)
	s := m.Slider()
	s.HandleEvent(slider.PointerEvent{Kind: slider.Press, Handle: 0, Position: slider.Point{X: 5}})
	assert.False(t, m.Play().Start().Enabled())
	assert.False(t, m.Play().Toggle().Enabled())
	assert.False(t, m.Play().Playing().Enabled())
	m.Play().Toggle().Do()
	m.Play().Start().Do()
	m.Play().Playing().SetValue(true)
	m.ProcessMsg(monitor.MsgToModel{Data: monitor.MIDIControl{Kind: monitor.MIDIStart}})
	m.ProcessMsg(monitor.MsgToModel{Data: monitor.MIDIControl{Kind: monitor.MIDIContinue}})
	assert.False(t, m.Sequencer().Running(), "the drag owns the index until released")
	sched.Advance(2 * monitor.NormalInterval)
	assert.Equal(t, 0, m.Index().Value())

	// 25 pixels is one step on the axis [0, 4]
	s.HandleEvent(slider.PointerEvent{Kind: slider.Move, Handle: 0, Position: slider.Point{X: 30}})
	s.HandleEvent(slider.PointerEvent{Kind: slider.Release, Handle: 0, Position: slider.Point{X: 30}})
	assert.Equal(t, 1, m.Index().Value())
	assert.Equal(t, 1.0, s.GetValue().Float())

	require.True(t, m.Play().Start().Enabled())
	m.Play().Start().Do()
	sched.Advance(monitor.NormalInterval)
	assert.Equal(t, 2, m.Index().Value())
	assert.Equal(t, 2.0, s.GetValue().Float(), "the slider should follow the playback")
}
