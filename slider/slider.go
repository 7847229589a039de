// Package slider implements the drag state machine of a multi-handle range
// slider: it turns pointer and touch gestures into handle values, enforcing
// the constraints of slidermon.Handles, and reports the changes through
// lifecycle callbacks. Drawing the slider is left to the host, which also
// delivers the events through an EventSource and supplies the Geometry.
package slider

import (
	"errors"
	"log"
	"math"

	"github.com/vsariola/slidermon"
)

type (
	// Config contains the construction parameters of a Slider. If Handles is
	// 0, the number of handles is the length of Value, or the length of
	// DefaultValue, or 1.
	Config struct {
		Min              float64
		Max              float64
		Step             float64
		MinDistance      float64
		Handles          int
		Value            []float64
		DefaultValue     []float64
		Orientation      slidermon.Orientation
		Disabled         bool
		SnapDragDisabled bool
	}

	// Callbacks are called with the public value of the slider. Nil callbacks
	// are skipped. Within one gesture, OnBeforeChange precedes all OnChange
	// calls, which precede OnAfterChange.
	Callbacks struct {
		OnBeforeChange func(slidermon.Value)
		OnChange       func(slidermon.Value)
		OnAfterChange  func(slidermon.Value)
		// OnSliderClick is called with the value under the pointer when the
		// track is pressed and released without moving.
		OnSliderClick func(slidermon.Value)
	}

	// Geometry is the measured layout of the slider along its primary axis,
	// in host pixels. It must be supplied before any events are delivered and
	// again whenever the host resizes the slider.
	Geometry struct {
		Start        float64 // position of the min edge of the track
		AxisLength   float64 // length of the track
		HandleExtent float64 // size of a handle
	}

	// Slider is a multi-handle range slider. It is not safe for concurrent
	// use: all calls must come from the goroutine that owns the slider.
	Slider struct {
		cfg       Config
		handles   *slidermon.Handles
		keys      axisKeys
		geometry  Geometry
		callbacks Callbacks
		session   *dragSession

		unsubscribe    func()
		mounted        bool
		closed         bool
		warnedGeometry bool
	}

	State int

	dragSession struct {
		handle     int // NoHandle when no handle is being dragged
		startValue float64
		startPos   Point
		travel     float64 // travel length when the gesture started
		fromTrack  bool
		began      bool // OnBeforeChange has been fired
		moved      bool
		device     Device
		decided    bool // touch: scroll decision has been made
		scrolling  bool
	}
)

const (
	Idle State = iota
	Dragging
)

var (
	ErrAlreadyMounted = errors.New("slider is already mounted")
	ErrClosed         = errors.New("slider is closed")
)

// DefaultConfig returns a single handle slider from 0 to 100 with step 1.
func DefaultConfig() Config {
	return Config{
		Min:          0,
		Max:          100,
		Step:         1,
		Handles:      1,
		DefaultValue: []float64{0},
		Orientation:  slidermon.Horizontal,
	}
}

// New validates the config and creates a new Slider. A *slidermon.ConfigError
// is returned for malformed axes, before any handles are created.
func New(cfg Config, callbacks Callbacks) (*Slider, error) {
	axis, err := slidermon.NewAxis(cfg.Min, cfg.Max, cfg.Step)
	if err != nil {
		return nil, err
	}
	count := cfg.Handles
	if count == 0 {
		switch {
		case len(cfg.Value) > 0:
			count = len(cfg.Value)
		case len(cfg.DefaultValue) > 0:
			count = len(cfg.DefaultValue)
		default:
			count = 1
		}
	}
	h, err := slidermon.NewHandles(axis, slidermon.HandleOptions{
		Count:        count,
		Value:        cfg.Value,
		DefaultValue: cfg.DefaultValue,
		MinDistance:  cfg.MinDistance,
	})
	if err != nil {
		return nil, err
	}
	return &Slider{cfg: cfg, handles: h, keys: keysFor(cfg.Orientation), callbacks: callbacks}, nil
}

// Mount subscribes the slider to an event source. A slider can be mounted
// only once; Close unsubscribes it.
func (s *Slider) Mount(src EventSource) error {
	if s.closed {
		return ErrClosed
	}
	if s.mounted {
		return ErrAlreadyMounted
	}
	s.unsubscribe = src.Subscribe(s.HandleEvent)
	s.mounted = true
	return nil
}

// Close unsubscribes the slider from its event source and ends any gesture
// in progress. Calling Close more than once is safe.
func (s *Slider) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.end(PointerEvent{Kind: Cancel})
}

// SetGeometry updates the measured layout of the slider.
func (s *Slider) SetGeometry(g Geometry) {
	s.geometry = g
	if s.TravelLength() > 0 {
		s.warnedGeometry = false
	}
}

func (s *Slider) Geometry() Geometry { return s.geometry }

// TravelLength is the pixel range the handles can move through: the track
// length minus the handle size.
func (s *Slider) TravelLength() float64 {
	return s.geometry.AxisLength - s.geometry.HandleExtent
}

// State returns Dragging and the handle index while a handle is being
// dragged, Idle and NoHandle otherwise.
func (s *Slider) State() (State, int) {
	if s.session == nil || s.session.handle == NoHandle {
		return Idle, NoHandle
	}
	return Dragging, s.session.handle
}

// GetValue returns the public value of the slider: a scalar for a single
// handle slider, otherwise all the values.
func (s *Slider) GetValue() slidermon.Value { return s.handles.Value() }

// SetValue replaces the values of the slider, e.g. when the host moves the
// slider programmatically. It is ignored while the user is dragging a handle
// or when the values violate the minimum distance; returns whether the value
// was applied. No callbacks are fired.
func (s *Slider) SetValue(v slidermon.Value) bool {
	if st, _ := s.State(); st == Dragging {
		return false
	}
	return s.handles.Assign(v.Floats())
}

// SetDisabled enables or disables the slider. Disabling ends a gesture in
// progress.
func (s *Slider) SetDisabled(disabled bool) {
	if disabled && !s.cfg.Disabled {
		s.end(PointerEvent{Kind: Cancel})
	}
	s.cfg.Disabled = disabled
}

func (s *Slider) Disabled() bool                     { return s.cfg.Disabled }
func (s *Slider) Orientation() slidermon.Orientation { return s.cfg.Orientation }
func (s *Slider) Axis() slidermon.Axis               { return s.handles.Axis() }
func (s *Slider) Len() int                           { return s.handles.Len() }
func (s *Slider) Values() []float64                  { return s.handles.Values() }
func (s *Slider) ZOrder() []int                      { return s.handles.ZOrder() }

// HandleOffset returns the offset of the min edge of the i-th handle from
// Geometry.Start.
func (s *Slider) HandleOffset(i int) float64 {
	return s.handles.Axis().ValueToOffset(s.handles.ValueAt(i), math.Max(s.TravelLength(), 0))
}

// HandleEvent processes one pointer event. It is the listener registered by
// Mount, but can be called directly by hosts that do not use an EventSource.
func (s *Slider) HandleEvent(e PointerEvent) {
	if s.cfg.Disabled || s.closed {
		return
	}
	switch e.Kind {
	case Press:
		s.press(e)
	case Move:
		s.move(e)
	case Release, Cancel:
		s.end(e)
	}
}

func (s *Slider) press(e PointerEvent) {
	if s.session != nil {
		return // a gesture is already in progress, e.g. a second finger
	}
	if e.Device == Touch && e.Touches != 1 {
		return
	}
	if !s.geometryReady() {
		return
	}
	if e.Handle >= 0 && e.Handle < s.handles.Len() {
		s.start(e.Handle, e, false)
		return
	}
	s.session = &dragSession{handle: NoHandle, startPos: e.Position, fromTrack: true, device: e.Device}
	if s.cfg.SnapDragDisabled {
		return
	}
	offset := s.offsetFromPosition(e.Position)
	travel := s.TravelLength()
	raw, err := s.handles.Axis().OffsetToValue(offset, travel)
	if err != nil {
		return
	}
	i := s.handles.NearestHandle(offset, travel)
	if accepted, _ := s.handles.SnapTo(i, raw); !accepted {
		return
	}
	s.fire(s.callbacks.OnChange)
	s.start(i, e, true)
}

func (s *Slider) start(i int, e PointerEvent, fromTrack bool) {
	s.handles.BringToFront(i)
	s.session = &dragSession{
		handle:     i,
		startValue: s.handles.ValueAt(i),
		startPos:   e.Position,
		travel:     s.TravelLength(),
		fromTrack:  fromTrack,
		began:      true,
		device:     e.Device,
	}
	s.fire(s.callbacks.OnBeforeChange)
}

func (s *Slider) move(e PointerEvent) {
	d := s.session
	if d == nil {
		return
	}
	if d.device == Touch {
		if e.Touches > 1 {
			return
		}
		if !d.decided {
			d.decided = true
			main := s.keys.primary(e.Position) - s.keys.primary(d.startPos)
			cross := s.keys.cross(e.Position) - s.keys.cross(d.startPos)
			d.scrolling = math.Abs(cross) > math.Abs(main)
		}
		if d.scrolling {
			d.handle = NoHandle
			return
		}
	}
	d.moved = true
	if d.handle == NoHandle {
		return
	}
	if !(d.travel > 0) {
		s.warnGeometry()
		return
	}
	axis := s.handles.Axis()
	delta := (s.keys.primary(e.Position) - s.keys.primary(d.startPos)) / d.travel * (axis.Max - axis.Min)
	candidate := axis.TrimAndAlign(d.startValue + delta)
	old := s.handles.ValueAt(d.handle)
	if accepted, v := s.handles.SetValue(d.handle, candidate); accepted && v != old {
		s.fire(s.callbacks.OnChange)
	}
}

func (s *Slider) end(e PointerEvent) {
	d := s.session
	if d == nil {
		return
	}
	s.session = nil
	if d.began {
		s.fire(s.callbacks.OnAfterChange)
	}
	if e.Kind != Release || !d.fromTrack || d.moved || s.callbacks.OnSliderClick == nil {
		return
	}
	v, err := s.handles.Axis().OffsetToValue(s.offsetFromPosition(e.Position), s.TravelLength())
	if err != nil {
		return
	}
	s.callbacks.OnSliderClick(slidermon.ScalarValue(s.handles.Axis().TrimAndAlign(v)))
}

// offsetFromPosition converts a pointer position into the offset of a
// handle centered under the pointer.
func (s *Slider) offsetFromPosition(p Point) float64 {
	return s.keys.primary(p) - s.geometry.Start - s.geometry.HandleExtent/2
}

func (s *Slider) geometryReady() bool {
	if s.TravelLength() > 0 {
		return true
	}
	s.warnGeometry()
	return false
}

func (s *Slider) warnGeometry() {
	if !s.warnedGeometry {
		log.Printf("slider: %v, ignoring pointer events", slidermon.ErrGeometryNotReady)
		s.warnedGeometry = true
	}
}

func (s *Slider) fire(f func(slidermon.Value)) {
	if f != nil {
		f(s.handles.Value())
	}
}

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}
