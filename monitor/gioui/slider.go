package gioui

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/vsariola/slidermon"
	"github.com/vsariola/slidermon/slider"
)

// SliderWidget draws a slider.Slider and is the slider.EventSource feeding it
// the pointer and touch events of the window. Handles are hit tested front to
// back in the z-order of the slider, so the most recently used handle wins
// when handles overlap.
type SliderWidget struct {
	slider.EventBus
	touches map[pointer.ID]struct{}
}

func NewSliderWidget() *SliderWidget {
	return &SliderWidget{touches: map[pointer.ID]struct{}{}}
}

func (w *SliderWidget) Layout(gtx C, th *Theme, s *slider.Slider) D {
	vertical := s.Orientation() == slidermon.Vertical
	thickness := gtx.Dp(th.Slider.Height)
	handleSize := gtx.Dp(th.Slider.HandleSize)
	size := image.Pt(gtx.Constraints.Max.X, thickness)
	if vertical {
		size = image.Pt(thickness, gtx.Constraints.Max.Y)
	}
	s.SetGeometry(s.Measure(slider.Point{}, toPoint(size), slider.Point{X: float64(handleSize), Y: float64(handleSize)}))
	w.update(gtx, s)

	track := gtx.Dp(th.Slider.TrackThickness)
	g := s.Geometry()
	along := func(from, to, across, width int) image.Rectangle {
		if vertical {
			return image.Rect(across, from, across+width, to)
		}
		return image.Rect(from, across, to, across+width)
	}
	half := handleSize / 2
	paint.FillShape(gtx.Ops, th.Slider.Track, clip.UniformRRect(along(half, int(g.AxisLength)-half, (thickness-track)/2, track), track/2).Op(gtx.Ops))
	if s.Len() > 0 {
		// fill between the first and last handle, or from the start for a
		// single handle
		from := half
		if s.Len() > 1 {
			from = int(s.HandleOffset(0)) + half
		}
		to := int(s.HandleOffset(s.Len()-1)) + half
		fill := th.Slider.Fill
		if s.Disabled() {
			fill = th.Slider.Disabled
		}
		paint.FillShape(gtx.Ops, fill, clip.UniformRRect(along(from, to, (thickness-track)/2, track), track/2).Op(gtx.Ops))
	}
	state, active := s.State()
	for _, i := range s.ZOrder() {
		c := th.Slider.Handle
		switch {
		case s.Disabled():
			c = th.Slider.Disabled
		case state == slider.Dragging && active == i:
			c = th.Slider.Active
		}
		offset := int(s.HandleOffset(i))
		r := along(offset, offset+handleSize, (thickness-handleSize)/2, handleSize)
		paint.FillShape(gtx.Ops, c, clip.UniformRRect(r, handleSize/2).Op(gtx.Ops))
		paint.FillShape(gtx.Ops, color.NRGBA{A: 64}, clip.Stroke{Path: clip.UniformRRect(r, handleSize/2).Path(gtx.Ops), Width: 1}.Op())
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, w)
	if !s.Disabled() {
		pointer.CursorPointer.Add(gtx.Ops)
	}
	return D{Size: size}
}

func (w *SliderWidget) update(gtx C, s *slider.Slider) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pe := slider.PointerEvent{
			Position: slider.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)},
			Handle:   slider.NoHandle,
		}
		if e.Source == pointer.Touch {
			pe.Device = slider.Touch
		}
		switch e.Kind {
		case pointer.Press:
			if pe.Device == slider.Touch {
				w.touches[e.PointerID] = struct{}{}
			}
			pe.Kind = slider.Press
			pe.Handle = hitHandle(s, pe.Position)
		case pointer.Drag:
			pe.Kind = slider.Move
		case pointer.Release:
			pe.Kind = slider.Release
		case pointer.Cancel:
			pe.Kind = slider.Cancel
		default:
			continue
		}
		pe.Touches = len(w.touches)
		switch e.Kind {
		case pointer.Release:
			delete(w.touches, e.PointerID)
		case pointer.Cancel:
			clear(w.touches)
		}
		w.Publish(pe)
	}
}

// hitHandle returns the frontmost handle under p, or slider.NoHandle.
func hitHandle(s *slider.Slider, p slider.Point) int {
	g := s.Geometry()
	pos := s.Along(p) - g.Start
	z := s.ZOrder()
	for k := len(z) - 1; k >= 0; k-- {
		offset := s.HandleOffset(z[k])
		if pos >= offset && pos < offset+g.HandleExtent {
			return z[k]
		}
	}
	return slider.NoHandle
}

func toPoint(p image.Point) slider.Point {
	return slider.Point{X: float64(p.X), Y: float64(p.Y)}
}
