package gioui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/vsariola/slidermon/monitor"
)

type (
	AlertsState struct {
		prevUpdate time.Time
	}

	AlertStyle struct {
		Bg   color.NRGBA
		Text LabelStyle
	}

	AlertStyles struct {
		Info    AlertStyle
		Warning AlertStyle
		Error   AlertStyle
		Margin  layout.Inset
		Inset   layout.Inset
	}

	AlertsWidget struct {
		Theme *Theme
		Model *monitor.Alerts
		State *AlertsState
	}
)

func NewAlertsState() *AlertsState {
	return &AlertsState{prevUpdate: time.Now()}
}

func Alerts(m *monitor.Alerts, th *Theme, st *AlertsState) AlertsWidget {
	return AlertsWidget{
		Theme: th,
		Model: m,
		State: st,
	}
}

// Layout draws the alerts stacked upwards from the bottom edge, newest at
// the bottom. A fading alert slides down and becomes transparent.
func (a *AlertsWidget) Layout(gtx C) D {
	now := time.Now()
	if a.Model.Update(now.Sub(a.State.prevUpdate)) {
		gtx.Execute(op.InvalidateCmd{At: now.Add(50 * time.Millisecond)})
	}
	a.State.prevUpdate = now

	var alerts []monitor.Alert
	for _, alert := range a.Model.Iterate {
		alerts = append(alerts, alert)
	}
	bottom := gtx.Constraints.Max.Y
	for i := len(alerts) - 1; i >= 0 && bottom > 0; i-- {
		alert := alerts[i]
		style := a.Theme.Alert.styleFor(alert.Priority)
		text := style.Text
		text.Color.A = uint8(float64(text.Color.A) * alert.FadeLevel)
		text.ShadowColor.A = uint8(float64(text.ShadowColor.A) * alert.FadeLevel)
		bg := style.Bg
		bg.A = uint8(float64(bg.A) * alert.FadeLevel)
		label := Label(a.Theme, &text, alert.Message)

		gtx := gtx
		gtx.Constraints.Min = image.Point{}
		recording := op.Record(gtx.Ops)
		dims := a.Theme.Alert.Margin.Layout(gtx, func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.Stack{Alignment: layout.W}.Layout(gtx,
				layout.Expanded(func(gtx C) D {
					paint.FillShape(gtx.Ops, bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
					return D{Size: gtx.Constraints.Min}
				}),
				layout.Stacked(func(gtx C) D {
					return a.Theme.Alert.Inset.Layout(gtx, label.Layout)
				}),
			)
		})
		macro := recording.Stop()
		slide := int(float64(dims.Size.Y) * (1 - alert.FadeLevel))
		bottom -= dims.Size.Y
		offset := op.Offset(image.Pt(0, bottom+slide)).Push(gtx.Ops)
		macro.Add(gtx.Ops)
		offset.Pop()
		bottom += slide
	}
	return D{}
}

func (s *AlertStyles) styleFor(p monitor.AlertPriority) *AlertStyle {
	switch p {
	case monitor.Warning:
		return &s.Warning
	case monitor.Error:
		return &s.Error
	}
	return &s.Info
}
