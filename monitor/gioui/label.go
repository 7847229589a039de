package gioui

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

type (
	LabelStyle struct {
		Color       color.NRGBA
		ShadowColor color.NRGBA
		TextSize    unit.Sp
	}

	LabelWidget struct {
		Text      string
		Shaper    *text.Shaper
		Alignment layout.Direction
		MaxLines  int
		LabelStyle
	}
)

func Label(th *Theme, style *LabelStyle, txt string) LabelWidget {
	return LabelWidget{Text: txt, Shaper: th.Material.Shaper, Alignment: layout.W, MaxLines: 1, LabelStyle: *style}
}

func (l LabelWidget) Layout(gtx C) D {
	return l.Alignment.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		lbl := widget.Label{Alignment: text.Start, MaxLines: l.MaxLines}
		if l.ShadowColor.A > 0 {
			offs := op.Offset(image.Pt(2, 2)).Push(gtx.Ops)
			lbl.Layout(gtx, l.Shaper, font.Font{}, l.TextSize, l.Text, colorMaterial(gtx.Ops, l.ShadowColor))
			offs.Pop()
		}
		return lbl.Layout(gtx, l.Shaper, font.Font{}, l.TextSize, l.Text, colorMaterial(gtx.Ops, l.Color))
	})
}

func colorMaterial(ops *op.Ops, c color.NRGBA) op.CallOp {
	m := op.Record(ops)
	paint.ColorOp{Color: c}.Add(ops)
	return m.Stop()
}
