package gioui

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"github.com/vsariola/slidermon/monitor"
)

type (
	// ActionButton is an icon button performing a monitor.Action, with a
	// tooltip showing the hint and the key bound to the action.
	ActionButton struct {
		Clickable widget.Clickable
		Tip       component.TipArea
		Action    monitor.Action
		Icon      []byte
		Hint      string
	}

	// ToggleButton is an icon button for a monitor.Bool, showing a different
	// icon and hint when the Bool is true.
	ToggleButton struct {
		Clickable widget.Clickable
		Tip       component.TipArea
		Bool      monitor.Bool
		OffIcon   []byte
		OnIcon    []byte
		OffHint   string
		OnHint    string
	}

	// TextButton is a low emphasis button with a label, e.g. the speed
	// selector.
	TextButton struct {
		Clickable widget.Clickable
		Tip       component.TipArea
		Hint      string
	}
)

func NewActionButton(action monitor.Action, icon []byte, hint, keyAction string) *ActionButton {
	return &ActionButton{Action: action, Icon: icon, Hint: withShortcut(hint, keyAction)}
}

func NewToggleButton(b monitor.Bool, offIcon, onIcon []byte, offHint, onHint, keyAction string) *ToggleButton {
	return &ToggleButton{
		Bool:    b,
		OffIcon: offIcon,
		OnIcon:  onIcon,
		OffHint: withShortcut(offHint, keyAction),
		OnHint:  withShortcut(onHint, keyAction),
	}
}

func (b *ActionButton) Layout(gtx C, th *Theme) D {
	for b.Clickable.Clicked(gtx) {
		b.Action.Do()
	}
	enabled := b.Action.Enabled()
	btn := IconButton(th, &b.Clickable, b.Icon, b.Hint, enabled)
	return b.Tip.Layout(gtx, Tooltip(th, b.Hint), func(gtx C) D {
		if !enabled {
			gtx = gtx.Disabled()
		}
		return btn.Layout(gtx)
	})
}

func (b *ToggleButton) Layout(gtx C, th *Theme) D {
	for b.Clickable.Clicked(gtx) {
		b.Bool.Toggle()
	}
	icon, hint := b.OffIcon, b.OffHint
	if b.Bool.Value() {
		icon, hint = b.OnIcon, b.OnHint
	}
	enabled := b.Bool.Enabled()
	btn := IconButton(th, &b.Clickable, icon, hint, enabled)
	return b.Tip.Layout(gtx, Tooltip(th, hint), func(gtx C) D {
		if !enabled {
			gtx = gtx.Disabled()
		}
		return btn.Layout(gtx)
	})
}

// Layout draws the button with the given text; returns the number of clicks
// since the last frame.
func (b *TextButton) Layout(gtx C, th *Theme, txt string) (D, int) {
	clicks := 0
	for b.Clickable.Clicked(gtx) {
		clicks++
	}
	btn := LowEmphasisButton(th, &b.Clickable, txt)
	dims := b.Tip.Layout(gtx, Tooltip(th, b.Hint), btn.Layout)
	return dims, clicks
}

func IconButton(th *Theme, w *widget.Clickable, icon []byte, description string, enabled bool) material.IconButtonStyle {
	ret := material.IconButton(&th.Material, w, widgetForIcon(icon), description)
	ret.Background = th.Background
	ret.Background.A = 0
	ret.Inset = layout.UniformInset(th.Button.Inset)
	if enabled {
		ret.Color = th.Button.Enabled
	} else {
		ret.Color = th.Button.Disabled
	}
	return ret
}

func LowEmphasisButton(th *Theme, w *widget.Clickable, text string) material.ButtonStyle {
	ret := material.Button(&th.Material, w, text)
	ret.Color = th.Material.Palette.Fg
	ret.Background = th.Background
	ret.Background.A = 0
	ret.Inset = layout.UniformInset(th.Button.Inset)
	ret.TextSize = unit.Sp(14)
	return ret
}

func Tooltip(th *Theme, tip string) component.Tooltip {
	tooltip := component.DesktopTooltip(&th.Material, tip)
	tooltip.Text.Color = th.Tooltip.Color
	tooltip.Bg = th.Tooltip.Bg
	return tooltip
}
