package gioui

import (
	_ "embed"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

type (
	// Theme holds the colors and sizes of the monitor. The defaults are in
	// theme.yml; the user can override any of them in theme.yml in the
	// config directory.
	Theme struct {
		Material material.Theme `yaml:"-"`
		Define   any            // for yaml anchors only

		Background color.NRGBA
		Primary    color.NRGBA
		Text       color.NRGBA
		Disabled   color.NRGBA

		Slider      SliderStyle
		Button      ButtonStyle
		Label       LabelStyle
		Title       LabelStyle
		StateText   LabelStyle
		Alert       AlertStyles
		Tooltip     struct{ Color, Bg color.NRGBA }
		PanelInset  layout.Inset
		SliderInset layout.Inset
	}

	SliderStyle struct {
		Height         unit.Dp
		HandleSize     unit.Dp
		TrackThickness unit.Dp
		Track          color.NRGBA
		Fill           color.NRGBA
		Handle         color.NRGBA
		Active         color.NRGBA
		Disabled       color.NRGBA
	}

	ButtonStyle struct {
		Enabled  color.NRGBA
		Disabled color.NRGBA
		Inset    unit.Dp
	}
)

//go:embed theme.yml
var defaultTheme []byte

// NewTheme returns the default theme overridden by the user theme. The
// returned warning is non-nil if the user theme could not be read.
func NewTheme() (*Theme, error) {
	var theme Theme
	warn := ReadConfig(defaultTheme, "theme.yml", &theme)
	theme.Material = *material.NewTheme()
	theme.Material.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	theme.Material.Palette = material.Palette{
		Bg:         theme.Background,
		Fg:         theme.Text,
		ContrastBg: theme.Primary,
		ContrastFg: theme.Background,
	}
	return &theme, warn
}
