package gioui

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gioui.org/unit"
	"gopkg.in/yaml.v2"
)

type (
	Preferences struct {
		Window WindowPreferences
		// MIDIInput is the prefix of the name of the MIDI input opened at
		// startup; empty opens nothing.
		MIDIInput string `yaml:"midiinput,omitempty"`
		// Speed is the initial playback speed: 1x, 2x or Live.
		Speed    string `yaml:",omitempty"`
		YmlError error  `yaml:"-"`
	}

	WindowPreferences struct {
		Width     int
		Height    int
		Maximized bool `yaml:",omitempty"`
	}
)

//go:embed preferences.yml
var defaultPreferencesYaml []byte

// MakePreferences returns the default preferences, overridden by the user's
// preferences.yml, if it exists. A malformed user file is reported in
// YmlError, and the fields parsed before the error are kept.
func MakePreferences() Preferences {
	var p Preferences
	if err := yaml.UnmarshalStrict(defaultPreferencesYaml, &p); err != nil {
		panic(fmt.Errorf("failed to unmarshal default preferences: %w", err))
	}
	if err := ReadCustomConfigYml("preferences.yml", &p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.YmlError = err
	}
	return p
}

// ReadCustomConfigYml strictly unmarshals the yaml file from the user's
// config directory into target, which should be a pointer.
func ReadCustomConfigYml(filename string, target any) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	b, err := os.ReadFile(filepath.Join(configDir, ConfigDir, filename))
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(b, target)
}

func (p Preferences) WindowSize() (width, height unit.Dp) {
	return unit.Dp(p.Window.Width), unit.Dp(p.Window.Height)
}
