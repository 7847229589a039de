package gioui

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDir is the directory under os.UserConfigDir() where the user can
// override the embedded defaults.
const ConfigDir = "slidermon"

// ReadCustomConfig reads filename from the user config directory into
// target, which should be a pointer. Unknown fields are errors.
func ReadCustomConfig(filename string, target any) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(configDir, ConfigDir, filename)
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := decodeYaml(b, target); err != nil {
		return fmt.Errorf("error in %s: %w", path, err)
	}
	return nil
}

// ReadConfig decodes the embedded defaults into target and then overlays the
// user config with the same filename, if there is one. The defaults are
// compiled in, so failing to decode them panics; problems with the user
// config are returned as a warning.
func ReadConfig(defaultConfig []byte, filename string, target any) (warn error) {
	if err := decodeYaml(defaultConfig, target); err != nil {
		panic(fmt.Errorf("failed to unmarshal default %s: %w", filename, err))
	}
	if err := ReadCustomConfig(filename, target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func decodeYaml(b []byte, target any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(target)
}
