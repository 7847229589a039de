package slidermon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	// Recording is a recorded history of application states: every Step is
	// the action that produced a state, the time it happened (relative to the
	// start of the recording) and the state itself. The monitor scrubs and
	// replays recordings; the index of the current step is what the monitor
	// slider controls.
	Recording struct {
		Name  string
		Steps []Step
	}

	// Step is one recorded state. In files, Timestamp is written in
	// milliseconds.
	Step struct {
		Action    string
		Timestamp time.Duration
		State     any
	}

	recordingFile struct {
		Name  string     `yaml:"name,omitempty" json:"name,omitempty"`
		Steps []stepFile `yaml:"steps" json:"steps"`
	}

	stepFile struct {
		Action    string `yaml:"action" json:"action"`
		Timestamp int64  `yaml:"timestamp" json:"timestamp"`
		State     any    `yaml:"state,omitempty" json:"state,omitempty"`
	}
)

// Len returns the number of steps in the recording.
func (r *Recording) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Steps)
}

// Timestamp returns the timestamp of the i-th step, or 0 if i is out of
// range.
func (r *Recording) Timestamp(i int) time.Duration {
	if i < 0 || i >= r.Len() {
		return 0
	}
	return r.Steps[i].Timestamp
}

// Delta returns the time between the i-th and (i+1)-th step. Recordings
// with non-monotonic timestamps yield 0 instead of negative delays.
func (r *Recording) Delta(i int) time.Duration {
	if i < 0 || i+1 >= r.Len() {
		return 0
	}
	d := r.Steps[i+1].Timestamp - r.Steps[i].Timestamp
	if d < 0 {
		return 0
	}
	return d
}

// Truncate returns a copy of the recording with only the first n steps.
func (r *Recording) Truncate(n int) Recording {
	if n < 0 {
		n = 0
	}
	if n > r.Len() {
		n = r.Len()
	}
	steps := make([]Step, n)
	copy(steps, r.Steps[:n])
	return Recording{Name: r.Name, Steps: steps}
}

// ParseRecording parses a recording, trying json first and yaml then.
// Unknown fields are errors in both formats.
func ParseRecording(b []byte) (Recording, error) {
	var f recordingFile
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	errJSON := dec.Decode(&f)
	if errJSON != nil {
		f = recordingFile{}
		ydec := yaml.NewDecoder(bytes.NewReader(b))
		ydec.KnownFields(true)
		if errYaml := ydec.Decode(&f); errYaml != nil {
			if errors.Is(errYaml, io.EOF) {
				return Recording{}, errors.New("empty recording")
			}
			return Recording{}, fmt.Errorf("could not parse recording: %v / %v", errYaml, errJSON)
		}
	}
	ret := Recording{Name: f.Name, Steps: make([]Step, len(f.Steps))}
	for i, s := range f.Steps {
		ret.Steps[i] = Step{Action: s.Action, Timestamp: time.Duration(s.Timestamp) * time.Millisecond, State: s.State}
	}
	return ret, nil
}

// ReadRecording reads all of r and parses it with ParseRecording.
func ReadRecording(r io.Reader) (Recording, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Recording{}, fmt.Errorf("io.ReadAll: %w", err)
	}
	return ParseRecording(b)
}

// MarshalRecording marshals the recording as json if asJSON is true, yaml
// otherwise.
func MarshalRecording(r *Recording, asJSON bool) ([]byte, error) {
	f := recordingFile{Name: r.Name, Steps: make([]stepFile, len(r.Steps))}
	for i, s := range r.Steps {
		f.Steps[i] = stepFile{Action: s.Action, Timestamp: s.Timestamp.Milliseconds(), State: s.State}
	}
	if asJSON {
		return json.Marshal(f)
	}
	return yaml.Marshal(f)
}
