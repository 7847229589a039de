package slidermon

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	// Value is the public value of a slider: a scalar when the slider has a
	// single handle, a sequence otherwise. Internally handles are always a
	// sequence; Value hides that for single handle sliders.
	Value struct {
		values []float64
		single bool
	}

	// Orientation is the direction of the primary axis of a slider.
	Orientation int
)

const (
	Horizontal Orientation = iota
	Vertical
)

// ScalarValue returns a single handle Value.
func ScalarValue(v float64) Value {
	return Value{values: []float64{v}, single: true}
}

// SequenceValue returns a multi handle Value. The slice is copied.
func SequenceValue(v ...float64) Value {
	c := make([]float64, len(v))
	copy(c, v)
	return Value{values: c}
}

// Single reports whether the value should be presented as a scalar.
func (v Value) Single() bool { return v.single }

// Float returns the scalar value, or the first value of a sequence. Returns 0
// for an empty value.
func (v Value) Float() float64 {
	if len(v.values) == 0 {
		return 0
	}
	return v.values[0]
}

// Floats returns a copy of all the values.
func (v Value) Floats() []float64 {
	ret := make([]float64, len(v.values))
	copy(ret, v.values)
	return ret
}

// Len returns the number of values.
func (v Value) Len() int { return len(v.values) }

func (v Value) String() string {
	if v.single {
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	}
	s := make([]string, len(v.values))
	for i, f := range v.values {
		s[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return "[" + strings.Join(s, " ") + "]"
}

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation parses "horizontal" or "vertical" (case insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, &ConfigError{Field: "orientation", Reason: fmt.Sprintf("unknown orientation %q", s)}
}

// UnmarshalText allows writing orientations as strings in config files.
func (o *Orientation) UnmarshalText(text []byte) error {
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
