package slidermon

import (
	"errors"
	"fmt"
)

// ConfigError is returned when the axis or handle parameters of a slider are
// malformed, e.g. min >= max or step <= 0. It is returned before any handle
// is created.
type ConfigError struct {
	Field  string
	Reason string
}

// ErrGeometryNotReady is returned by the pixel mapping functions when the
// travel length has not been measured yet (travel <= 0). Hitting it is a
// programming error of the host: geometry must be supplied before pointer
// events are delivered.
var ErrGeometryNotReady = errors.New("slider geometry not ready")

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid slider config: %s %s", e.Field, e.Reason)
}
