package slidermon

import (
	"math"

	"github.com/viterin/vek"
)

// Axis is the logical domain [Min, Max] of a slider together with the step
// granularity the values are drawn from. An Axis built with NewAxis always
// has Min < Max and Step > 0; it is immutable for the lifetime of a slider.
type Axis struct {
	Min  float64
	Max  float64
	Step float64
}

// alignPrecision is the number of fractional digits aligned values are
// rounded to, so that floating point drift does not accumulate over repeated
// drags.
const alignPrecision = 1e5

// NewAxis validates the parameters and returns a new Axis. A *ConfigError is
// returned if min >= max, step <= 0 or any of the values is not finite.
func NewAxis(min, max, step float64) (Axis, error) {
	switch {
	case !finite(min) || !finite(max):
		return Axis{}, &ConfigError{Field: "min/max", Reason: "must be finite numbers"}
	case !finite(step):
		return Axis{}, &ConfigError{Field: "step", Reason: "must be a finite number"}
	case min >= max:
		return Axis{}, &ConfigError{Field: "min", Reason: "must be less than max"}
	case step <= 0:
		return Axis{}, &ConfigError{Field: "step", Reason: "must be greater than zero"}
	}
	return Axis{Min: min, Max: max, Step: step}, nil
}

// OffsetToValue converts a pixel offset along the track into a raw (not
// aligned, not clamped) value. travel is the usable length of the track,
// i.e. the track length minus the handle extent.
func (a Axis) OffsetToValue(offset, travel float64) (float64, error) {
	if !(travel > 0) {
		return 0, ErrGeometryNotReady
	}
	return offset/travel*(a.Max-a.Min) + a.Min, nil
}

// ValueToOffset converts a value into a pixel offset along the track. On a
// degenerate axis (Max == Min) every value maps to offset 0.
func (a Axis) ValueToOffset(value, travel float64) float64 {
	divisor := a.Max - a.Min
	if divisor == 0 {
		divisor = 1
	}
	return (value - a.Min) / divisor * travel
}

// Clamp clips value into [Min, Max].
func (a Axis) Clamp(value float64) float64 {
	if value < a.Min {
		return a.Min
	}
	if value > a.Max {
		return a.Max
	}
	return value
}

// AlignToStep snaps value to the step grid measured from Min. A remainder of
// at least half a step rounds away from the grid floor. The result is rounded
// to 5 fractional digits and always lies within [Min, Max].
func (a Axis) AlignToStep(value float64) float64 {
	if math.IsNaN(value) {
		return a.Min
	}
	if a.Step <= 0 {
		return a.Clamp(roundPrecision(value))
	}
	rem := math.Mod(value-a.Min, a.Step)
	aligned := value - rem
	if math.Abs(rem)*2 >= a.Step {
		if rem > 0 {
			aligned += a.Step
		} else {
			aligned -= a.Step
		}
	}
	aligned = roundPrecision(aligned)
	// the grid might not end exactly at Max, so stay on the grid but step
	// back inside the range
	if aligned > a.Max {
		aligned = roundPrecision(aligned - a.Step*math.Ceil((aligned-a.Max)/a.Step))
	}
	if aligned < a.Min {
		aligned = roundPrecision(aligned + a.Step*math.Ceil((a.Min-aligned)/a.Step))
	}
	return a.Clamp(aligned)
}

// TrimAndAlign is the single entry point all value mutations go through:
// clamp first, then align to the step grid.
func (a Axis) TrimAndAlign(value float64) float64 {
	return a.AlignToStep(a.Clamp(value))
}

// Linspace returns count evenly spaced values from min to max, both ends
// included. For count == 1, the result is just [min].
func Linspace(min, max float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	ret := vek.Zeros(count)
	if count == 1 {
		ret[0] = min
		return ret
	}
	for i := range ret {
		ret[i] = float64(i)
	}
	vek.MulNumber_Inplace(ret, (max-min)/float64(count-1))
	vek.AddNumber_Inplace(ret, min)
	ret[count-1] = max // avoid drift at the end
	return ret
}

func roundPrecision(v float64) float64 {
	return math.Round(v*alignPrecision) / alignPrecision
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
