package slidermon_test

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/vsariola/slidermon"
)

func TestNewAxisRejectsMalformedConfig(t *testing.T) {
	var tests = []struct {
		min, max, step float64
	}{
		{0, 10, 0},
		{0, 10, -1},
		{10, 0, 1},
		{5, 5, 1},
		{0, math.Inf(1), 1},
		{0, 10, math.NaN()},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("NewAxis %d", i), func(t *testing.T) {
			_, err := slidermon.NewAxis(tt.min, tt.max, tt.step)
			var cerr *slidermon.ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("NewAxis(%v, %v, %v) returned %v, want *ConfigError", tt.min, tt.max, tt.step, err)
			}
		})
	}
	if _, err := slidermon.NewAxis(0, 10, 0.5); err != nil {
		t.Fatalf("NewAxis(0, 10, 0.5) failed: %v", err)
	}
}

func TestOffsetToValueNeedsGeometry(t *testing.T) {
	a := mustAxis(t, 0, 100, 1)
	if _, err := a.OffsetToValue(10, 0); !errors.Is(err, slidermon.ErrGeometryNotReady) {
		t.Fatalf("OffsetToValue with zero travel returned %v, want ErrGeometryNotReady", err)
	}
	v, err := a.OffsetToValue(150, 300)
	if err != nil {
		t.Fatalf("OffsetToValue failed: %v", err)
	}
	if v != 50 {
		t.Fatalf("OffsetToValue(150, 300) = %v, want 50", v)
	}
}

func TestValueToOffsetDegenerateAxis(t *testing.T) {
	a := slidermon.Axis{Min: 3, Max: 3, Step: 1}
	if o := a.ValueToOffset(3, 200); o != 0 {
		t.Fatalf("degenerate axis offset = %v, want 0", o)
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	a := mustAxis(t, -20, 80, 0.5)
	const travel = 317
	for v := a.Min; v <= a.Max; v += 0.25 {
		offset := a.ValueToOffset(v, travel)
		back, err := a.OffsetToValue(offset, travel)
		if err != nil {
			t.Fatalf("OffsetToValue failed: %v", err)
		}
		if d := math.Abs(a.ValueToOffset(a.Clamp(back), travel) - offset); d > 1e-9 {
			t.Fatalf("round trip of %v drifted by %v pixels", v, d)
		}
	}
}

func TestAlignToStep(t *testing.T) {
	var tests = []struct {
		min, max, step float64
		input, want    float64
	}{
		{0, 100, 1, 2.4, 2},
		{0, 100, 1, 2.5, 3},
		{0, 100, 1, 99.7, 100},
		{0, 1, 0.1, 0.26, 0.3},
		{0, 1, 0.1, 0.14, 0.1},
		{0, 10, 4, 10, 8},
		{-5, 5, 2.5, 1.3, 2.5},
		{0, 100, 1, -3, 0},
		{0, 100, 1, 250, 100},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("AlignToStep %d", i), func(t *testing.T) {
			a := mustAxis(t, tt.min, tt.max, tt.step)
			if got := a.AlignToStep(tt.input); got != tt.want {
				t.Errorf("AlignToStep(%v) on %+v = %v, want %v", tt.input, a, got, tt.want)
			}
		})
	}
}

func TestAlignToStepIdempotentAndOnGrid(t *testing.T) {
	axes := []slidermon.Axis{
		mustAxis(t, 0, 100, 3),
		mustAxis(t, 0.5, 7.3, 0.2),
		mustAxis(t, -1, 1, 0.01),
	}
	for _, a := range axes {
		for x := -20.0; x < 120; x += 0.37 {
			a1 := a.AlignToStep(x)
			if a2 := a.AlignToStep(a1); a2 != a1 {
				t.Fatalf("AlignToStep not idempotent on %+v: %v -> %v -> %v", a, x, a1, a2)
			}
			if a1 < a.Min || a1 > a.Max {
				t.Fatalf("AlignToStep(%v) = %v is outside %+v", x, a1, a)
			}
			k := (a1 - a.Min) / a.Step
			if math.Abs(k-math.Round(k)) > 1e-6 {
				t.Fatalf("AlignToStep(%v) = %v is not on the step grid of %+v", x, a1, a)
			}
		}
	}
}

func TestLinspace(t *testing.T) {
	if got, want := slidermon.Linspace(0, 100, 5), []float64{0, 25, 50, 75, 100}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Linspace(0, 100, 5) = %v, want %v", got, want)
	}
	if got, want := slidermon.Linspace(3, 9, 1), []float64{3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Linspace(3, 9, 1) = %v, want %v", got, want)
	}
	if got := slidermon.Linspace(3, 9, 0); got != nil {
		t.Fatalf("Linspace(3, 9, 0) = %v, want nil", got)
	}
}

func mustAxis(t *testing.T, min, max, step float64) slidermon.Axis {
	t.Helper()
	a, err := slidermon.NewAxis(min, max, step)
	if err != nil {
		t.Fatalf("NewAxis(%v, %v, %v) failed: %v", min, max, step, err)
	}
	return a
}
