package slidermon_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vsariola/slidermon"
)

func TestNewHandlesResolution(t *testing.T) {
	a := mustAxis(t, 0, 100, 1)
	var tests = []struct {
		name      string
		opts      slidermon.HandleOptions
		want      []float64
		diagnosed bool
	}{
		{"single default", slidermon.HandleOptions{Count: 1, DefaultValue: []float64{7.4}}, []float64{7}, false},
		{"single nothing", slidermon.HandleOptions{Count: 1}, []float64{0}, false},
		{"explicit", slidermon.HandleOptions{Count: 2, Value: []float64{20, 25}}, []float64{20, 25}, false},
		{"explicit preferred", slidermon.HandleOptions{Count: 2, Value: []float64{20, 25}, DefaultValue: []float64{1, 2}}, []float64{20, 25}, false},
		{"default", slidermon.HandleOptions{Count: 2, Value: []float64{1}, DefaultValue: []float64{30, 140}}, []float64{30, 100}, false},
		{"mismatch", slidermon.HandleOptions{Count: 3, Value: []float64{1, 2}}, []float64{0, 50, 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := slidermon.NewHandles(a, tt.opts)
			if err != nil {
				t.Fatalf("NewHandles failed: %v", err)
			}
			if got := h.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("initial values = %v, want %v", got, tt.want)
			}
			if d := len(h.Diagnostics()) > 0; d != tt.diagnosed {
				t.Fatalf("diagnostics = %v, want diagnosed %v", h.Diagnostics(), tt.diagnosed)
			}
		})
	}
}

func TestNewHandlesConfigErrors(t *testing.T) {
	var tests = []struct {
		name string
		axis slidermon.Axis
		opts slidermon.HandleOptions
	}{
		{"zero step", slidermon.Axis{Min: 0, Max: 10, Step: 0}, slidermon.HandleOptions{Count: 1}},
		{"no handles", slidermon.Axis{Min: 0, Max: 10, Step: 1}, slidermon.HandleOptions{Count: 0}},
		{"negative distance", slidermon.Axis{Min: 0, Max: 10, Step: 1}, slidermon.HandleOptions{Count: 2, MinDistance: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := slidermon.NewHandles(tt.axis, tt.opts)
			var cerr *slidermon.ConfigError
			if !errors.As(err, &cerr) || h != nil {
				t.Fatalf("NewHandles returned (%v, %v), want nil and *ConfigError", h, err)
			}
		})
	}
}

func TestSetValueRejectsMinDistanceViolation(t *testing.T) {
	h := mustHandles(t, slidermon.HandleOptions{Count: 2, Value: []float64{20, 25}, MinDistance: 10})
	for v := 21.0; v <= 30; v++ {
		accepted, got := h.SetValue(0, v)
		if accepted {
			t.Fatalf("SetValue(0, %v) accepted with handles %v", v, h.Values())
		}
		if got != 20 || h.ValueAt(0) != 20 {
			t.Fatalf("rejected SetValue changed the handle to %v", h.ValueAt(0))
		}
	}
	if accepted, got := h.SetValue(0, 15); !accepted || got != 15 {
		t.Fatalf("SetValue(0, 15) = (%v, %v), want (true, 15)", accepted, got)
	}
	if accepted, _ := h.SetValue(0, 16); accepted {
		t.Fatalf("SetValue(0, 16) was accepted although the gap to 25 is 9")
	}
}

func TestSetValueTrimsAndAligns(t *testing.T) {
	h := mustHandles(t, slidermon.HandleOptions{Count: 1})
	if accepted, got := h.SetValue(0, 140.2); !accepted || got != 100 {
		t.Fatalf("SetValue(0, 140.2) = (%v, %v), want (true, 100)", accepted, got)
	}
	if accepted, got := h.SetValue(0, 41.6); !accepted || got != 42 {
		t.Fatalf("SetValue(0, 41.6) = (%v, %v), want (true, 42)", accepted, got)
	}
	if accepted, _ := h.SetValue(3, 10); accepted {
		t.Fatalf("SetValue with an out of range index was accepted")
	}
}

func TestNearestHandle(t *testing.T) {
	h := mustHandles(t, slidermon.HandleOptions{Count: 3, Value: []float64{10, 50, 90}, MinDistance: 5})
	if i := h.NearestHandle(104, 200); i != 1 {
		t.Fatalf("NearestHandle(104, 200) = %v, want 1", i)
	}
	if i := h.NearestHandle(0, 200); i != 0 {
		t.Fatalf("NearestHandle(0, 200) = %v, want 0", i)
	}
	ties := mustHandles(t, slidermon.HandleOptions{Count: 2, Value: []float64{40, 60}})
	if i := ties.NearestHandle(50, 100); i != 0 {
		t.Fatalf("tie resolved to %v, want the lowest index 0", i)
	}
}

func TestSnapTo(t *testing.T) {
	var tests = []struct {
		name     string
		values   []float64
		md       float64
		index    int
		raw      float64
		accepted bool
		want     []float64
	}{
		{"no push", []float64{10, 50, 90}, 5, 1, 52, true, []float64{10, 52, 90}},
		{"push succeeding", []float64{10, 12}, 5, 0, 11, true, []float64{11, 16}},
		{"push preceding", []float64{10, 20, 30}, 5, 2, 18, true, []float64{8, 13, 18}},
		{"push to boundary", []float64{10, 20, 30}, 10, 0, 95, true, []float64{80, 90, 100}},
		{"reserve from min", []float64{10, 20, 30}, 10, 2, 3, true, []float64{0, 10, 20}},
		{"no distance", []float64{10, 12}, 0, 0, 70, true, []float64{70, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustHandles(t, slidermon.HandleOptions{Count: len(tt.values), Value: tt.values, MinDistance: tt.md})
			accepted, _ := h.SnapTo(tt.index, tt.raw)
			if accepted != tt.accepted {
				t.Fatalf("SnapTo(%v, %v) accepted = %v, want %v", tt.index, tt.raw, accepted, tt.accepted)
			}
			if got := h.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SnapTo(%v, %v) gave %v, want %v", tt.index, tt.raw, got, tt.want)
			}
		})
	}
}

func TestSnapToRejectsWhenHandlesDoNotFit(t *testing.T) {
	a := mustAxis(t, 0, 10, 1)
	h, err := slidermon.NewHandles(a, slidermon.HandleOptions{Count: 3, Value: []float64{0, 5, 10}, MinDistance: 6})
	if err != nil {
		t.Fatalf("NewHandles failed: %v", err)
	}
	if accepted, _ := h.SnapTo(1, 7); accepted {
		t.Fatalf("SnapTo accepted although three handles 6 apart cannot fit in [0, 10]")
	}
	if got, want := h.Values(), []float64{0, 5, 10}; !reflect.DeepEqual(got, want) {
		t.Fatalf("rejected SnapTo changed the values to %v", got)
	}
}

func TestZOrder(t *testing.T) {
	h := mustHandles(t, slidermon.HandleOptions{Count: 3, Value: []float64{10, 20, 30}})
	h.BringToFront(0)
	if got, want := h.ZOrder(), []int{1, 2, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ZOrder after BringToFront(0) = %v, want %v", got, want)
	}
	h.BringToFront(2)
	if got, want := h.ZOrder(), []int{1, 0, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ZOrder after BringToFront(2) = %v, want %v", got, want)
	}
}

func TestValueSnapshots(t *testing.T) {
	h := mustHandles(t, slidermon.HandleOptions{Count: 2, Value: []float64{20, 60}})
	before := h.Value()
	h.SetValue(0, 30)
	if got := before.Floats(); !reflect.DeepEqual(got, []float64{20, 60}) {
		t.Fatalf("earlier Value snapshot changed to %v", got)
	}
	if before.Single() {
		t.Fatalf("two handle value reported as single")
	}
	single := mustHandles(t, slidermon.HandleOptions{Count: 1, Value: []float64{42}})
	if v := single.Value(); !v.Single() || v.Float() != 42 {
		t.Fatalf("single handle Value = %v, want scalar 42", v)
	}
}

func mustHandles(t *testing.T, opts slidermon.HandleOptions) *slidermon.Handles {
	t.Helper()
	h, err := slidermon.NewHandles(mustAxis(t, 0, 100, 1), opts)
	if err != nil {
		t.Fatalf("NewHandles failed: %v", err)
	}
	return h
}
