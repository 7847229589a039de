package slidermon

import (
	"fmt"
	"log"

	"github.com/viterin/vek"
)

type (
	// Handles is an ordered set of handle values on an Axis. The order is the
	// creation order of the handles, not necessarily ascending by value.
	// Every mutation replaces the value slice with a new one, so slices handed
	// out earlier (e.g. inside a Value) are never modified afterwards.
	//
	// When MinDistance > 0, adjacent handles (in array order) are kept at least
	// MinDistance apart: SetValue rejects updates that would break this and
	// SnapTo pushes the neighbors out of the way.
	Handles struct {
		axis        Axis
		values      []float64
		zOrder      []int
		minDistance float64
		diagnostics []string
	}

	// HandleOptions are the construction parameters of Handles. Value is
	// preferred over DefaultValue when both have the right length.
	HandleOptions struct {
		Count        int
		Value        []float64
		DefaultValue []float64
		MinDistance  float64
	}
)

// gapEpsilon is the tolerance used when comparing gaps between handles;
// aligned values carry at most 5 fractional digits, so anything smaller than
// that is floating point noise.
const gapEpsilon = 1e-7

// NewHandles resolves the initial values of the handles and returns a new
// Handles. If neither Value nor DefaultValue match Count, the handles are
// distributed evenly over the axis and a diagnostic is logged.
func NewHandles(axis Axis, opts HandleOptions) (*Handles, error) {
	if _, err := NewAxis(axis.Min, axis.Max, axis.Step); err != nil {
		return nil, err
	}
	if opts.Count < 1 {
		return nil, &ConfigError{Field: "handles", Reason: "count must be at least 1"}
	}
	if !(opts.MinDistance >= 0) {
		return nil, &ConfigError{Field: "minDistance", Reason: "must not be negative"}
	}
	h := &Handles{axis: axis, minDistance: opts.MinDistance}
	var initial []float64
	switch {
	case opts.Count == 1 && len(opts.Value) == 0:
		if len(opts.DefaultValue) > 0 {
			initial = opts.DefaultValue[:1]
		} else {
			initial = []float64{axis.Min}
		}
	case len(opts.Value) == opts.Count:
		initial = opts.Value
	case len(opts.DefaultValue) == opts.Count:
		initial = opts.DefaultValue
	default:
		msg := fmt.Sprintf("number of values (%d) and default values (%d) does not match number of handles (%d), distributing evenly", len(opts.Value), len(opts.DefaultValue), opts.Count)
		log.Printf("slidermon: %s", msg)
		h.diagnostics = append(h.diagnostics, msg)
		initial = Linspace(axis.Min, axis.Max, opts.Count)
	}
	h.values = make([]float64, opts.Count)
	h.zOrder = make([]int, opts.Count)
	for i := range h.values {
		h.values[i] = axis.TrimAndAlign(initial[i])
		h.zOrder[i] = i
	}
	return h, nil
}

// Axis returns the axis of the handles.
func (h *Handles) Axis() Axis { return h.axis }

// Len returns the number of handles.
func (h *Handles) Len() int { return len(h.values) }

// MinDistance returns the minimum allowed distance between adjacent handles.
func (h *Handles) MinDistance() float64 { return h.minDistance }

// Diagnostics returns the non-fatal problems found during construction.
func (h *Handles) Diagnostics() []string { return h.diagnostics }

// ValueAt returns the value of the i-th handle. Out of range indices return
// 0.
func (h *Handles) ValueAt(i int) float64 {
	if i < 0 || i >= len(h.values) {
		return 0
	}
	return h.values[i]
}

// Values returns a copy of all handle values in creation order.
func (h *Handles) Values() []float64 {
	ret := make([]float64, len(h.values))
	copy(ret, h.values)
	return ret
}

// Value returns the public value: a scalar for a single handle, otherwise
// the whole sequence.
func (h *Handles) Value() Value {
	return Value{values: h.values, single: len(h.values) == 1}
}

// NearestHandle returns the index of the handle whose pixel offset is
// closest to offset. Ties resolve to the lowest index.
func (h *Handles) NearestHandle(offset, travel float64) int {
	dist := make([]float64, len(h.values))
	for i, v := range h.values {
		dist[i] = h.axis.ValueToOffset(v, travel)
	}
	vek.SubNumber_Inplace(dist, offset)
	vek.Abs_Inplace(dist)
	best := 0
	for i := 1; i < len(dist); i++ {
		if dist[i] < dist[best] {
			best = i
		}
	}
	return best
}

// SetValue trims and aligns raw and assigns it to the i-th handle. If the
// new value would bring the handle closer than MinDistance to one of its
// neighbors, nothing is changed and accepted is false. newValue is the
// value of the handle after the call.
func (h *Handles) SetValue(i int, raw float64) (accepted bool, newValue float64) {
	if i < 0 || i >= len(h.values) {
		return false, 0
	}
	v := h.axis.TrimAndAlign(raw)
	if h.minDistance > 0 {
		if i > 0 && v-h.values[i-1] < h.minDistance-gapEpsilon {
			return false, h.values[i]
		}
		if i < len(h.values)-1 && h.values[i+1]-v < h.minDistance-gapEpsilon {
			return false, h.values[i]
		}
	}
	if v == h.values[i] {
		return true, v
	}
	h.values = h.with(i, v)
	return true, v
}

// Assign replaces all handle values at once, e.g. when the host pushes a new
// value into the slider. The values are trimmed and aligned; if the count
// does not match or any adjacent pair is closer than MinDistance, nothing
// is changed.
func (h *Handles) Assign(values []float64) bool {
	if len(values) != len(h.values) {
		return false
	}
	next := make([]float64, len(values))
	for i, v := range values {
		next[i] = h.axis.TrimAndAlign(v)
		if i > 0 && h.minDistance > 0 && next[i]-next[i-1] < h.minDistance-gapEpsilon {
			return false
		}
	}
	h.values = next
	return true
}

// SnapTo moves the i-th handle to raw, as when the track is clicked. The
// value is first restricted so that all the other handles still fit between
// the axis bounds; then neighbors that end up closer than MinDistance are
// pushed away, one after another, until the gaps are large enough. If the
// axis is too short to fit all handles, nothing is changed.
func (h *Handles) SnapTo(i int, raw float64) (accepted bool, newValue float64) {
	if i < 0 || i >= len(h.values) {
		return false, 0
	}
	md := h.minDistance
	if md == 0 {
		v := h.axis.TrimAndAlign(raw)
		if v != h.values[i] {
			h.values = h.with(i, v)
		}
		return true, v
	}
	n := len(h.values)
	lo := h.axis.Min + float64(i)*md
	hi := h.axis.Max - float64(n-1-i)*md
	if lo > hi+gapEpsilon {
		return false, h.values[i]
	}
	v := h.axis.TrimAndAlign(clampTo(raw, lo, hi))
	if v < lo-gapEpsilon {
		v = h.axis.TrimAndAlign(v + h.axis.Step)
	}
	if v > hi+gapEpsilon {
		v = h.axis.TrimAndAlign(v - h.axis.Step)
	}
	next := h.with(i, v)
	h.pushSucceeding(next, i)
	h.pushPreceding(next, i)
	for j := 0; j < n-1; j++ {
		if next[j+1]-next[j] < md-gapEpsilon {
			return false, h.values[i]
		}
	}
	h.values = next
	return true, v
}

func (h *Handles) pushSucceeding(values []float64, index int) {
	for j := index; j < len(values)-1; j++ {
		if values[j+1]-values[j] >= h.minDistance-gapEpsilon {
			return
		}
		p := h.axis.TrimAndAlign(values[j] + h.minDistance)
		if p-values[j] < h.minDistance-gapEpsilon {
			p = h.axis.TrimAndAlign(p + h.axis.Step)
		}
		values[j+1] = p
	}
}

func (h *Handles) pushPreceding(values []float64, index int) {
	for j := index; j > 0; j-- {
		if values[j]-values[j-1] >= h.minDistance-gapEpsilon {
			return
		}
		p := h.axis.TrimAndAlign(values[j] - h.minDistance)
		if values[j]-p < h.minDistance-gapEpsilon {
			p = h.axis.TrimAndAlign(p - h.axis.Step)
		}
		values[j-1] = p
	}
}

// BringToFront moves the i-th handle to the top of the stacking order.
func (h *Handles) BringToFront(i int) {
	if i < 0 || i >= len(h.values) {
		return
	}
	z := make([]int, 0, len(h.zOrder))
	for _, j := range h.zOrder {
		if j != i {
			z = append(z, j)
		}
	}
	h.zOrder = append(z, i)
}

// ZOrder returns the handle indices from back to front.
func (h *Handles) ZOrder() []int {
	ret := make([]int, len(h.zOrder))
	copy(ret, h.zOrder)
	return ret
}

func (h *Handles) with(i int, v float64) []float64 {
	ret := make([]float64, len(h.values))
	copy(ret, h.values)
	ret[i] = v
	return ret
}

func clampTo(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
