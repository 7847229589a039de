package monitor

import "strconv"

// The GUIs never touch the model fields directly. Instead, the model hands
// out small value types (Action, Bool, Int) wrapping an implementation that
// knows how to read and change one aspect of the model. The wrappers do the
// bookkeeping common to all of them: checking if the control is enabled,
// clamping to the range and skipping no-op changes.

type (
	// Enabler is optionally implemented by the values wrapped in Action, Bool
	// and Int. A disabled control is grayed out in the GUI and ignores
	// changes.
	Enabler interface {
		Enabled() bool
	}

	// Doer performs an action, e.g. stepping one state back.
	Doer interface {
		Do()
	}

	// Action is something the user can do to the model, typically bound to a
	// button and a keyboard shortcut.
	Action struct {
		doer Doer
	}

	BoolValue interface {
		Value() bool
		SetValue(bool)
	}

	// Bool is an on/off property of the model, e.g. whether the playback is
	// running.
	Bool struct {
		value BoolValue
	}

	IntValue interface {
		Value() int
		SetValue(int) (changed bool)
		Range() RangeInclusive
	}

	// StringOfer is optionally implemented by an IntValue to label its
	// values, e.g. 1x, 2x and Live for the speed modes.
	StringOfer interface {
		StringOf(value int) string
	}

	// Int is an integer property of the model, e.g. the index of the current
	// state. SetValue clamps the value into Range and never calls the
	// underlying IntValue with an unchanged value.
	Int struct {
		value IntValue
	}

	// RangeInclusive is an inclusive range of integers [Min, Max].
	RangeInclusive struct{ Min, Max int }

	ptrBool bool
)

// isEnabled reports whether v is enabled. A nil v is never enabled, and a v
// not implementing Enabler is always enabled.
func isEnabled(v any) bool {
	if v == nil {
		return false
	}
	if e, ok := v.(Enabler); ok {
		return e.Enabled()
	}
	return true
}

func MakeAction(doer Doer) Action { return Action{doer: doer} }

func (a Action) Enabled() bool { return a.doer != nil && isEnabled(a.doer) }

// Do performs the action, unless it is disabled.
func (a Action) Do() {
	if a.Enabled() {
		a.doer.Do()
	}
}

func MakeBool(value BoolValue) Bool { return Bool{value: value} }

// MakeBoolFromPtr makes a Bool that is backed by a plain bool variable.
func MakeBoolFromPtr(value *bool) Bool { return Bool{value: (*ptrBool)(value)} }

func (v Bool) Enabled() bool { return v.value != nil && isEnabled(v.value) }

func (v Bool) Value() bool { return v.value != nil && v.value.Value() }

func (v Bool) Toggle() { v.SetValue(!v.Value()) }

func (v Bool) SetValue(value bool) (changed bool) {
	if !v.Enabled() || v.Value() == value {
		return false
	}
	v.value.SetValue(value)
	return true
}

func (p *ptrBool) Value() bool         { return bool(*p) }
func (p *ptrBool) SetValue(value bool) { *p = ptrBool(value) }

func MakeInt(value IntValue) Int { return Int{value: value} }

func (v Int) Enabled() bool { return v.value != nil && isEnabled(v.value) }

func (v Int) Value() int {
	if v.value == nil {
		return 0
	}
	return v.value.Value()
}

func (v Int) Range() RangeInclusive {
	if v.value == nil {
		return RangeInclusive{}
	}
	return v.value.Range()
}

func (v Int) SetValue(value int) (changed bool) {
	if v.value == nil {
		return false
	}
	value = v.Range().Clamp(value)
	if value == v.Value() {
		return false
	}
	return v.value.SetValue(value)
}

func (v Int) Add(delta int) (changed bool) { return v.SetValue(v.Value() + delta) }

func (v Int) String() string { return v.StringOf(v.Value()) }

func (v Int) StringOf(value int) string {
	if s, ok := v.value.(StringOfer); ok {
		return s.StringOf(value)
	}
	return strconv.Itoa(value)
}

func (r RangeInclusive) Clamp(value int) int { return max(min(value, r.Max), r.Min) }
