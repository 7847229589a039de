package monitor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/slidermon/monitor"
)

func alertsOf(a *monitor.Alerts) []monitor.Alert {
	var ret []monitor.Alert
	for _, alert := range a.Iterate {
		ret = append(ret, alert)
	}
	return ret
}

func TestAlertsFadeInAndOut(t *testing.T) {
	var a monitor.Alerts
	a.Add("hello", monitor.Info)
	require.True(t, a.Update(75*time.Millisecond))
	assert.InDelta(t, 0.5, alertsOf(&a)[0].FadeLevel, 1e-9)
	a.Update(75 * time.Millisecond)
	assert.InDelta(t, 1.0, alertsOf(&a)[0].FadeLevel, 1e-9)
	a.Update(3 * time.Second)
	require.Equal(t, 1, a.Len(), "an expired alert should fade out before it is removed")
	a.Update(75 * time.Millisecond)
	assert.InDelta(t, 0.5, alertsOf(&a)[0].FadeLevel, 1e-9)
	assert.False(t, a.Update(75*time.Millisecond))
	assert.Equal(t, 0, a.Len())
}

func TestAlertsNamed(t *testing.T) {
	var a monitor.Alerts
	a.AddNamed("midi", "first", monitor.Info)
	a.Add("other", monitor.Warning)
	a.AddNamed("midi", "second", monitor.Error)
	alerts := alertsOf(&a)
	require.Len(t, alerts, 2)
	assert.Equal(t, "second", alerts[0].Message)
	assert.Equal(t, monitor.Error, alerts[0].Priority)
	a.ClearNamed("midi")
	a.Update(time.Second)
	alerts = alertsOf(&a)
	require.Len(t, alerts, 1)
	assert.Equal(t, "other", alerts[0].Message)
}

func TestAlertsDropOldest(t *testing.T) {
	var a monitor.Alerts
	for i := range 12 {
		a.Add(string(rune('a'+i)), monitor.Info)
	}
	alerts := alertsOf(&a)
	require.Len(t, alerts, 10)
	assert.Equal(t, "c", alerts[0].Message)
}

type counter struct {
	value    int
	disabled bool
}

func (c *counter) Value() int                    { return c.value }
func (c *counter) SetValue(v int) bool           { c.value = v; return true }
func (c *counter) Range() monitor.RangeInclusive { return monitor.RangeInclusive{Min: -2, Max: 2} }
func (c *counter) Enabled() bool                 { return !c.disabled }
func (c *counter) Do()                           { c.value++ }

func TestIntClamps(t *testing.T) {
	c := &counter{}
	i := monitor.MakeInt(c)
	assert.True(t, i.Add(5))
	assert.Equal(t, 2, i.Value())
	assert.False(t, i.Add(1), "value at the end of the range should not change")
	assert.Equal(t, "2", i.String())
	assert.Equal(t, 0, monitor.Int{}.Value())
}

func TestActionEnabled(t *testing.T) {
	c := &counter{disabled: true}
	a := monitor.MakeAction(c)
	a.Do()
	assert.Equal(t, 0, c.value)
	c.disabled = false
	a.Do()
	assert.Equal(t, 1, c.value)
	assert.False(t, monitor.Action{}.Enabled())
}

func TestBoolFromPtr(t *testing.T) {
	var v bool
	b := monitor.MakeBoolFromPtr(&v)
	b.Toggle()
	assert.True(t, v)
	assert.False(t, b.SetValue(true))
}
