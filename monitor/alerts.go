package monitor

import (
	"log"
	"time"
)

type (
	// Alerts is the list of messages shown to the user by the hosts, e.g.
	// a recording that failed to load. Alerts fade in, stay for their
	// Duration and fade out.
	Alerts struct {
		alerts []Alert
	}

	Alert struct {
		Name      string // alerts with the same non-empty name replace each other
		Priority  AlertPriority
		Message   string
		Duration  time.Duration
		FadeLevel float64
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const (
	defaultAlertDuration = 3 * time.Second
	alertFadeTime        = 150 * time.Millisecond
	maxAlerts            = 10
)

// Alerts returns the alerts of the model.
func (m *Model) Alerts() *Alerts { return &m.alerts }

// Add adds an unnamed alert with the default duration.
func (m *Alerts) Add(message string, priority AlertPriority) {
	m.AddAlert(Alert{Priority: priority, Message: message, Duration: defaultAlertDuration})
}

// AddNamed adds an alert, replacing a visible alert with the same name.
func (m *Alerts) AddNamed(name, message string, priority AlertPriority) {
	m.AddAlert(Alert{Name: name, Priority: priority, Message: message, Duration: defaultAlertDuration})
}

func (m *Alerts) AddAlert(a Alert) {
	if a.Priority >= Warning {
		log.Printf("monitor: %s", a.Message)
	}
	if a.Name != "" {
		for i := range m.alerts {
			if m.alerts[i].Name == a.Name {
				a.FadeLevel = m.alerts[i].FadeLevel
				m.alerts[i] = a
				return
			}
		}
	}
	if len(m.alerts) >= maxAlerts {
		m.alerts = append(m.alerts[:0], m.alerts[1:]...)
	}
	m.alerts = append(m.alerts, a)
}

// ClearNamed starts fading out the alert with the given name.
func (m *Alerts) ClearNamed(name string) {
	for i := range m.alerts {
		if m.alerts[i].Name == name {
			m.alerts[i].Duration = 0
		}
	}
}

// Update advances the alerts by d: visible alerts count down their
// duration, new alerts fade in and expired alerts fade out and are removed.
// Returns true if the alerts are still animating.
func (m *Alerts) Update(d time.Duration) (animating bool) {
	fade := float64(d) / float64(alertFadeTime)
	kept := m.alerts[:0]
	for _, a := range m.alerts {
		if a.Duration > 0 {
			a.Duration -= d
			if a.FadeLevel < 1 {
				a.FadeLevel = min(a.FadeLevel+fade, 1)
				animating = true
			}
		} else {
			a.FadeLevel -= fade
			if a.FadeLevel <= 0 {
				continue
			}
			animating = true
		}
		kept = append(kept, a)
	}
	m.alerts = kept
	return animating || len(m.alerts) > 0
}

// Iterate yields the alerts, oldest first.
func (m *Alerts) Iterate(yield func(index int, alert Alert) bool) {
	for i, a := range m.alerts {
		if !yield(i, a) {
			return
		}
	}
}

// Len returns the number of alerts, including the ones still fading out.
func (m *Alerts) Len() int { return len(m.alerts) }
