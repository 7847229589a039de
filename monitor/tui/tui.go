// Package tui is the terminal host of the monitor, built on bubbletea. The
// slider is drawn on one row of the terminal, one cell per unit of geometry,
// and the handle glides to its position with a harmonica spring.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/vsariola/slidermon/monitor"
	"github.com/vsariola/slidermon/slider"
)

type (
	// Model is the bubbletea model of the terminal monitor.
	Model struct {
		monitor  *monitor.Model
		bus      *slider.EventBus
		spring   harmonica.Spring
		drawn    float64 // smoothed handle offset, in cells
		velocity float64
		width    int
		height   int
		pressed  bool
		lastTick time.Time
		styles   Styles
		quitting bool
	}

	Styles struct {
		Title    lipgloss.Style
		Track    lipgloss.Style
		Fill     lipgloss.Style
		Handle   lipgloss.Style
		Disabled lipgloss.Style
		Label    lipgloss.Style
		Current  lipgloss.Style
		State    lipgloss.Style
		Help     lipgloss.Style
		Info     lipgloss.Style
		Warning  lipgloss.Style
		Error    lipgloss.Style
	}

	tickMsg time.Time
)

const (
	fps = 30
	// the slider is drawn on this row, indented by margin cells
	sliderRow = 2
	margin    = 2
)

func DefaultStyles() Styles {
	primary := lipgloss.Color("#CE93D8")
	secondary := lipgloss.Color("#80DEEA")
	dim := lipgloss.Color("#999999")
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DEDEDE")),
		Track:    lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")),
		Fill:     lipgloss.NewStyle().Foreground(secondary),
		Handle:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Label:    lipgloss.NewStyle().Foreground(dim),
		Current:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		State:    lipgloss.NewStyle().PaddingLeft(margin).Foreground(lipgloss.Color("#DEDEDE")),
		Help:     lipgloss.NewStyle().Foreground(dim),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("#DEDEDE")).Background(lipgloss.Color("#323233")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FBC02D")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#CF6679")),
	}
}

// New creates the terminal monitor for the model. The slider of the model is
// mounted to the mouse events of the terminal.
func New(m *monitor.Model) *Model {
	ret := &Model{
		monitor: m,
		bus:     &slider.EventBus{},
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.8),
		width:   80,
		height:  24,
		styles:  DefaultStyles(),
	}
	if err := m.Mount(ret.bus); err != nil {
		m.Alerts().Add(err.Error(), monitor.Error)
	}
	ret.resize()
	ret.drawn = m.Slider().HandleOffset(0)
	return ret
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitModelMsg(m.monitor.Broker()), waitGUIMsg(m.monitor.Broker()), tickCmd())
}

// waitModelMsg delivers the messages of the broker, e.g. the playback
// steps posted by monitor.BrokerScheduler, to Update.
func waitModelMsg(b *monitor.Broker) tea.Cmd {
	return func() tea.Msg { return <-b.ToModel }
}

func waitGUIMsg(b *monitor.Broker) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.ToGUI:
			return msg
		case <-b.CloseGUI:
			return tea.Quit()
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case monitor.MsgToModel:
		m.monitor.ProcessMsg(msg)
		return m, waitModelMsg(m.monitor.Broker())
	case monitor.IndexChanged:
		return m, waitGUIMsg(m.monitor.Broker())
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case tea.KeyMsg:
		return m, m.key(msg)
	case tea.MouseMsg:
		m.mouse(msg)
	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.monitor.Alerts().Update(now.Sub(m.lastTick))
		}
		m.lastTick = now
		m.drawn, m.velocity = m.spring.Update(m.drawn, m.velocity, m.monitor.Slider().HandleOffset(0))
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) key(msg tea.KeyMsg) tea.Cmd {
	play := m.monitor.Play()
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.monitor.Close()
		return tea.Quit
	case " ", "space", "ctrl+j":
		play.Toggle().Do()
	case "[", "left":
		play.StepLeft().Do()
	case "]", "right":
		play.StepRight().Do()
	case "s":
		play.CycleSpeed().Do()
		m.monitor.Alerts().AddNamed("Speed", "Speed "+play.Speed().String(), monitor.Info)
	case "r":
		m.monitor.Reset().Do()
	case "home":
		m.monitor.Index().SetValue(0)
	case "end":
		m.monitor.Index().SetValue(m.monitor.Index().Range().Max)
	case "m":
		input := m.monitor.MIDI().Input()
		if !input.Add(1) {
			input.SetValue(0)
		}
		m.monitor.Alerts().AddNamed("MIDI", "MIDI: "+input.String(), monitor.Info)
	}
	return nil
}

// mouse converts the mouse events into slider events. Presses count only on
// the slider row; drags and releases are delivered wherever they happen, so
// a drag can leave the row.
func (m *Model) mouse(msg tea.MouseMsg) {
	pos := slider.Point{X: float64(msg.X-margin) + 0.5, Y: float64(msg.Y - sliderRow)}
	e := slider.PointerEvent{Position: pos, Handle: slider.NoHandle}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y != sliderRow {
			return
		}
		m.pressed = true
		e.Kind = slider.Press
		if msg.X-margin == m.handleCell() {
			e.Handle = 0
		}
	case tea.MouseActionMotion:
		if !m.pressed {
			return
		}
		e.Kind = slider.Move
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		e.Kind = slider.Release
	default:
		return
	}
	m.bus.Publish(e)
}

func (m *Model) resize() {
	m.monitor.Slider().SetGeometry(slider.Geometry{
		Start:        0,
		AxisLength:   float64(max(m.width-2*margin, 1)),
		HandleExtent: 1,
	})
}

func (m *Model) handleCell() int {
	return int(math.Round(m.monitor.Slider().HandleOffset(0)))
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	indent := strings.Repeat(" ", margin)
	name := m.monitor.Recording().Name
	if name == "" {
		name = "Untitled recording"
	}
	if p := m.monitor.FilePath(); p != "" {
		name += " - " + p
	}
	b.WriteString(indent + m.styles.Title.Render(name) + "\n\n")
	b.WriteString(indent + m.track() + "\n")

	rng := m.monitor.Index().Range()
	status := "paused"
	if m.monitor.Play().Playing().Value() {
		status = "playing"
	}
	b.WriteString(fmt.Sprintf("%s%s %s %s   %s %s\n",
		indent,
		m.styles.Label.Render(fmt.Sprint(rng.Min)),
		m.styles.Current.Render(m.monitor.Index().String()),
		m.styles.Label.Render(fmt.Sprint(rng.Max)),
		status,
		m.styles.Label.Render(m.monitor.Play().Speed().String()),
	))
	b.WriteString(indent + m.styles.Help.Render("space play/pause  [ ] step  s speed  r reset  m midi  q quit") + "\n\n")

	lines := strings.Split(strings.TrimRight(m.monitor.StateText(false), "\n"), "\n")
	room := max(m.height-7-m.monitor.Alerts().Len(), 0)
	if len(lines) > room {
		lines = lines[:room]
	}
	b.WriteString(m.styles.State.Render(strings.Join(lines, "\n")))
	for _, a := range m.monitor.Alerts().Iterate {
		style := m.styles.Info
		switch a.Priority {
		case monitor.Warning:
			style = m.styles.Warning
		case monitor.Error:
			style = m.styles.Error
		}
		b.WriteString("\n" + indent + style.Render(" "+a.Message+" "))
	}
	return b.String()
}

func (m *Model) track() string {
	cells := max(m.width-2*margin, 1)
	handle := max(min(int(math.Round(m.drawn)), cells-1), 0)
	s := m.monitor.Slider()
	if s.Disabled() {
		return m.styles.Disabled.Render(strings.Repeat("─", cells))
	}
	fill := m.styles.Fill.Render(strings.Repeat("━", handle))
	knob := m.styles.Handle.Render("●")
	rest := m.styles.Track.Render(strings.Repeat("─", cells-handle-1))
	return fill + knob + rest
}
