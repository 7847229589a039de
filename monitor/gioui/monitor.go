// Package gioui is the desktop host of the monitor: a window with the slider
// scrubbing the recording, the transport buttons and the current state.
package gioui

import (
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/vsariola/slidermon/monitor"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	Monitor struct {
		Theme      *Theme
		Slider     *SliderWidget
		PopupAlert *AlertsState
		Explorer   *explorer.Explorer
		Exploring  bool

		PlayBtn      *ToggleButton
		StepLeftBtn  *ActionButton
		StepRightBtn *ActionButton
		OpenBtn      *ActionButton
		SaveBtn      *ActionButton
		ResetBtn     *ActionButton
		SpeedBtn     *TextButton
		MIDIBtn      *TextButton

		stateList widget.List
		quitted   bool

		preferences Preferences

		*monitor.Model
	}

	OpenRecording Monitor
	SaveRecording Monitor

	C = layout.Context
	D = layout.Dimensions
)

func NewMonitor(model *monitor.Model) *Monitor {
	t := &Monitor{
		Slider:     NewSliderWidget(),
		PopupAlert: NewAlertsState(),
		SpeedBtn:   &TextButton{Hint: withShortcut("Playback speed", "CycleSpeed")},
		MIDIBtn:    &TextButton{Hint: withShortcut("MIDI input", "NextMIDIInput")},
		Model:      model,
	}
	t.stateList.Axis = layout.Vertical
	t.PlayBtn = NewToggleButton(model.Play().Playing(), icons.AVPlayArrow, icons.AVPause, "Play", "Pause", "PlayToggle")
	t.StepLeftBtn = NewActionButton(model.Play().StepLeft(), icons.AVSkipPrevious, "Previous state", "StepLeft")
	t.StepRightBtn = NewActionButton(model.Play().StepRight(), icons.AVSkipNext, "Next state", "StepRight")
	t.OpenBtn = NewActionButton(t.OpenRecording(), icons.FileFolderOpen, "Open recording", "OpenRecording")
	t.SaveBtn = NewActionButton(t.SaveRecording(), icons.ContentSave, "Save recording", "SaveRecording")
	t.ResetBtn = NewActionButton(model.Reset(), icons.NavigationRefresh, "Reset to the initial state", "Reset")
	var warn error
	if t.Theme, warn = NewTheme(); warn != nil {
		model.Alerts().AddAlert(monitor.Alert{
			Priority: monitor.Warning,
			Message:  warn.Error(),
			Duration: 10 * time.Second,
		})
	}
	t.preferences = MakePreferences()
	if t.preferences.YmlError != nil {
		model.Alerts().AddAlert(monitor.Alert{
			Priority: monitor.Warning,
			Message:  fmt.Sprintf("Preferences YML Error: %s", t.preferences.YmlError),
			Duration: 10 * time.Second,
		})
	}
	if t.preferences.Speed != "" {
		if speed, err := monitor.ParseSpeedMode(t.preferences.Speed); err == nil {
			model.Play().Speed().SetValue(int(speed))
		} else {
			model.Alerts().Add(err.Error(), monitor.Warning)
		}
	}
	if err := model.Mount(t.Slider); err != nil {
		model.Alerts().Add(err.Error(), monitor.Error)
	}
	model.MIDI().Refresh().Do()
	model.MIDI().OpenByPrefix(t.preferences.MIDIInput)
	return t
}

func (t *Monitor) Main() {
	var ops op.Ops
	w := t.newWindow()
	titlePath := t.FilePath()
	w.Option(app.Title(titleFromPath(titlePath)))
	t.Explorer = explorer.NewExplorer(w)
	acks := make(chan struct{})
	events := make(chan event.Event)
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()
F:
	for {
		select {
		case <-t.Broker().ToGUI:
			w.Invalidate()
		case e := <-t.Broker().ToModel:
			t.ProcessMsg(e)
			w.Invalidate()
		case <-t.Broker().CloseGUI:
			w.Perform(system.ActionClose)
		case e := <-events:
			t.Explorer.ListenEvents(e)
			switch e := e.(type) {
			case app.DestroyEvent:
				acks <- struct{}{}
				break F
			case app.FrameEvent:
				if titlePath != t.FilePath() {
					titlePath = t.FilePath()
					w.Option(app.Title(titleFromPath(titlePath)))
				}
				gtx := app.NewContext(&ops, e)
				t.Layout(gtx)
				e.Frame(gtx.Ops)
				if t.quitted {
					w.Perform(system.ActionClose)
				}
			}
			acks <- struct{}{}
		}
	}
	t.Model.Close()
	close(t.Broker().FinishedGUI)
}

func (t *Monitor) newWindow() *app.Window {
	w := new(app.Window)
	w.Option(app.Size(t.preferences.WindowSize()))
	if t.preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	return w
}

func titleFromPath(path string) string {
	if path == "" {
		return "Slidermon"
	}
	return fmt.Sprintf("Slidermon - %s", path)
}

func (t *Monitor) Layout(gtx C) {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, t.Theme.Background)
	event.Op(gtx.Ops, t)

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(t.layoutTitle),
		layout.Rigid(func(gtx C) D {
			return t.Theme.SliderInset.Layout(gtx, func(gtx C) D {
				return t.Slider.Layout(gtx, t.Theme, t.Model.Slider())
			})
		}),
		layout.Rigid(t.layoutTransport),
		layout.Flexed(1, t.layoutState),
	)
	alerts := Alerts(t.Alerts(), t.Theme, t.PopupAlert)
	alerts.Layout(gtx)

	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "", Optional: key.ModAlt | key.ModCommand | key.ModShift | key.ModShortcut | key.ModSuper},
			transfer.TargetFilter{Target: t, Type: "application/text"},
		)
		if !ok {
			break
		}
		switch e := ev.(type) {
		case key.Event:
			t.KeyEvent(e)
		case transfer.DataEvent:
			t.ReadRecording(e.Open())
		}
	}
}

func (t *Monitor) layoutTitle(gtx C) D {
	name := t.Recording().Name
	if name == "" {
		name = "Untitled recording"
	}
	return t.Theme.PanelInset.Layout(gtx, Label(t.Theme, &t.Theme.Title, name).Layout)
}

func (t *Monitor) layoutTransport(gtx C) D {
	rng := t.Index().Range()
	return t.Theme.PanelInset.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx C) D { return t.StepLeftBtn.Layout(gtx, t.Theme) }),
			layout.Rigid(func(gtx C) D { return t.PlayBtn.Layout(gtx, t.Theme) }),
			layout.Rigid(func(gtx C) D { return t.StepRightBtn.Layout(gtx, t.Theme) }),
			layout.Rigid(func(gtx C) D {
				dims, clicks := t.SpeedBtn.Layout(gtx, t.Theme, t.Play().Speed().String())
				for range clicks {
					t.Play().CycleSpeed().Do()
				}
				return dims
			}),
			layout.Rigid(func(gtx C) D { return t.ResetBtn.Layout(gtx, t.Theme) }),
			layout.Rigid(func(gtx C) D { return t.OpenBtn.Layout(gtx, t.Theme) }),
			layout.Rigid(func(gtx C) D { return t.SaveBtn.Layout(gtx, t.Theme) }),
			layout.Rigid(func(gtx C) D {
				dims, clicks := t.MIDIBtn.Layout(gtx, t.Theme, "MIDI: "+t.MIDI().Input().String())
				for range clicks {
					t.nextMIDIInput()
				}
				return dims
			}),
			layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }),
			layout.Rigid(Label(t.Theme, &t.Theme.Label, fmt.Sprintf("%d", rng.Min)).Layout),
			layout.Rigid(layout.Spacer{Width: 8}.Layout),
			layout.Rigid(Label(t.Theme, &t.Theme.Title, t.Index().String()).Layout),
			layout.Rigid(layout.Spacer{Width: 8}.Layout),
			layout.Rigid(Label(t.Theme, &t.Theme.Label, fmt.Sprintf("%d", rng.Max)).Layout),
		)
	})
}

func (t *Monitor) layoutState(gtx C) D {
	lines := strings.Split(strings.TrimRight(t.StateText(false), "\n"), "\n")
	return t.Theme.PanelInset.Layout(gtx, func(gtx C) D {
		return material.List(&t.Theme.Material, &t.stateList).Layout(gtx, len(lines), func(gtx C, i int) D {
			l := Label(t.Theme, &t.Theme.StateText, lines[i])
			return l.Layout(gtx)
		})
	})
}

// nextMIDIInput cycles the MIDI inputs: closed, first device, second device
// etc.
func (t *Monitor) nextMIDIInput() {
	input := t.MIDI().Input()
	if !input.Add(1) {
		input.SetValue(0)
	}
}

func (t *Monitor) OpenRecording() monitor.Action {
	return monitor.MakeAction((*OpenRecording)(t))
}
func (t *OpenRecording) Enabled() bool { return !t.Exploring }
func (t *OpenRecording) Do() {
	(*Monitor)(t).explorerChooseFile(t.ReadRecording, ".yml", ".yaml", ".json")
}

func (t *Monitor) SaveRecording() monitor.Action {
	return monitor.MakeAction((*SaveRecording)(t))
}
func (t *SaveRecording) Enabled() bool { return !t.Exploring && t.Recording().Len() > 0 }
func (t *SaveRecording) Do() {
	filename := t.FilePath()
	if filename == "" {
		filename = "recording.yml"
	}
	(*Monitor)(t).explorerCreateFile(t.WriteRecording, filename)
}

func (t *Monitor) explorerChooseFile(success func(io.ReadCloser), extensions ...string) {
	t.Exploring = true
	go func() {
		file, err := t.Explorer.ChooseFile(extensions...)
		t.Broker().ToModel <- monitor.MsgToModel{Data: func() {
			t.Exploring = false
			if err == nil {
				success(file)
			} else if err != explorer.ErrUserDecline {
				t.Alerts().Add(err.Error(), monitor.Error)
			}
		}}
	}()
}

func (t *Monitor) explorerCreateFile(success func(io.WriteCloser), filename string) {
	t.Exploring = true
	go func() {
		file, err := t.Explorer.CreateFile(filename)
		t.Broker().ToModel <- monitor.MsgToModel{Data: func() {
			t.Exploring = false
			if err == nil {
				success(file)
			} else if err != explorer.ErrUserDecline {
				t.Alerts().Add(err.Error(), monitor.Error)
			}
		}}
	}()
}
