package gioui

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"gioui.org/io/key"
	"github.com/vsariola/slidermon/monitor"
)

type KeyBinding struct {
	Key                                        string
	Shortcut, Ctrl, Command, Shift, Alt, Super bool
	// Action is the name of the action, e.g. PlayToggle. An empty action
	// unbinds the key.
	Action string
}

var (
	// boundActions maps a key press to the name of its action.
	boundActions = map[key.Event]string{}
	// shortcutText holds, for each action, the human readable key
	// combination that was bound to it last. Shown in the tooltips.
	shortcutText = map[string]string{}
)

//go:embed keybindings.yml
var defaultKeyBindings []byte

func init() {
	var bindings []KeyBinding
	if err := decodeYaml(defaultKeyBindings, &bindings); err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	var custom []KeyBinding
	switch err := ReadCustomConfig("keybindings.yml", &custom); {
	case err == nil:
		bindings = append(bindings, custom...)
	case !errors.Is(err, fs.ErrNotExist):
		log.Printf("gioui: %v", err)
	}
	for _, b := range bindings {
		b.bind()
	}
}

func (b KeyBinding) modifiers() (mods key.Modifiers) {
	for _, m := range []struct {
		set bool
		mod key.Modifiers
	}{
		{b.Shortcut, key.ModShortcut},
		{b.Ctrl, key.ModCtrl},
		{b.Command, key.ModCommand},
		{b.Shift, key.ModShift},
		{b.Alt, key.ModAlt},
		{b.Super, key.ModSuper},
	} {
		if m.set {
			mods |= m.mod
		}
	}
	return mods
}

func (b KeyBinding) bind() {
	mods := b.modifiers()
	ev := key.Event{Name: key.Name(b.Key), Modifiers: mods, State: key.Press}
	if old, ok := boundActions[ev]; ok {
		delete(shortcutText, old)
	}
	if b.Action == "" {
		delete(boundActions, ev)
		return
	}
	boundActions[ev] = b.Action
	text := b.Key
	if mods != 0 {
		text = strings.ReplaceAll(mods.String(), "-", "+") + "+" + text
	}
	shortcutText[b.Action] = text
}

// withShortcut appends the key combination of the action to the hint, if the
// action is bound to any key.
func withShortcut(hint, action string) string {
	if text, ok := shortcutText[action]; ok {
		return fmt.Sprintf("%s (%s)", hint, text)
	}
	return hint
}

// KeyEvent performs the action bound to the key, if any.
func (t *Monitor) KeyEvent(e key.Event) {
	if e.State == key.Release {
		return
	}
	action, ok := boundActions[e]
	if !ok {
		return
	}
	switch action {
	case "PlayToggle":
		t.Play().Toggle().Do()
	case "StepLeft":
		t.Play().StepLeft().Do()
	case "StepRight":
		t.Play().StepRight().Do()
	case "CycleSpeed":
		t.Play().CycleSpeed().Do()
		t.Alerts().AddNamed("Speed", "Speed "+t.Play().Speed().String(), monitor.Info)
	case "Reset":
		t.Reset().Do()
	case "FirstState":
		t.Index().SetValue(0)
	case "LastState":
		t.Index().SetValue(t.Index().Range().Max)
	case "OpenRecording":
		t.OpenRecording().Do()
	case "SaveRecording":
		t.SaveRecording().Do()
	case "NextMIDIInput":
		t.nextMIDIInput()
	case "Quit":
		t.quitted = true
	}
}
