package tray

import (
	"testing"

	"pomodial/internal/core/timer"

	"fyne.io/fyne/v2"
)

type fakeApp struct {
	menus []*fyne.Menu
	icons []fyne.Resource
}

func (app *fakeApp) SetSystemTrayMenu(menu *fyne.Menu)    { app.menus = append(app.menus, menu) }
func (app *fakeApp) SetSystemTrayIcon(icon fyne.Resource) { app.icons = append(app.icons, icon) }

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name  string
		state timer.State
		want  string
	}{
		{name: "fresh", state: timer.State{Label: "Focus", Remaining: 1500, Duration: 1500}, want: "Focus 25:00"},
		{name: "running", state: timer.State{Label: "Focus", Remaining: 1499, Duration: 1500, Running: true}, want: "Focus 24:59"},
		{name: "paused", state: timer.State{Label: "Short Break", Remaining: 61, Duration: 300}, want: "Short Break 01:01 (paused)"},
		{name: "winding", state: timer.State{Label: "Focus", Remaining: 600, Duration: 1500, Manipulating: true}, want: "Focus 10:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusLine(tt.state); got != tt.want {
				t.Fatalf("StatusLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMenuActions(t *testing.T) {
	var calls []string
	var switched timer.Mode
	app := &fakeApp{}
	manager := New(app, Callbacks{
		OnShow:        func() { calls = append(calls, "show") },
		OnToggle:      func() { calls = append(calls, "toggle") },
		OnReset:       func() { calls = append(calls, "reset") },
		OnSwitchMode:  func(mode timer.Mode) { switched = mode },
		OnToggleSound: func() { calls = append(calls, "sound") },
		OnPreferences: func() { calls = append(calls, "prefs") },
		OnQuit:        func() { calls = append(calls, "quit") },
	}, Icons{})

	if len(app.menus) != 1 {
		t.Fatalf("menu installed %d times, want 1", len(app.menus))
	}
	menu := manager.Menu()
	for _, label := range []string{"Show timer", "Start", "Reset", "Mute", "Preferences", "Quit"} {
		findItem(t, menu, label).Action()
	}
	want := []string{"show", "toggle", "reset", "sound", "prefs", "quit"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}

	modeMenu := findItem(t, menu, "Mode").ChildMenu
	findItem(t, modeMenu, "Long break").Action()
	if switched != timer.ModeLongBreak {
		t.Fatalf("switched to %q, want long_break", switched)
	}
}

func TestUpdateRelabelsItems(t *testing.T) {
	running := fyne.NewStaticResource("running.svg", []byte("<svg/>"))
	stopped := fyne.NewStaticResource("stopped.svg", []byte("<svg/>"))
	app := &fakeApp{}
	manager := New(app, Callbacks{}, Icons{Running: running, Stopped: stopped})

	manager.Update(timer.State{Mode: timer.ModeShortBreak, Label: "Short Break", Remaining: 299, Duration: 300, Running: true})
	if manager.statusItem.Label != "Short Break 04:59" {
		t.Fatalf("status = %q", manager.statusItem.Label)
	}
	if manager.toggleItem.Label != "Pause" || manager.soundItem.Label != "Unmute" {
		t.Fatalf("labels = %q / %q", manager.toggleItem.Label, manager.soundItem.Label)
	}
	if !manager.modeItems[timer.ModeShortBreak].Checked || manager.modeItems[timer.ModeWork].Checked {
		t.Fatalf("mode check marks not updated")
	}

	manager.Update(timer.State{Mode: timer.ModeShortBreak, Label: "Short Break", Remaining: 298, Duration: 300, Running: true, SoundEnabled: true})
	manager.Update(timer.State{Mode: timer.ModeWork, Label: "Focus", Remaining: 1500, Duration: 1500, SoundEnabled: true})
	if manager.toggleItem.Label != "Start" || manager.soundItem.Label != "Mute" {
		t.Fatalf("labels = %q / %q", manager.toggleItem.Label, manager.soundItem.Label)
	}

	if len(app.icons) != 2 || app.icons[0] != running || app.icons[1] != stopped {
		t.Fatalf("icons = %v, want running then stopped", app.icons)
	}
}
