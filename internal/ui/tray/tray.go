package tray

import (
	"fmt"

	"pomodial/internal/core/timer"

	"fyne.io/fyne/v2"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnSwitchMode  func(timer.Mode)
	OnToggleSound func()
	OnPreferences func()
	OnQuit        func()
}

// Icons are swapped as the countdown starts and stops. Nil icons are skipped.
type Icons struct {
	Running fyne.Resource
	Stopped fyne.Resource
}

var modeMenuLabels = map[timer.Mode]string{
	timer.ModeWork:       "Focus",
	timer.ModeShortBreak: "Short break",
	timer.ModeLongBreak:  "Long break",
}

// Manager handles system tray state.
type Manager struct {
	app       App
	callbacks Callbacks
	icons     Icons

	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	soundItem  *fyne.MenuItem
	modeItems  map[timer.Mode]*fyne.MenuItem
	menu       *fyne.Menu

	running    bool
	hasRunning bool
}

// New creates a tray manager with the provided callbacks.
func New(app App, callbacks Callbacks, icons Icons) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		icons:     icons,
		modeItems: make(map[timer.Mode]*fyne.MenuItem, len(timer.Modes)),
	}

	manager.statusItem = fyne.NewMenuItem("Pomodial", nil)
	manager.statusItem.Disabled = true

	show := fyne.NewMenuItem("Show timer", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	reset := fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	modeMenu := fyne.NewMenu("")
	for _, mode := range timer.Modes {
		item := fyne.NewMenuItem(modeMenuLabels[mode], func() {
			if manager.callbacks.OnSwitchMode != nil {
				manager.callbacks.OnSwitchMode(mode)
			}
		})
		manager.modeItems[mode] = item
		modeMenu.Items = append(modeMenu.Items, item)
	}
	modeItem := fyne.NewMenuItem("Mode", nil)
	modeItem.ChildMenu = modeMenu

	manager.soundItem = fyne.NewMenuItem("Mute", func() {
		if manager.callbacks.OnToggleSound != nil {
			manager.callbacks.OnToggleSound()
		}
	})

	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	// fyne appends its own Quit item unless one is flagged as such.
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu("Pomodial",
		manager.statusItem,
		show,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		reset,
		modeItem,
		manager.soundItem,
		fyne.NewMenuItemSeparator(),
		preferences,
		quit,
	)
	if app != nil {
		app.SetSystemTrayMenu(manager.menu)
	}

	return manager
}

// Update reflects a timer snapshot in the menu.
func (manager *Manager) Update(state timer.State) {
	manager.statusItem.Label = StatusLine(state)

	if state.Running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.toggleItem.Disabled = !state.Running && state.Remaining <= 0

	if state.SoundEnabled {
		manager.soundItem.Label = "Mute"
	} else {
		manager.soundItem.Label = "Unmute"
	}

	for mode, item := range manager.modeItems {
		item.Checked = mode == state.Mode
	}

	manager.refreshIcon(state.Running)
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// StatusLine renders the disabled first menu entry, e.g. "Focus 24:59".
func StatusLine(state timer.State) string {
	status := fmt.Sprintf("%s %s", state.Label, state.Clock())
	if !state.Running && !state.Manipulating && state.Remaining < state.Duration {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return status
}

func (manager *Manager) refreshIcon(running bool) {
	if manager.app == nil || (manager.hasRunning && manager.running == running) {
		return
	}
	manager.running = running
	manager.hasRunning = true

	icon := manager.icons.Stopped
	if running {
		icon = manager.icons.Running
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
