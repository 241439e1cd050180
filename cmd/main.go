package main

import (
	"log"
	"time"

	"pomodial/internal/audio"
	"pomodial/internal/core/timer"
	"pomodial/internal/platform"
	"pomodial/internal/storage"
	"pomodial/internal/ui/animation"
	"pomodial/internal/ui/dial"
	"pomodial/internal/ui/preferences"
	"pomodial/internal/ui/tray"
	"pomodial/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Pomodial"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		if notifyErr := platform.NotifyRunning(appName); notifyErr != nil {
			log.Printf("single instance: %v", notifyErr)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	firstVisit := false
	if visited, err := storage.LoadVisit(appName); err != nil {
		log.Printf("load visit flag: %v", err)
	} else if !visited {
		firstVisit = true
		if err := storage.MarkVisited(appName); err != nil {
			log.Printf("save visit flag: %v", err)
		}
	}

	fyneApp := app.NewWithID("com.pomodial.app")
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	keeper := timer.New(settings.TimerConfig(), timer.Config{
		TickInterval: time.Second,
		Cues:         audio.NewSpeaker(),
	})

	var dialWindow *dial.Window
	intro := animation.New(animation.DefaultConfig(), func(angle float64) {
		dialWindow.SetPreviewAngle(angle)
	})
	dialWindow = dial.New(fyneApp, keeper, intro, dial.Icons{
		Focus: resources.MustIcon(resources.FocusIcon),
		Break: resources.MustIcon(resources.BreakIcon),
	})
	dialWindow.Render(keeper.Snapshot())

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		durationsChanged := !settings.SameDurations(updated)
		settings = updated
		if durationsChanged {
			keeper.UpdateConfig(settings.TimerConfig())
		}
		keeper.SetSoundEnabled(settings.SoundEnabled)
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	quit := func() {
		intro.Stop()
		keeper.Close()
		fyneApp.Quit()
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        func() { dialWindow.Show(dial.Session{}) },
			OnToggle:      keeper.Toggle,
			OnReset:       keeper.Reset,
			OnSwitchMode:  keeper.SwitchMode,
			OnToggleSound: keeper.ToggleSound,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		}, tray.Icons{
			Running: resources.MustIcon(resources.TrayRunningIcon),
			Stopped: resources.MustIcon(resources.TrayStoppedIcon),
		})
		trayManager.Update(keeper.Snapshot())
		dialWindow.Window().SetCloseIntercept(dialWindow.Window().Hide)
	} else {
		log.Printf("system tray unsupported on this platform")
		dialWindow.Window().SetCloseIntercept(quit)
	}

	go guard.Serve(func() {
		fyne.Do(func() {
			dialWindow.Show(dial.Session{})
		})
	})

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			if event.Type == timer.EventComplete {
				log.Printf("%s finished; %d focus sessions completed", event.Completed, event.State.CompletedWorkSessions)
			}
			state := event.State
			fyne.Do(func() {
				dialWindow.Render(state)
				if trayManager != nil {
					trayManager.Update(state)
				}
			})
		}
	}()

	dialWindow.Show(dial.Session{FirstVisit: firstVisit})
	fyneApp.Run()
	keeper.Close()
}
