package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	work      *widget.Entry
	short     *widget.Entry
	long      *widget.Entry
	sound     *widget.Check
	errorText *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodial Settings")

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		work:      widget.NewEntry(),
		short:     widget.NewEntry(),
		long:      widget.NewEntry(),
		sound:     widget.NewCheck("Play tick, wind and bell sounds", nil),
		errorText: widget.NewLabel(""),
	}
	prefs.errorText.Importance = widget.DangerImportance
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), prefs.work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.short, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.long, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		prefs.errorText,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 320))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.work.SetText(formatMinutes(settings.WorkDuration))
	prefs.short.SetText(formatMinutes(settings.ShortBreakDuration))
	prefs.long.SetText(formatMinutes(settings.LongBreakDuration))
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.errorText.SetText("")
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.WorkDuration = parseMinutes(prefs.work.Text)
	settings.ShortBreakDuration = parseMinutes(prefs.short.Text)
	settings.LongBreakDuration = parseMinutes(prefs.long.Text)
	settings.SoundEnabled = prefs.sound.Checked

	if err := settings.Validate(); err != nil {
		prefs.errorText.SetText(err.Error())
		return
	}

	prefs.settings = settings
	prefs.errorText.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func formatMinutes(duration time.Duration) string {
	return fmt.Sprintf("%d", int(duration.Minutes()))
}

func parseMinutes(value string) time.Duration {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(parsed) * time.Minute
}
