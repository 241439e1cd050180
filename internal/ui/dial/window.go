package dial

import (
	"context"
	"fmt"
	"image/color"

	"pomodial/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// WindHint is shown while the dial rests at full duration.
const WindHint = "Drag on the dial to wind • Release to start"

// Controller is the part of the timer the window drives.
type Controller interface {
	Gestures
	Toggle()
	Reset()
	SwitchMode(mode timer.Mode)
	ToggleSound()
}

// Intro plays the first-visit demo of the hand.
type Intro interface {
	PlayIntro(ctx context.Context, onDone func())
	Stop()
}

// Session carries per-launch facts the window needs.
type Session struct {
	FirstVisit bool
}

// Icons decorates the mode buttons. Nil icons are allowed.
type Icons struct {
	Focus fyne.Resource
	Break fyne.Resource
}

var modeBackgrounds = map[timer.Mode]color.NRGBA{
	timer.ModeWork:       {R: 0x1a, G: 0x1a, B: 0x1a, A: 255},
	timer.ModeShortBreak: {R: 0x2d, G: 0x4a, B: 0x3e, A: 255},
	timer.ModeLongBreak:  {R: 0x3d, G: 0x2a, B: 0x1a, A: 255},
}

var modeButtonLabels = map[timer.Mode]string{
	timer.ModeWork:       "Focus",
	timer.ModeShortBreak: "Short",
	timer.ModeLongBreak:  "Long",
}

// Window hosts the dial and its controls.
type Window struct {
	window     fyne.Window
	controller Controller
	intro      Intro
	cancelCtx  context.CancelFunc
	// introActive is only touched on the UI goroutine.
	introActive bool

	dial        *Dial
	background  *canvas.Rectangle
	modeLabel   *canvas.Text
	hintLabel   *canvas.Text
	counter     *canvas.Text
	toggle      *widget.Button
	reset       *widget.Button
	mute        *widget.Button
	modeButtons map[timer.Mode]*widget.Button

	state timer.State
}

// New creates the dial window.
func New(app fyne.App, controller Controller, intro Intro, icons Icons) *Window {
	window := app.NewWindow("Pomodial")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	dialWindow := &Window{
		window:      window,
		controller:  controller,
		intro:       intro,
		background:  canvas.NewRectangle(modeBackgrounds[timer.ModeWork]),
		modeLabel:   canvas.NewText("", color.White),
		hintLabel:   canvas.NewText(WindHint, color.NRGBA{R: 255, G: 255, B: 255, A: 102}),
		counter:     canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 77}),
		modeButtons: make(map[timer.Mode]*widget.Button, len(timer.Modes)),
	}
	dialWindow.dial = NewDial(dialWindow)

	dialWindow.modeLabel.Alignment = fyne.TextAlignCenter
	dialWindow.modeLabel.TextStyle = fyne.TextStyle{Bold: true}
	dialWindow.modeLabel.TextSize = 20
	dialWindow.hintLabel.Alignment = fyne.TextAlignCenter
	dialWindow.hintLabel.TextSize = 12
	dialWindow.counter.Alignment = fyne.TextAlignCenter
	dialWindow.counter.TextSize = 12

	dialWindow.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		dialWindow.stopIntro()
		controller.Toggle()
	})
	dialWindow.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		dialWindow.stopIntro()
		controller.Reset()
	})
	dialWindow.mute = widget.NewButtonWithIcon("", theme.VolumeUpIcon(), controller.ToggleSound)
	dialWindow.mute.Importance = widget.LowImportance

	modeRow := []fyne.CanvasObject{layout.NewSpacer()}
	for _, mode := range timer.Modes {
		icon := icons.Break
		if mode == timer.ModeWork {
			icon = icons.Focus
		}
		button := widget.NewButtonWithIcon(modeButtonLabels[mode], icon, func() {
			dialWindow.stopIntro()
			controller.SwitchMode(mode)
		})
		dialWindow.modeButtons[mode] = button
		modeRow = append(modeRow, button)
	}
	modeRow = append(modeRow, layout.NewSpacer())

	header := container.NewBorder(nil, nil, nil, dialWindow.mute, dialWindow.modeLabel)
	controls := container.NewHBox(layout.NewSpacer(), dialWindow.toggle, dialWindow.reset, layout.NewSpacer())
	body := container.NewVBox(
		header,
		dialWindow.hintLabel,
		dialWindow.dial,
		controls,
		container.NewHBox(modeRow...),
		dialWindow.counter,
	)

	window.SetContent(container.NewStack(dialWindow.background, container.NewPadded(body)))
	window.Resize(fyne.NewSize(420, 620))

	return dialWindow
}

// Window returns the underlying fyne window.
func (dialWindow *Window) Window() fyne.Window {
	return dialWindow.window
}

// Show displays the window. On a first visit the intro sweep plays once.
func (dialWindow *Window) Show(session Session) {
	dialWindow.window.Show()
	dialWindow.window.RequestFocus()
	if !session.FirstVisit || dialWindow.intro == nil {
		return
	}

	dialWindow.stopIntro()
	ctx, cancel := context.WithCancel(context.Background())
	dialWindow.cancelCtx = cancel
	dialWindow.introActive = true
	dialWindow.intro.PlayIntro(ctx, func() {
		fyne.Do(func() {
			dialWindow.introActive = false
			dialWindow.dial.SetPreview(0, false)
		})
	})
}

// SetPreviewAngle moves the hand for the intro sweep. Safe from any goroutine.
func (dialWindow *Window) SetPreviewAngle(angle float64) {
	fyne.Do(func() {
		dialWindow.applyPreview(angle)
	})
}

// applyPreview drops frames that arrive after the intro was stopped.
func (dialWindow *Window) applyPreview(angle float64) {
	if !dialWindow.introActive {
		return
	}
	dialWindow.dial.SetPreview(angle, true)
}

// Render updates every control from a timer snapshot. Call on the UI goroutine.
func (dialWindow *Window) Render(state timer.State) {
	dialWindow.state = state
	if dialWindow.dial.previewing && !state.ShowWindHint() {
		dialWindow.introActive = false
		dialWindow.dial.previewing = false
	}
	dialWindow.dial.SetState(state)

	dialWindow.modeLabel.Text = state.Label
	dialWindow.modeLabel.Refresh()

	if state.ShowWindHint() {
		dialWindow.hintLabel.Show()
	} else {
		dialWindow.hintLabel.Hide()
	}

	if state.Running {
		dialWindow.toggle.SetText("Pause")
		dialWindow.toggle.SetIcon(theme.MediaPauseIcon())
		dialWindow.toggle.Importance = widget.MediumImportance
	} else {
		dialWindow.toggle.SetText("Start")
		dialWindow.toggle.SetIcon(theme.MediaPlayIcon())
		dialWindow.toggle.Importance = widget.DangerImportance
	}
	dialWindow.toggle.Refresh()

	for mode, button := range dialWindow.modeButtons {
		if mode == state.Mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.LowImportance
		}
		button.Refresh()
	}

	if state.SoundEnabled {
		dialWindow.mute.SetIcon(theme.VolumeUpIcon())
	} else {
		dialWindow.mute.SetIcon(theme.VolumeMuteIcon())
	}

	dialWindow.counter.Text = SessionCounter(state.CompletedWorkSessions)
	dialWindow.counter.Refresh()

	if background, ok := modeBackgrounds[state.Mode]; ok {
		dialWindow.background.FillColor = background
		dialWindow.background.Refresh()
	}
}

// SessionCounter renders the completed-session line under the controls.
func SessionCounter(completed int) string {
	if completed == 1 {
		return "1 session completed"
	}
	return fmt.Sprintf("%d sessions completed", completed)
}

// BeginManipulation implements Gestures; any intro in flight is cancelled first.
func (dialWindow *Window) BeginManipulation() {
	dialWindow.stopIntro()
	dialWindow.controller.BeginManipulation()
}

func (dialWindow *Window) UpdateManipulation(pointer, center timer.Point) {
	dialWindow.controller.UpdateManipulation(pointer, center)
}

func (dialWindow *Window) EndManipulation() {
	dialWindow.controller.EndManipulation()
}

func (dialWindow *Window) stopIntro() {
	dialWindow.introActive = false
	if dialWindow.cancelCtx != nil {
		dialWindow.cancelCtx()
		dialWindow.cancelCtx = nil
	}
	if dialWindow.intro != nil {
		dialWindow.intro.Stop()
	}
	if dialWindow.dial.previewing {
		dialWindow.dial.SetPreview(0, false)
	}
}
