package dial

import (
	"image/color"
	"math"

	"pomodial/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Gestures receives the three phases of a wind drag.
type Gestures interface {
	BeginManipulation()
	UpdateManipulation(pointer, center timer.Point)
	EndManipulation()
}

const (
	tickCount    = 60
	dotCount     = timer.SessionsPerLongBreak
	dotRowHeight = float32(28)
	dotSize      = float32(12)
	dotGap       = float32(8)
)

var (
	bezelColor        = color.NRGBA{R: 38, G: 38, B: 38, A: 255}
	bezelWindingColor = color.NRGBA{R: 64, G: 64, B: 64, A: 255}
	windingRingColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 51}
	faceColor         = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	majorTickColor    = color.NRGBA{R: 26, G: 26, B: 26, A: 255}
	minorTickColor    = color.NRGBA{R: 156, G: 163, B: 175, A: 255}
	handColor         = color.NRGBA{R: 220, G: 38, B: 38, A: 255}
	capColor          = color.NRGBA{R: 48, G: 48, B: 48, A: 255}
	capRidgeColor     = color.NRGBA{R: 115, G: 115, B: 115, A: 77}
	clockColor        = color.NRGBA{R: 23, G: 23, B: 23, A: 255}
	brandColor        = color.NRGBA{R: 163, G: 163, B: 163, A: 255}
	dotOffColor       = color.NRGBA{R: 82, G: 82, B: 82, A: 255}
)

// Dial is the wind-up face of the timer. Dragging on it winds the countdown.
type Dial struct {
	widget.BaseWidget

	gestures Gestures
	state    timer.State

	preview    float64
	previewing bool
	dragging   bool
}

// NewDial creates a dial that forwards drags to gestures.
func NewDial(gestures Gestures) *Dial {
	dial := &Dial{gestures: gestures}
	dial.ExtendBaseWidget(dial)
	return dial
}

// SetState replaces the rendered timer snapshot.
func (dial *Dial) SetState(state timer.State) {
	dial.state = state
	dial.Refresh()
}

// SetPreview overrides the hand rotation while active.
func (dial *Dial) SetPreview(angle float64, active bool) {
	dial.preview = angle
	dial.previewing = active
	dial.Refresh()
}

// Rotation returns the hand rotation currently drawn.
func (dial *Dial) Rotation() float64 {
	if dial.previewing && !dial.state.Manipulating {
		return dial.preview
	}
	return dial.state.Rotation()
}

// Dragged implements fyne.Draggable.
func (dial *Dial) Dragged(event *fyne.DragEvent) {
	center, radius := faceGeometry(dial.Size())
	if radius <= 0 || dial.gestures == nil {
		return
	}
	if !dial.dragging {
		dial.dragging = true
		dial.gestures.BeginManipulation()
	}
	dial.gestures.UpdateManipulation(
		timer.Point{X: float64(event.Position.X), Y: float64(event.Position.Y)},
		timer.Point{X: float64(center.X), Y: float64(center.Y)},
	)
}

// DragEnd implements fyne.Draggable.
func (dial *Dial) DragEnd() {
	if !dial.dragging {
		return
	}
	dial.dragging = false
	if dial.gestures != nil {
		dial.gestures.EndManipulation()
	}
}

// CreateRenderer implements fyne.Widget.
func (dial *Dial) CreateRenderer() fyne.WidgetRenderer {
	renderer := &dialRenderer{
		dial:     dial,
		bezel:    canvas.NewCircle(bezelColor),
		face:     canvas.NewCircle(faceColor),
		hand:     canvas.NewLine(handColor),
		cap:      canvas.NewCircle(capColor),
		capRidge: canvas.NewCircle(color.Transparent),
		clock:    canvas.NewText("", clockColor),
		brand:    canvas.NewText("POMODORO", brandColor),
		running:  canvas.NewCircle(handColor),
	}
	renderer.capRidge.StrokeColor = capRidgeColor
	renderer.capRidge.StrokeWidth = 2
	renderer.clock.TextStyle = fyne.TextStyle{Monospace: true}
	renderer.clock.Alignment = fyne.TextAlignCenter
	renderer.brand.TextStyle = fyne.TextStyle{Bold: true}
	renderer.brand.Alignment = fyne.TextAlignCenter
	renderer.brand.TextSize = 10

	for i := range renderer.ticks {
		tickColor := minorTickColor
		if i%5 == 0 {
			tickColor = majorTickColor
		}
		renderer.ticks[i] = canvas.NewLine(tickColor)
		renderer.ticks[i].StrokeWidth = 1
	}
	for i := range renderer.dots {
		renderer.dots[i] = canvas.NewCircle(dotOffColor)
	}

	renderer.objects = []fyne.CanvasObject{renderer.bezel, renderer.face}
	for _, tick := range renderer.ticks {
		renderer.objects = append(renderer.objects, tick)
	}
	renderer.objects = append(renderer.objects, renderer.hand, renderer.cap, renderer.capRidge,
		renderer.clock, renderer.running, renderer.brand)
	for _, dot := range renderer.dots {
		renderer.objects = append(renderer.objects, dot)
	}

	renderer.update()
	return renderer
}

type dialRenderer struct {
	dial *Dial

	bezel    *canvas.Circle
	face     *canvas.Circle
	ticks    [tickCount]*canvas.Line
	hand     *canvas.Line
	cap      *canvas.Circle
	capRidge *canvas.Circle
	clock    *canvas.Text
	brand    *canvas.Text
	running  *canvas.Circle
	dots     [dotCount]*canvas.Circle

	objects []fyne.CanvasObject
}

func (renderer *dialRenderer) Layout(size fyne.Size) {
	center, radius := faceGeometry(size)
	if radius <= 0 {
		return
	}

	placeCircle(renderer.bezel, center, radius)
	inner := radius - radius*0.04
	placeCircle(renderer.face, center, inner)

	for i, tick := range renderer.ticks {
		length := inner * 0.06
		if i%5 == 0 {
			length = inner * 0.12
		}
		outer := inner - inner*0.05
		angle := float64(i * 360 / tickCount)
		tick.Position1 = pointOnCircle(center, outer, angle)
		tick.Position2 = pointOnCircle(center, outer-length, angle)
	}

	renderer.hand.StrokeWidth = float32(math.Max(2, float64(inner)*0.025))
	renderer.hand.Position1 = center
	renderer.hand.Position2 = pointOnCircle(center, inner*0.78, renderer.dial.Rotation())

	placeCircle(renderer.cap, center, inner*0.11)
	placeCircle(renderer.capRidge, center, inner*0.065)
	placeCircle(renderer.running, center, inner*0.03)

	renderer.clock.TextSize = inner * 0.26
	clockSize := renderer.clock.MinSize()
	renderer.clock.Move(fyne.NewPos(center.X-clockSize.Width/2, center.Y+inner*0.2))
	renderer.clock.Resize(clockSize)

	brandSize := renderer.brand.MinSize()
	renderer.brand.Move(fyne.NewPos(center.X-brandSize.Width/2, center.Y+inner*0.7))
	renderer.brand.Resize(brandSize)

	rowWidth := float32(dotCount)*dotSize + float32(dotCount-1)*dotGap
	x := center.X - rowWidth/2
	y := center.Y + radius + (dotRowHeight-dotSize)/2
	for _, dot := range renderer.dots {
		dot.Move(fyne.NewPos(x, y))
		dot.Resize(fyne.NewSize(dotSize, dotSize))
		x += dotSize + dotGap
	}
}

func (renderer *dialRenderer) MinSize() fyne.Size {
	return fyne.NewSize(240, 240+dotRowHeight)
}

func (renderer *dialRenderer) Refresh() {
	renderer.update()
	renderer.Layout(renderer.dial.Size())
	for _, object := range renderer.objects {
		canvas.Refresh(object)
	}
}

func (renderer *dialRenderer) Objects() []fyne.CanvasObject {
	return renderer.objects
}

func (renderer *dialRenderer) Destroy() {}

func (renderer *dialRenderer) update() {
	state := renderer.dial.state

	renderer.bezel.FillColor = bezelColor
	renderer.bezel.StrokeWidth = 0
	if state.Manipulating {
		renderer.bezel.FillColor = bezelWindingColor
		renderer.bezel.StrokeColor = windingRingColor
		renderer.bezel.StrokeWidth = 4
	}

	renderer.clock.Text = state.Clock()
	if state.Running {
		renderer.running.Show()
	} else {
		renderer.running.Hide()
	}

	lit := state.SessionDots()
	for i, dot := range renderer.dots {
		if i < lit {
			dot.FillColor = handColor
		} else {
			dot.FillColor = dotOffColor
		}
	}
}

// faceGeometry returns the centre and radius of the dial face within size,
// leaving a row underneath for the session dots.
func faceGeometry(size fyne.Size) (fyne.Position, float32) {
	height := size.Height - dotRowHeight
	side := size.Width
	if height < side {
		side = height
	}
	if side <= 0 {
		return fyne.NewPos(0, 0), 0
	}
	return fyne.NewPos(size.Width/2, height/2), side / 2
}

// pointOnCircle returns the point at angle degrees clockwise from 12 o'clock.
func pointOnCircle(center fyne.Position, radius float32, angle float64) fyne.Position {
	radians := angle * math.Pi / 180
	return fyne.NewPos(
		center.X+radius*float32(math.Sin(radians)),
		center.Y-radius*float32(math.Cos(radians)),
	)
}

func placeCircle(circle *canvas.Circle, center fyne.Position, radius float32) {
	circle.Move(fyne.NewPos(center.X-radius, center.Y-radius))
	circle.Resize(fyne.NewSize(radius*2, radius*2))
}
