package platform

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// surface is the window's sole content: an image the compositor draws
// into directly, wrapped in a widget that forwards every mouse/scroll
// event spec §4.13 classifies on to the browser thread. Grounded on
// cmd/l14/main.go's canvas.NewImageFromImage(target)/ImageFillOriginal
// setup; the event plumbing is new since the teacher never needs
// anything beyond its URL entry's OnSubmitted.
type surface struct {
	widget.BaseWidget
	img     *canvas.Image
	onEvent func(Event)
}

func newSurface(target image.Image, onEvent func(Event)) *surface {
	s := &surface{
		img:     canvas.NewImageFromImage(target),
		onEvent: onEvent,
	}
	s.img.FillMode = canvas.ImageFillOriginal
	s.ExtendBaseWidget(s)
	return s
}

func (s *surface) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{img: s.img}
}

func (s *surface) setImage(target image.Image) {
	s.img.Image = target
	s.img.Refresh()
}

// MouseDown satisfies desktop.Mouseable; spec §6 only needs MouseUp, so
// button-down is intentionally a no-op.
func (s *surface) MouseDown(*desktop.MouseEvent) {}

func (s *surface) MouseUp(ev *desktop.MouseEvent) {
	if s.onEvent == nil {
		return
	}
	s.onEvent(Event{
		Kind:   MouseUp,
		X:      float64(ev.Position.X),
		Y:      float64(ev.Position.Y),
		Button: mouseButton(ev.Button),
	})
}

func (s *surface) Scrolled(ev *fyne.ScrollEvent) {
	if s.onEvent == nil {
		return
	}
	s.onEvent(Event{Kind: Scroll, DeltaY: float64(ev.Scrolled.DY)})
}

func mouseButton(b desktop.MouseButton) int {
	switch b {
	case desktop.MouseButtonPrimary:
		return 1
	case desktop.MouseButtonSecondary:
		return 2
	case desktop.MouseButtonTertiary:
		return 3
	default:
		return 0
	}
}

type surfaceRenderer struct {
	img *canvas.Image
}

func (r *surfaceRenderer) Destroy() {}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.img.Resize(size)
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return r.img.MinSize()
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.img}
}

func (r *surfaceRenderer) Refresh() {
	r.img.Refresh()
}
