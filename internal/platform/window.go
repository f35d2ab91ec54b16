package platform

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// Window owns the single OS window a kestrel process opens: one
// surface the compositor draws into, plus keyboard/mouse/scroll/close
// events delivered to a caller-supplied handler. Grounded on
// cmd/l14/main.go's app.New()/NewWindow()/Resize()/ShowAndRun() shape.
type Window struct {
	app     fyne.App
	win     fyne.Window
	surface *surface
	onEvent func(Event)
}

// New opens a window of the given size with onEvent as the single
// callback for every translated platform event (spec §6's MouseUp/
// KeyDown/TextInput/Scroll/Quit union).
func New(title string, width, height int, onEvent func(Event)) *Window {
	target := image.NewRGBA(image.Rect(0, 0, width, height))

	w := &Window{
		app:     app.New(),
		onEvent: onEvent,
	}
	w.win = w.app.NewWindow(title)
	w.win.Resize(fyne.NewSize(float32(width), float32(height)))

	w.surface = newSurface(target, onEvent)
	w.win.SetContent(w.surface)

	w.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		w.deliverKey(ev)
	})
	w.win.Canvas().SetOnTypedRune(func(r rune) {
		w.deliverRune(r)
	})
	w.win.SetCloseIntercept(func() {
		if onEvent != nil {
			onEvent(Event{Kind: Quit})
		}
		w.win.Close()
	})

	return w
}

func (w *Window) deliverKey(ev *fyne.KeyEvent) {
	if w.onEvent == nil {
		return
	}
	w.onEvent(Event{Kind: KeyDown, Sym: translateKey(ev.Name)})
}

func (w *Window) deliverRune(r rune) {
	if w.onEvent == nil {
		return
	}
	if r < 0x20 || r >= 0x7f {
		return
	}
	w.onEvent(Event{Kind: TextInput, Char: r})
}

func translateKey(name fyne.KeyName) Key {
	switch name {
	case fyne.KeyReturn, fyne.KeyEnter:
		return KeyEnter
	case fyne.KeyDown:
		return KeyArrowDown
	case fyne.KeyUp:
		return KeyArrowUp
	case fyne.KeyBackspace:
		return KeyBackspace
	case fyne.KeyLeft:
		return KeyArrowLeft
	case fyne.KeyRight:
		return KeyArrowRight
	default:
		return KeyOther
	}
}

// Present replaces the window's displayed frame with img and refreshes
// it. Called by the browser thread after each raster+draw pass.
func (w *Window) Present(img image.Image) {
	w.surface.setImage(img)
}

// SetTitle updates the window's title bar, e.g. to the active tab's URL.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// Run blocks until the window is closed.
func (w *Window) Run() {
	w.win.ShowAndRun()
}

// Close programmatically closes the window.
func (w *Window) Close() {
	w.win.Close()
}
