// Package platform realizes the Platform adapter (spec §6) over
// fyne.io/fyne/v2, grounded on cmd/l14/main.go's window/canvas.Image
// setup, generalized with a custom input-handling surface widget since
// the teacher only ever drives rendering from a URL bar's OnSubmitted.
package platform

// Kind identifies the variety of a platform Event.
type Kind int

const (
	MouseUp Kind = iota
	KeyDown
	TextInput
	Scroll
	Quit
)

// Key enumerates the symbolic keys spec §6 names explicitly; anything
// else classifies as KeyOther.
type Key int

const (
	KeyEnter Key = iota
	KeyArrowDown
	KeyArrowUp
	KeyBackspace
	KeyArrowLeft
	KeyArrowRight
	KeyOther
)

// Event is the union of everything the platform layer can report to the
// browser thread: a MouseUp carries X/Y/Button, a KeyDown carries Sym, a
// TextInput carries Char, a Scroll carries DeltaY, Quit carries nothing.
type Event struct {
	Kind   Kind
	X, Y   float64
	Button int
	Sym    Key
	Char   rune
	DeltaY float64
}
