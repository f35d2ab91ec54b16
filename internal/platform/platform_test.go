package platform

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/stretchr/testify/assert"
)

func TestSurface_MouseUpReportsPositionAndButton(t *testing.T) {
	var got Event
	s := newSurface(image.NewRGBA(image.Rect(0, 0, 10, 10)), func(e Event) { got = e })

	s.MouseUp(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(12, 34)},
		Button:     desktop.MouseButtonPrimary,
	})

	assert.Equal(t, MouseUp, got.Kind)
	assert.Equal(t, float64(12), got.X)
	assert.Equal(t, float64(34), got.Y)
	assert.Equal(t, 1, got.Button)
}

func TestSurface_MouseDownIsNoOp(t *testing.T) {
	called := false
	s := newSurface(image.NewRGBA(image.Rect(0, 0, 10, 10)), func(e Event) { called = true })
	s.MouseDown(&desktop.MouseEvent{})
	assert.False(t, called)
}

func TestSurface_ScrolledReportsDeltaY(t *testing.T) {
	var got Event
	s := newSurface(image.NewRGBA(image.Rect(0, 0, 10, 10)), func(e Event) { got = e })

	s.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: -15}})

	assert.Equal(t, Scroll, got.Kind)
	assert.Equal(t, float64(-15), got.DeltaY)
}

func TestMouseButton_Translation(t *testing.T) {
	assert.Equal(t, 1, mouseButton(desktop.MouseButtonPrimary))
	assert.Equal(t, 2, mouseButton(desktop.MouseButtonSecondary))
	assert.Equal(t, 3, mouseButton(desktop.MouseButtonTertiary))
}

func TestTranslateKey_KnownSyms(t *testing.T) {
	assert.Equal(t, KeyEnter, translateKey(fyne.KeyReturn))
	assert.Equal(t, KeyArrowDown, translateKey(fyne.KeyDown))
	assert.Equal(t, KeyArrowUp, translateKey(fyne.KeyUp))
	assert.Equal(t, KeyBackspace, translateKey(fyne.KeyBackspace))
	assert.Equal(t, KeyArrowLeft, translateKey(fyne.KeyLeft))
	assert.Equal(t, KeyArrowRight, translateKey(fyne.KeyRight))
	assert.Equal(t, KeyOther, translateKey(fyne.KeyA))
}
