package facecam

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"
)

// keyEscape is the key code returned by WaitKey for the ESC key
const keyEscape = 27

// Display is a surface the composite frame is rendered to
type Display interface {
	// Show renders the image
	Show(img gocv.Mat) error
	// PollClosed yields to the display for up to delay to process events and
	// reports whether the user has closed it
	PollClosed(delay time.Duration) bool
	Close() error
}

// WindowDisplay renders frames to a desktop window.  Window operations must
// be made from the main OS thread on most platforms
type WindowDisplay struct {
	window *gocv.Window
}

// NewWindowDisplay creates a desktop window with the given title
func NewWindowDisplay(title string) *WindowDisplay {

	window := gocv.NewWindow(title)
	window.SetWindowProperty(gocv.WindowPropertyAutosize, gocv.WindowAutosize)

	return &WindowDisplay{
		window: window,
	}
}

// Show renders the image in the window
func (w *WindowDisplay) Show(img gocv.Mat) error {

	if img.Empty() {
		return fmt.Errorf("%w: empty image", ErrDisplaySurface)
	}

	w.window.IMShow(img)
	return nil
}

// PollClosed waits for key events and reports if the window was closed by
// the user or ESC was pressed
func (w *WindowDisplay) PollClosed(delay time.Duration) bool {

	ms := int(delay.Milliseconds())

	// zero would block until a key is pressed
	if ms < 1 {
		ms = 1
	}

	if w.window.WaitKey(ms) == keyEscape {
		return true
	}

	return w.window.GetWindowProperty(gocv.WindowPropertyVisible) < 1
}

// Close destroys the window
func (w *WindowDisplay) Close() error {
	return w.window.Close()
}
