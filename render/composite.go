package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/swdee/go-facecam/preprocess"
	"gocv.io/x/gocv"
)

// ErrEmptyPanel is returned when one side of the composite has no image data
var ErrEmptyPanel = errors.New("empty composite panel")

// Compositor joins the live and annotated frames side by side.  It is not
// safe for concurrent use
type Compositor struct {
	// Pad is the letter box color used when the right panel has to be fitted
	// to the left panel size
	Pad     color.RGBA
	resizer *preprocess.Resizer
	fitted  gocv.Mat
}

// NewCompositor returns a compositor for side by side display
func NewCompositor() *Compositor {
	return &Compositor{
		Pad:    Black,
		fitted: gocv.NewMat(),
	}
}

// SideBySide writes [left | right] into dst.  The result is twice the width
// of left and the same height.  When right differs in size it is letter boxed
// to the size of left first
func (c *Compositor) SideBySide(left, right gocv.Mat, dst *gocv.Mat) error {

	if left.Empty() || right.Empty() {
		return ErrEmptyPanel
	}

	if left.Type() != right.Type() {
		return fmt.Errorf("composite panel types differ: %v and %v", left.Type(), right.Type())
	}

	if left.Cols() == right.Cols() && left.Rows() == right.Rows() {
		gocv.Hconcat(left, right, dst)
		return nil
	}

	if c.resizer == nil || !c.resizer.Fits(right, left.Cols(), left.Rows()) {
		if c.resizer != nil {
			c.resizer.Close()
		}

		c.resizer = preprocess.NewResizer(right.Cols(), right.Rows(), left.Cols(), left.Rows())
	}

	c.resizer.LetterBoxResize(right, &c.fitted, c.Pad)
	gocv.Hconcat(left, c.fitted, dst)

	return nil
}

// Close frees memory held by the compositor
func (c *Compositor) Close() error {

	if c.resizer != nil {
		c.resizer.Close()
		c.resizer = nil
	}

	return c.fitted.Close()
}
