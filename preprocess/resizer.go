package preprocess

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Resizer fits frames of a source size into a destination size whilst
// keeping the frame aspect, padding the remaining area
type Resizer struct {
	srcWidth, srcHeight   int
	destWidth, destHeight int
	// scaled holds the frame after scaling and before padding
	scaled gocv.Mat
	// letter box geometry derived from the source and destination sizes
	scale            float32
	resizeW, resizeH int
	xPad, yPad       int
}

// NewResizer returns a resizer used for fitting an image of the source
// dimensions into the destination dimensions
func NewResizer(srcWidth, srcHeight, destWidth, destHeight int) *Resizer {

	r := &Resizer{
		srcWidth:   srcWidth,
		srcHeight:  srcHeight,
		destWidth:  destWidth,
		destHeight: destHeight,
		scaled:     gocv.NewMat(),
	}

	r.fit()

	return r
}

// Close frees the scaling buffer
func (r *Resizer) Close() error {
	return r.scaled.Close()
}

// fit computes the scale and padding that place the source inside the
// destination
func (r *Resizer) fit() {

	r.resizeW = r.destWidth
	r.resizeH = r.destHeight

	scaleW := float32(r.destWidth) / float32(r.srcWidth)
	scaleH := float32(r.destHeight) / float32(r.srcHeight)
	r.scale = scaleH

	if scaleW < scaleH {
		r.scale = scaleW
		r.resizeH = int(float32(r.srcHeight) * r.scale)
	} else {
		r.resizeW = int(float32(r.srcWidth) * r.scale)
	}

	r.yPad = (r.destHeight - r.resizeH) / 2
	r.xPad = (r.destWidth - r.resizeW) / 2
}

// Fits reports whether the resizer was created for src and dest of the
// given sizes
func (r *Resizer) Fits(src gocv.Mat, destWidth, destHeight int) bool {
	return src.Cols() == r.srcWidth && src.Rows() == r.srcHeight &&
		destWidth == r.destWidth && destHeight == r.destHeight
}

// LetterBoxResize scales src to fit the destination size whilst maintaining
// its aspect.  Color is used for the letter box padding
func (r *Resizer) LetterBoxResize(src gocv.Mat, dest *gocv.Mat, color color.RGBA) {

	gocv.Resize(src, &r.scaled, image.Pt(r.resizeW, r.resizeH),
		0, 0, gocv.InterpolationArea)

	gocv.CopyMakeBorder(r.scaled, dest, r.yPad, r.destHeight-r.resizeH-r.yPad,
		r.xPad, r.destWidth-r.resizeW-r.xPad, gocv.BorderConstant, color)
}

// ScaleFactor returns the factor the source is scaled by
func (r *Resizer) ScaleFactor() float32 {
	return r.scale
}

// XPad returns the padding added to the left of the scaled frame
func (r *Resizer) XPad() int {
	return r.xPad
}

// YPad returns the padding added above the scaled frame
func (r *Resizer) YPad() int {
	return r.yPad
}
