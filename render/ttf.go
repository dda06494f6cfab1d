package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TTFFont renders text using a TrueType font, supporting characters outside
// the Latin range the Hershey fonts cover.  It is slower than Font and is not
// safe for concurrent use
type TTFFont struct {
	face  font.Face
	Color color.RGBA
}

// NewTTFFont parses the TrueType font data and returns a font face of the
// given point size
func NewTTFFont(ttf []byte, size float64, clr color.RGBA) (*TTFFont, error) {

	f, err := opentype.Parse(ttf)

	if err != nil {
		return nil, fmt.Errorf("error parsing font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	if err != nil {
		return nil, fmt.Errorf("error creating font face: %w", err)
	}

	return &TTFFont{
		face:  face,
		Color: clr,
	}, nil
}

// GoRegularFont returns the Go Regular TrueType font at the given size
func GoRegularFont(size float64, clr color.RGBA) (*TTFFont, error) {
	return NewTTFFont(goregular.TTF, size, clr)
}

// Close releases the font face
func (t *TTFFont) Close() error {
	return t.face.Close()
}

// PutText draws the text on the image.  Only the area the text covers is
// converted to a Go image and written back
func (t *TTFFont) PutText(img *gocv.Mat, text string, org image.Point) error {

	metrics := t.face.Metrics()
	width := font.MeasureString(t.face, text).Ceil()

	area := image.Rect(org.X, org.Y-metrics.Ascent.Ceil(),
		org.X+width, org.Y+metrics.Descent.Ceil()).
		Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))

	if area.Empty() {
		return nil
	}

	roi := img.Region(area)
	defer roi.Close()

	// region Mats are not continuous so work on a copy
	patch := roi.Clone()
	defer patch.Close()

	src, err := patch.ToImage()

	if err != nil {
		return fmt.Errorf("error converting Mat to image: %w", err)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)

	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(t.Color),
		Face: t.face,
		Dot:  fixed.P(org.X-area.Min.X, org.Y-area.Min.Y),
	}
	dr.DrawString(text)

	out, err := gocv.ImageToMatRGB(rgba)

	if err != nil {
		return fmt.Errorf("error converting image to Mat: %w", err)
	}

	defer out.Close()

	// writes through to the parent image
	out.CopyTo(&roi)

	return nil
}
