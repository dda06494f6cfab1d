package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Text writes a line of text onto an image with the text baseline starting
// at org
type Text interface {
	PutText(img *gocv.Mat, text string, org image.Point) error
}

// Font defines the parameters for rendering text on an image using the
// Hershey fonts built into OpenCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
}

// HeaderFont returns the font used for the panel headers
func HeaderFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     1,
		Color:     Black,
		Thickness: 2,
		LineType:  gocv.LineAA,
	}
}

// LabelFont returns the font used for the face attribute labels
func LabelFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.6,
		Color:     Black,
		Thickness: 2,
		LineType:  gocv.LineAA,
	}
}

// PutText draws the text on the image
func (f Font) PutText(img *gocv.Mat, text string, org image.Point) error {
	gocv.PutTextWithParams(img, text, org, f.Face, f.Scale, f.Color,
		f.Thickness, f.LineType, false)
	return nil
}
