package render

import (
	"image"
	"image/color"

	"github.com/swdee/go-facecam/postprocess"
	"gocv.io/x/gocv"
)

// BoxStyle defines how the face box and its label panel are drawn
type BoxStyle struct {
	Color         color.RGBA
	LineThickness int
	// Margin is the height of the label panel beneath the face, the border
	// is extended downward by this amount to enclose it
	Margin int
	// LineSpacing is the vertical distance between label baselines
	LineSpacing int
}

// DefaultBoxStyle returns default face box settings
func DefaultBoxStyle() BoxStyle {
	return BoxStyle{
		Color:         Aqua,
		LineThickness: 3,
		Margin:        100,
		LineSpacing:   20,
	}
}

// FaceBox renders the bounding box around the detected face with the age,
// gender and emotion labels on a filled panel beneath it.  The emotion name
// is written on its own line below the "emotion:" label
func FaceBox(img *gocv.Mat, res postprocess.FaceResult, style BoxStyle, text Text) error {

	gocv.Rectangle(img, res.Box.BorderRect(style.Margin), style.Color, style.LineThickness)

	// -1 fills the rectangle
	gocv.Rectangle(img, res.Box.LabelRect(style.Margin), style.Color, -1)

	labels := []string{
		res.Age,
		res.Gender,
		postprocess.EmotionPrefix,
		res.Emotion,
	}

	for i, label := range labels {
		org := image.Pt(res.Box.Left, res.Box.Bottom+style.LineSpacing*(i+1))

		if err := text.PutText(img, label, org); err != nil {
			return err
		}
	}

	return nil
}

// HeaderPos is the baseline position of a panel header
var HeaderPos = image.Pt(50, 30)

// Header writes the panel header text identifying the feed on the image
func Header(img *gocv.Mat, label string, text Text) error {
	return text.PutText(img, label, HeaderPos)
}
