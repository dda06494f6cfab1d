package postprocess

import (
	"image"

	"github.com/swdee/go-facecam/faceapi"
)

// BoxRect are the dimensions of the bounding box of a detected face
type BoxRect struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// BoxFromRectangle converts the left, top, width, height rectangle returned
// by the face analysis service into box edges
func BoxFromRectangle(r faceapi.Rectangle) BoxRect {
	return BoxRect{
		Left:   r.Left,
		Top:    r.Top,
		Right:  r.Left + r.Width,
		Bottom: r.Top + r.Height,
	}
}

// Width of the box
func (b BoxRect) Width() int {
	return b.Right - b.Left
}

// Height of the box
func (b BoxRect) Height() int {
	return b.Bottom - b.Top
}

// Area of the box
func (b BoxRect) Area() int {
	return b.Width() * b.Height()
}

// BorderRect returns the border drawn around the face, extended downward by
// margin pixels to enclose the label panel
func (b BoxRect) BorderRect(margin int) image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom+margin)
}

// LabelRect returns the filled panel beneath the face the labels are written on
func (b BoxRect) LabelRect(margin int) image.Rectangle {
	return image.Rect(b.Left, b.Bottom, b.Right, b.Bottom+margin)
}

// FaceResult defines the display ready attributes of a single detected face
type FaceResult struct {
	// Box is the bounding box of the face location
	Box BoxRect
	// Age is the age label, eg: "age: 24"
	Age string
	// Gender is the gender label, eg: "gender: male"
	Gender string
	// Emotion is the name of the prevalent emotion, eg: "happiness"
	Emotion string
}

// NewFaceResult derives the display labels for the given face
func NewFaceResult(face faceapi.Face) FaceResult {
	return FaceResult{
		Box:     BoxFromRectangle(face.Rectangle),
		Age:     AgeLabel(face.Attributes.Age),
		Gender:  GenderLabel(face.Attributes.Gender),
		Emotion: PrevalentEmotion(face.Attributes.Emotion),
	}
}

// EmotionLabel returns the emotion label text on a single line
func (f FaceResult) EmotionLabel() string {
	return EmotionLabel(f.Emotion)
}
