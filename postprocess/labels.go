package postprocess

import (
	"fmt"
	"strings"

	"github.com/swdee/go-facecam/faceapi"
	"gonum.org/v1/gonum/floats"
)

const (
	// EmotionPrefix is the label text preceding the emotion name
	EmotionPrefix = "emotion: "
	// genderSeparator marks the end of the gender value, anything after it
	// is a qualifier
	genderSeparator = "."
)

// AgeLabel returns the age label text with the age truncated to whole years
func AgeLabel(age float64) string {
	return fmt.Sprintf("age: %d", int(age))
}

// GenderLabel returns the gender label text using the value up to its first
// separator
func GenderLabel(gender string) string {
	value, _, _ := strings.Cut(gender, genderSeparator)
	return "gender: " + value
}

// PrevalentEmotion returns the name of the emotion with the highest
// confidence.  Equal confidences resolve to the first emotion in
// faceapi.EmotionNames order
func PrevalentEmotion(e faceapi.Emotion) string {
	return faceapi.EmotionNames[floats.MaxIdx(e.Scores())]
}

// EmotionLabel returns the emotion label text for the named emotion
func EmotionLabel(name string) string {
	return EmotionPrefix + name
}
