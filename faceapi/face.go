package faceapi

import (
	"context"
)

// EmotionNames is the canonical order of the emotions ranked to find the
// prevalent one.  Ties between equal confidence values are resolved by the
// first name in this order.  The service also reports surprise, which is
// decoded but not ranked
var EmotionNames = []string{
	"anger",
	"contempt",
	"disgust",
	"fear",
	"happiness",
	"neutral",
	"sadness",
}

// Analyzer is the face analysis collaborator.  Detect takes an encoded still
// image and returns the faces found in it, which may be none
type Analyzer interface {
	Detect(ctx context.Context, img []byte) ([]Face, error)
}

// Rectangle is the bounding box of a detected face in pixel units
type Rectangle struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Emotion holds the confidence of each emotion for a face
type Emotion struct {
	Anger     float64 `json:"anger"`
	Contempt  float64 `json:"contempt"`
	Disgust   float64 `json:"disgust"`
	Fear      float64 `json:"fear"`
	Happiness float64 `json:"happiness"`
	Neutral   float64 `json:"neutral"`
	Sadness   float64 `json:"sadness"`
	// Surprise is not part of Scores
	Surprise  float64 `json:"surprise"`
}

// Scores returns the emotion confidences in the same order as EmotionNames
func (e Emotion) Scores() []float64 {
	return []float64{
		e.Anger,
		e.Contempt,
		e.Disgust,
		e.Fear,
		e.Happiness,
		e.Neutral,
		e.Sadness,
	}
}

// Attributes are the face attributes requested from the service
type Attributes struct {
	// Age is the estimated age in years
	Age float64 `json:"age"`
	// Gender label as returned by the service, eg: "male"
	Gender  string  `json:"gender"`
	Emotion Emotion `json:"emotion"`
}

// Face is a single detected face record
type Face struct {
	FaceID     string     `json:"faceId,omitempty"`
	Rectangle  Rectangle  `json:"faceRectangle"`
	Attributes Attributes `json:"faceAttributes"`
}
