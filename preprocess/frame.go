package preprocess

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// DefaultJPEGQuality is the JPEG quality used when encoding frames for the
// face analysis service
const DefaultJPEGQuality = 90

// ErrEmptyFrame is returned when an operation is given a Mat with no data
var ErrEmptyFrame = errors.New("empty frame")

// Mirror flips the frame horizontally into dst so the live feed behaves like
// a mirror to the person in front of the camera
func Mirror(src gocv.Mat, dst *gocv.Mat) error {

	if src.Empty() {
		return ErrEmptyFrame
	}

	gocv.Flip(src, dst, 1)
	return nil
}

// EncodeJPEG compresses the frame into a JPEG still image held in Go memory
func EncodeJPEG(img gocv.Mat, quality int) ([]byte, error) {

	if img.Empty() {
		return nil, ErrEmptyFrame
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img,
		[]int{gocv.IMWriteJpegQuality, quality})

	if err != nil {
		return nil, fmt.Errorf("error encoding jpeg: %w", err)
	}

	defer buf.Close()

	// copy out of C memory before the buffer is released
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())

	return data, nil
}
