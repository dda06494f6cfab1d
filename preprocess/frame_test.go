package preprocess

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestMirror(t *testing.T) {

	src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 4, 6, gocv.MatTypeCV8UC3)
	defer src.Close()

	// mark a pixel in the left most column
	src.SetUCharAt3(0, 0, 2, 255)

	dst := gocv.NewMat()
	defer dst.Close()

	if err := Mirror(src, &dst); err != nil {
		t.Fatalf("Mirror failed: %v", err)
	}

	if dst.Cols() != 6 || dst.Rows() != 4 {
		t.Fatalf("unexpected dimensions %dx%d", dst.Cols(), dst.Rows())
	}

	if dst.GetUCharAt3(0, 5, 2) != 255 {
		t.Errorf("expected marked pixel to move to the right most column")
	}

	if dst.GetUCharAt3(0, 0, 2) != 0 {
		t.Errorf("expected left most column to be cleared")
	}
}

func TestEmptyFrame(t *testing.T) {

	empty := gocv.NewMat()
	defer empty.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	if err := Mirror(empty, &dst); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("Mirror: expected ErrEmptyFrame, got %v", err)
	}

	if _, err := EncodeJPEG(empty, DefaultJPEGQuality); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("EncodeJPEG: expected ErrEmptyFrame, got %v", err)
	}
}

func TestEncodeJPEG(t *testing.T) {

	img := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer img.Close()

	data, err := EncodeJPEG(img, DefaultJPEGQuality)

	if err != nil {
		t.Fatalf("EncodeJPEG failed: %v", err)
	}

	// JPEG start of image marker
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Errorf("expected JPEG data, got % x", data[:min(len(data), 4)])
	}

	decoded, err := gocv.IMDecode(data, gocv.IMReadColor)

	if err != nil {
		t.Fatalf("IMDecode failed: %v", err)
	}

	defer decoded.Close()

	if decoded.Cols() != 64 || decoded.Rows() != 48 {
		t.Errorf("unexpected decoded size %dx%d", decoded.Cols(), decoded.Rows())
	}
}
