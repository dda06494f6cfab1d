package facecam

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Camera is a source of live video frames
type Camera interface {
	// Read captures the next frame into dst
	Read(dst *gocv.Mat) error
	Close() error
}

// Webcam is a Camera backed by an OpenCV video capture device
type Webcam struct {
	capture *gocv.VideoCapture
	device  string
}

// OpenWebcam opens the capture device, either a camera index such as "0" or
// a device path such as "/dev/video0".  When width and height are non zero
// the capture resolution is requested from the device
func OpenWebcam(device string, width, height int) (*Webcam, error) {

	capture, err := gocv.OpenVideoCapture(device)

	if err != nil {
		return nil, fmt.Errorf("%w: error opening device %s: %w",
			ErrCameraUnavailable, device, err)
	}

	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: device %s not opened", ErrCameraUnavailable, device)
	}

	if width > 0 && height > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
		capture.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}

	return &Webcam{
		capture: capture,
		device:  device,
	}, nil
}

// Read captures the next frame.  A failed read or empty frame returns
// ErrCameraUnavailable
func (w *Webcam) Read(dst *gocv.Mat) error {

	if ok := w.capture.Read(dst); !ok {
		return fmt.Errorf("%w: device %s closed", ErrCameraUnavailable, w.device)
	}

	if dst.Empty() {
		return fmt.Errorf("%w: empty frame from device %s", ErrCameraUnavailable, w.device)
	}

	return nil
}

// Close releases the capture device
func (w *Webcam) Close() error {
	return w.capture.Close()
}
