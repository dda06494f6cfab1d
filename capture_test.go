package facecam

import (
	"context"
	"errors"
	"testing"
	"time"
)

type captureFixture struct {
	camera    *stubCamera
	display   *stubDisplay
	raw       *Slot
	annotated *Slot
}

func newCaptureFixture(camera *stubCamera, display *stubDisplay, annotatedW, annotatedH int) *captureFixture {

	rawFrame := solidMat(camera.width, camera.height, 0)
	defer rawFrame.Close()

	placeholder := solidMat(annotatedW, annotatedH, 0)
	defer placeholder.Close()

	return &captureFixture{
		camera:    camera,
		display:   display,
		raw:       NewSlot(rawFrame),
		annotated: NewSlot(placeholder),
	}
}

func (f *captureFixture) loop() *CaptureLoop {
	return NewCaptureLoop(CaptureConfig{
		Camera:    f.camera,
		Display:   f.display,
		Raw:       f.raw,
		Annotated: f.annotated,
	})
}

func (f *captureFixture) Close() {
	f.raw.Close()
	f.annotated.Close()
}

func TestCaptureRunsUntilDisplayClosed(t *testing.T) {

	f := newCaptureFixture(&stubCamera{width: 160, height: 120},
		&stubDisplay{closeAfter: 5}, 160, 120)
	defer f.Close()

	loop := f.loop()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("expected nil error on display close, got %v", err)
	}

	if loop.Frames() != 5 {
		t.Errorf("expected 5 frames, got %d", loop.Frames())
	}

	if f.display.lastWidth != 320 || f.display.lastRows != 120 {
		t.Errorf("expected 320x120 composite, got %dx%d",
			f.display.lastWidth, f.display.lastRows)
	}

	if stats := f.raw.Stats(); stats.Stores != 5 {
		t.Errorf("expected 5 raw frames stored, got %d", stats.Stores)
	}
}

func TestCaptureFitsAnnotatedPanel(t *testing.T) {

	f := newCaptureFixture(&stubCamera{width: 160, height: 120},
		&stubDisplay{closeAfter: 1}, 320, 180)
	defer f.Close()

	if err := f.loop().Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if f.display.lastWidth != 320 || f.display.lastRows != 120 {
		t.Errorf("expected composite sized to live frame, got %dx%d",
			f.display.lastWidth, f.display.lastRows)
	}
}

func TestCaptureCameraFailure(t *testing.T) {

	f := newCaptureFixture(&stubCamera{width: 160, height: 120, limit: 3},
		&stubDisplay{}, 160, 120)
	defer f.Close()

	err := f.loop().Run(context.Background())

	if !errors.Is(err, ErrCameraUnavailable) {
		t.Fatalf("expected ErrCameraUnavailable, got %v", err)
	}

	var opErr *OperationError

	if !errors.As(err, &opErr) || opErr.Operation != "capture.read" {
		t.Errorf("expected capture.read operation error, got %v", err)
	}
}

func TestCaptureDisplayFailure(t *testing.T) {

	f := newCaptureFixture(&stubCamera{width: 160, height: 120},
		&stubDisplay{showErr: errors.New("surface lost")}, 160, 120)
	defer f.Close()

	err := f.loop().Run(context.Background())

	if !errors.Is(err, ErrDisplaySurface) {
		t.Fatalf("expected ErrDisplaySurface, got %v", err)
	}
}

func TestCaptureStopsOnCancel(t *testing.T) {

	f := newCaptureFixture(&stubCamera{width: 160, height: 120},
		&stubDisplay{}, 160, 120)
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- f.loop().Run(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("capture loop did not stop")
	}
}
