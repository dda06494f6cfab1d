package facecam

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/swdee/go-facecam/faceapi"
	"gocv.io/x/gocv"
)

// stubCamera returns solid frames and fails after limit reads when limit is
// non zero
type stubCamera struct {
	width, height int
	limit         int64
	reads         atomic.Int64
	closed        atomic.Bool
}

func (c *stubCamera) Read(dst *gocv.Mat) error {

	n := c.reads.Add(1)

	if c.limit > 0 && n > c.limit {
		return errors.New("device unplugged")
	}

	frame := solidMat(c.width, c.height, uint8(n%200+20))
	defer frame.Close()

	frame.CopyTo(dst)

	return nil
}

func (c *stubCamera) Close() error {
	c.closed.Store(true)
	return nil
}

// stubDisplay records shown frames and reports closed after closeAfter
// frames when closeAfter is non zero
type stubDisplay struct {
	closeAfter int64
	showErr    error
	shown      atomic.Int64
	closed     atomic.Bool

	mu        sync.Mutex
	lastWidth int
	lastRows  int
}

func (d *stubDisplay) Show(img gocv.Mat) error {

	if d.showErr != nil {
		return d.showErr
	}

	d.shown.Add(1)

	d.mu.Lock()
	d.lastWidth, d.lastRows = img.Cols(), img.Rows()
	d.mu.Unlock()

	return nil
}

func (d *stubDisplay) PollClosed(delay time.Duration) bool {
	time.Sleep(delay)
	return d.closeAfter > 0 && d.shown.Load() >= d.closeAfter
}

func (d *stubDisplay) Close() error {
	d.closed.Store(true)
	return nil
}

// stubAnalyzer returns results from a queue, repeating the last entry
type stubAnalyzer struct {
	mu      sync.Mutex
	results []stubResult
	calls   int
	images  [][]byte
}

type stubResult struct {
	faces []faceapi.Face
	err   error
}

func (a *stubAnalyzer) Detect(ctx context.Context, img []byte) ([]faceapi.Face, error) {

	a.mu.Lock()
	defer a.mu.Unlock()

	a.images = append(a.images, img)

	if len(a.results) == 0 {
		return []faceapi.Face{}, nil
	}

	i := a.calls

	if i >= len(a.results) {
		i = len(a.results) - 1
	}

	a.calls++

	return a.results[i].faces, a.results[i].err
}

func (a *stubAnalyzer) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.images)
}

// testFace is a face in the top left region of a 320x240 frame
func testFace() faceapi.Face {
	return faceapi.Face{
		Rectangle: faceapi.Rectangle{Left: 20, Top: 20, Width: 80, Height: 60},
		Attributes: faceapi.Attributes{
			Age:    31.9,
			Gender: "female",
			Emotion: faceapi.Emotion{
				Happiness: 0.7,
				Neutral:   0.3,
			},
		},
	}
}
