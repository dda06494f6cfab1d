package facecam

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/swdee/go-facecam/preprocess"
	"github.com/swdee/go-facecam/render"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// LiveLabel is the header drawn on the live panel
const LiveLabel = "Webcam Feed"

// CaptureConfig holds the collaborators of the capture loop
type CaptureConfig struct {
	Camera    Camera
	Display   Display
	Raw       *Slot
	Annotated *Slot
	// Text draws the live panel header
	Text render.Text
	// Label is the live panel header, defaults to LiveLabel
	Label string
	// RefreshDelay is how long each frame yields to the display
	RefreshDelay time.Duration
	Logger       *zap.Logger
}

// CaptureLoop reads frames from the camera, publishes them for annotation
// and displays the live frame next to the latest annotated frame
type CaptureLoop struct {
	cfg        CaptureConfig
	compositor *render.Compositor
	logger     *zap.Logger
	frames     atomic.Uint64
	fps        atomic.Uint64
}

// NewCaptureLoop returns a capture loop for the given config
func NewCaptureLoop(cfg CaptureConfig) *CaptureLoop {

	if cfg.Label == "" {
		cfg.Label = LiveLabel
	}

	if cfg.Text == nil {
		cfg.Text = render.HeaderFont()
	}

	if cfg.RefreshDelay <= 0 {
		cfg.RefreshDelay = time.Millisecond
	}

	return &CaptureLoop{
		cfg:        cfg,
		compositor: render.NewCompositor(),
		logger:     orNop(cfg.Logger).Named("capture"),
	}
}

// Run processes frames until the display is closed or ctx is cancelled,
// which return nil, or a camera or display failure occurs
func (c *CaptureLoop) Run(ctx context.Context) error {

	defer c.compositor.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	live := gocv.NewMat()
	defer live.Close()

	annotated := gocv.NewMat()
	defer annotated.Close()

	composite := gocv.NewMat()
	defer composite.Close()

	// used for calculating FPS
	frameCount := 0
	startTime := time.Now()

	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := c.cfg.Camera.Read(&frame); err != nil {
			return NewOperationError("capture.read", "", wrapKind(ErrCameraUnavailable, err))
		}

		if err := preprocess.Mirror(frame, &live); err != nil {
			return NewOperationError("capture.mirror", "", wrapKind(ErrCameraUnavailable, err))
		}

		if err := c.cfg.Raw.Store(live); err != nil {
			return NewOperationError("capture.store", "", err)
		}

		if err := render.Header(&live, c.cfg.Label, c.cfg.Text); err != nil {
			return NewOperationError("capture.header", "", wrapKind(ErrDisplaySurface, err))
		}

		if err := c.cfg.Annotated.Snapshot(&annotated); err != nil {
			return NewOperationError("capture.snapshot", "", err)
		}

		if err := c.compositor.SideBySide(live, annotated, &composite); err != nil {
			return NewOperationError("capture.composite", "", wrapKind(ErrDisplaySurface, err))
		}

		if err := c.cfg.Display.Show(composite); err != nil {
			return NewOperationError("capture.show", "", wrapKind(ErrDisplaySurface, err))
		}

		c.frames.Add(1)

		// calculate FPS
		frameCount++
		elapsed := time.Since(startTime).Seconds()

		if elapsed >= 1.0 {
			c.fps.Store(math.Float64bits(float64(frameCount) / elapsed))
			frameCount = 0
			startTime = time.Now()
		}

		if c.cfg.Display.PollClosed(c.cfg.RefreshDelay) {
			c.logger.Info("display closed", zap.Uint64("frames", c.frames.Load()))
			return nil
		}
	}
}

// FPS returns the frame rate measured over the last second
func (c *CaptureLoop) FPS() float64 {
	return math.Float64frombits(c.fps.Load())
}

// Frames returns the number of frames displayed
func (c *CaptureLoop) Frames() uint64 {
	return c.frames.Load()
}
