package facecam

import (
	"context"
	"fmt"
	"sync"

	"github.com/swdee/go-facecam/faceapi"
	"github.com/swdee/go-facecam/preprocess"
	"github.com/swdee/go-facecam/render"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// point sizes of the TrueType fonts
const (
	ttfHeaderSize = 28
	ttfLabelSize  = 18
)

// DetectorStats summarises a running detector
type DetectorStats struct {
	FPS        float64         `json:"fps"`
	Frames     uint64          `json:"frames"`
	Annotation AnnotationStats `json:"annotation"`
	Raw        SlotStats       `json:"raw_slot"`
	Annotated  SlotStats       `json:"annotated_slot"`
}

// Detector composes the capture and annotation loops around a camera,
// display and face analysis service
type Detector struct {
	cfg      Config
	camera   Camera
	display  Display
	analyzer faceapi.Analyzer
	logger   *zap.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	capture   *CaptureLoop
	annotator *AnnotationLoop
	raw       *Slot
	annotated *Slot
}

// NewDetector returns a detector using the given collaborators.  The
// detector takes ownership of the camera and display and closes them when
// Start returns
func NewDetector(cfg Config, camera Camera, display Display,
	analyzer faceapi.Analyzer, logger *zap.Logger) *Detector {

	return &Detector{
		cfg:      cfg,
		camera:   camera,
		display:  display,
		analyzer: analyzer,
		logger:   orNop(logger),
	}
}

// Start runs the detector until the display is closed, ctx is cancelled,
// Stop is called or a fatal camera or display error occurs.  The capture
// loop runs on the calling goroutine, which should be the main thread when
// using a desktop window
func (d *Detector) Start(ctx context.Context) error {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	defer d.release()

	txt, err := newTexts(d.cfg.FontMode)

	if err != nil {
		return err
	}

	defer txt.Close()

	raw, annotated, err := d.initialSlots()

	if err != nil {
		return err
	}

	defer raw.Close()
	defer annotated.Close()

	style := render.DefaultBoxStyle()
	style.Margin = d.cfg.LabelMargin

	capture := NewCaptureLoop(CaptureConfig{
		Camera:       d.camera,
		Display:      d.display,
		Raw:          raw,
		Annotated:    annotated,
		Text:         txt.captureHeader,
		RefreshDelay: d.cfg.RefreshDelay,
		Logger:       d.logger,
	})

	annotator := NewAnnotationLoop(AnnotationConfig{
		Analyzer:       d.analyzer,
		Raw:            raw,
		Annotated:      annotated,
		Interval:       d.cfg.Interval,
		RequestTimeout: d.cfg.RequestTimeout,
		Limiter:        d.cfg.limiter(),
		Selection:      d.cfg.selection(),
		Style:          style,
		HeaderText:     txt.annotateHeader,
		LabelText:      txt.annotateLabel,
		JPEGQuality:    d.cfg.JPEGQuality,
		Logger:         d.logger,
	})

	d.mu.Lock()
	d.capture, d.annotator = capture, annotator
	d.raw, d.annotated = raw, annotated
	d.mu.Unlock()

	d.logger.Info("detector started",
		zap.Duration("interval", d.cfg.Interval),
		zap.String("selection", d.cfg.selection().String()),
		zap.Int("requests_per_minute", d.cfg.RequestsPerMinute),
	)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		annotator.Run(ctx)
	}()

	err = capture.Run(ctx)

	cancel()
	wg.Wait()

	if err != nil {
		d.logger.Error("detector stopped", zap.Error(err))
	} else {
		d.logger.Info("detector stopped", zap.Uint64("frames", capture.Frames()))
	}

	return err
}

// initialSlots reads the first frame and creates the raw and annotated slots
// from it.  Both start with the bare mirrored frame, the annotated panel gets
// its header once a face is annotated
func (d *Detector) initialSlots() (*Slot, *Slot, error) {

	frame := gocv.NewMat()
	defer frame.Close()

	if err := d.camera.Read(&frame); err != nil {
		return nil, nil, NewOperationError("detector.first_frame", "",
			wrapKind(ErrCameraUnavailable, err))
	}

	mirrored := gocv.NewMat()
	defer mirrored.Close()

	if err := preprocess.Mirror(frame, &mirrored); err != nil {
		return nil, nil, NewOperationError("detector.first_frame", "",
			wrapKind(ErrCameraUnavailable, err))
	}

	return NewSlot(mirrored), NewSlot(mirrored), nil
}

// release closes the camera and display
func (d *Detector) release() {

	if err := d.camera.Close(); err != nil {
		d.logger.Warn("error closing camera", zap.Error(err))
	}

	if err := d.display.Close(); err != nil {
		d.logger.Warn("error closing display", zap.Error(err))
	}
}

// Stop signals a running detector to shut down.  It may be called from any
// goroutine
func (d *Detector) Stop() {

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
}

// Stats returns the current detector statistics
func (d *Detector) Stats() DetectorStats {

	d.mu.Lock()
	defer d.mu.Unlock()

	var stats DetectorStats

	if d.capture != nil {
		stats.FPS = d.capture.FPS()
		stats.Frames = d.capture.Frames()
	}

	if d.annotator != nil {
		stats.Annotation = d.annotator.Stats()
	}

	if d.raw != nil {
		stats.Raw = d.raw.Stats()
		stats.Annotated = d.annotated.Stats()
	}

	return stats
}

// texts are the text renderers used by each loop.  TrueType fonts are not
// safe for concurrent use so each loop gets its own
type texts struct {
	captureHeader  render.Text
	annotateHeader render.Text
	annotateLabel  render.Text
	closers        []*render.TTFFont
}

func newTexts(mode string) (*texts, error) {

	switch mode {
	case "", FontHershey:
		return &texts{
			captureHeader:  render.HeaderFont(),
			annotateHeader: render.HeaderFont(),
			annotateLabel:  render.LabelFont(),
		}, nil

	case FontTTF:
		t := &texts{}

		for _, size := range []float64{ttfHeaderSize, ttfHeaderSize, ttfLabelSize} {
			f, err := render.GoRegularFont(size, render.Black)

			if err != nil {
				t.Close()
				return nil, fmt.Errorf("error loading font: %w", err)
			}

			t.closers = append(t.closers, f)
		}

		t.captureHeader = t.closers[0]
		t.annotateHeader = t.closers[1]
		t.annotateLabel = t.closers[2]

		return t, nil
	}

	return nil, fmt.Errorf("unknown font mode: %s", mode)
}

// Close frees the TrueType fonts
func (t *texts) Close() {
	for _, f := range t.closers {
		f.Close()
	}
}
