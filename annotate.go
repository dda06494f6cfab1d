package facecam

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/swdee/go-facecam/faceapi"
	"github.com/swdee/go-facecam/postprocess"
	"github.com/swdee/go-facecam/preprocess"
	"github.com/swdee/go-facecam/render"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
	"golang.org/x/time/rate"
)

// DetectorLabel is the header drawn on the annotated panel
const DetectorLabel = "Face Detector"

// CycleOutcome is the result of a single annotation cycle
type CycleOutcome int

const (
	// CycleAnnotated means a face was found and the annotated frame replaced
	CycleAnnotated CycleOutcome = iota
	// CycleNoFace means the service found no face, the annotated frame is
	// unchanged
	CycleNoFace
	// CycleSkipped means the cycle failed, the annotated frame is unchanged
	CycleSkipped
	// CyclePaced means the request limit did not allow a request before ctx
	// ended, no frame was taken or sent
	CyclePaced
)

func (o CycleOutcome) String() string {
	switch o {
	case CycleAnnotated:
		return "annotated"
	case CycleNoFace:
		return "no_face"
	case CyclePaced:
		return "paced"
	default:
		return "skipped"
	}
}

// AnnotationConfig holds the collaborators and settings of the annotation
// loop
type AnnotationConfig struct {
	Analyzer  faceapi.Analyzer
	Raw       *Slot
	Annotated *Slot
	// Interval between cycles, defaults to one second
	Interval time.Duration
	// RequestTimeout bounds each face analysis request, defaults to ten
	// seconds
	RequestTimeout time.Duration
	// Limiter paces requests to the service, nil for no limit.  A cycle waits
	// for its turn before taking the frame so the latest frame is sent
	Limiter   *rate.Limiter
	Selection postprocess.Selection
	Style     render.BoxStyle
	// HeaderText draws the panel header and LabelText the face labels
	HeaderText  render.Text
	LabelText   render.Text
	Label       string
	JPEGQuality int
	Logger      *zap.Logger
}

// AnnotationStats are the counters of the annotation loop
type AnnotationStats struct {
	Cycles      uint64        `json:"cycles"`
	Annotated   uint64        `json:"annotated"`
	NoFace      uint64        `json:"no_face"`
	Failures    uint64        `json:"failures"`
	Paced       uint64        `json:"paced"`
	LastLatency time.Duration `json:"last_latency"`
}

// AnnotationLoop periodically submits the latest raw frame for face analysis
// and publishes an annotated copy
type AnnotationLoop struct {
	cfg    AnnotationConfig
	logger *zap.Logger

	cycles    atomic.Uint64
	annotated atomic.Uint64
	noFace    atomic.Uint64
	failures  atomic.Uint64
	paced     atomic.Uint64
	latency   atomic.Int64
}

// NewAnnotationLoop returns an annotation loop for the given config
func NewAnnotationLoop(cfg AnnotationConfig) *AnnotationLoop {

	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	if cfg.Style == (render.BoxStyle{}) {
		cfg.Style = render.DefaultBoxStyle()
	}

	if cfg.HeaderText == nil {
		cfg.HeaderText = render.HeaderFont()
	}

	if cfg.LabelText == nil {
		cfg.LabelText = render.LabelFont()
	}

	if cfg.Label == "" {
		cfg.Label = DetectorLabel
	}

	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = preprocess.DefaultJPEGQuality
	}

	return &AnnotationLoop{
		cfg:    cfg,
		logger: orNop(cfg.Logger).Named("annotate"),
	}
}

// Run executes a cycle every interval until ctx is cancelled.  Cycle
// failures are logged and never end the loop
func (a *AnnotationLoop) Run(ctx context.Context) error {

	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			a.Cycle(ctx)
		}
	}
}

// Cycle waits for the request limit, snapshots the raw frame, submits it for
// face analysis and on a detected face stores the annotated frame.  The
// returned error describes why a cycle was skipped or paced
func (a *AnnotationLoop) Cycle(ctx context.Context) (CycleOutcome, error) {

	cycleID := uuid.NewString()
	log := WithCycle(a.logger, cycleID)

	a.cycles.Add(1)

	if a.cfg.Limiter != nil {
		if err := a.cfg.Limiter.Wait(ctx); err != nil {
			a.paced.Add(1)
			err = NewOperationError("annotate.pace", cycleID, wrapKind(ErrPaced, err))
			log.Debug("annotation cycle paced", zap.Error(err))
			return CyclePaced, err
		}
	}

	frame := gocv.NewMat()
	defer frame.Close()

	if err := a.cfg.Raw.Snapshot(&frame); err != nil {
		return a.skip(log, NewOperationError("annotate.snapshot", cycleID, err))
	}

	img, err := preprocess.EncodeJPEG(frame, a.cfg.JPEGQuality)

	if err != nil {
		return a.skip(log, NewOperationError("annotate.encode", cycleID, err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	start := time.Now()
	faces, err := a.cfg.Analyzer.Detect(reqCtx, img)
	cancel()

	latency := time.Since(start)
	a.latency.Store(int64(latency))

	if err != nil {
		return a.skip(log, NewOperationError("annotate.detect", cycleID,
			wrapKind(ErrRemoteService, err)))
	}

	face, ok := postprocess.SelectFace(faces, a.cfg.Selection)

	if !ok {
		a.noFace.Add(1)
		log.Debug("no face detected", zap.Duration("latency", latency))
		return CycleNoFace, nil
	}

	res := postprocess.NewFaceResult(face)

	if err := render.Header(&frame, a.cfg.Label, a.cfg.HeaderText); err != nil {
		return a.skip(log, NewOperationError("annotate.header", cycleID, err))
	}

	if err := render.FaceBox(&frame, res, a.cfg.Style, a.cfg.LabelText); err != nil {
		return a.skip(log, NewOperationError("annotate.facebox", cycleID, err))
	}

	if err := a.cfg.Annotated.Store(frame); err != nil {
		return a.skip(log, NewOperationError("annotate.store", cycleID, err))
	}

	a.annotated.Add(1)

	log.Info("face annotated",
		zap.Int("faces", len(faces)),
		zap.String("age", res.Age),
		zap.String("gender", res.Gender),
		zap.String("emotion", res.Emotion),
		zap.Duration("latency", latency),
	)

	return CycleAnnotated, nil
}

// skip records a failed cycle
func (a *AnnotationLoop) skip(log *zap.Logger, err error) (CycleOutcome, error) {
	a.failures.Add(1)
	log.Warn("annotation cycle skipped", zap.Error(err))
	return CycleSkipped, err
}

// Stats returns the loop counters
func (a *AnnotationLoop) Stats() AnnotationStats {
	return AnnotationStats{
		Cycles:      a.cycles.Load(),
		Annotated:   a.annotated.Load(),
		NoFace:      a.noFace.Load(),
		Failures:    a.failures.Load(),
		Paced:       a.paced.Load(),
		LastLatency: time.Duration(a.latency.Load()),
	}
}
