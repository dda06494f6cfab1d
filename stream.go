package facecam

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swdee/go-facecam/preprocess"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// StreamDisplay renders frames as an MJPEG stream served over HTTP at
// /stream so the composite can be viewed in a browser.  /healthz reports
// the stream state as JSON
type StreamDisplay struct {
	addr    string
	quality int
	logger  *zap.Logger
	engine  *gin.Engine
	server  *http.Server

	mu      sync.Mutex
	frame   []byte
	seq     uint64
	updated chan struct{}
	status  func() any

	clients   atomic.Int64
	done      chan struct{}
	closeOnce sync.Once
}

// NewStreamDisplay returns a display that serves the stream on addr, eg:
// "localhost:8080".  Frames are JPEG encoded at the given quality
func NewStreamDisplay(addr string, quality int, logger *zap.Logger) *StreamDisplay {

	gin.SetMode(gin.ReleaseMode)

	s := &StreamDisplay{
		addr:    addr,
		quality: quality,
		logger:  orNop(logger),
		engine:  gin.New(),
		updated: make(chan struct{}),
		done:    make(chan struct{}),
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.engine.GET("/stream", s.stream)
	s.engine.GET("/healthz", s.health)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// SetStatus sets a function whose result is included in the /healthz
// response
func (s *StreamDisplay) SetStatus(fn func() any) {
	s.mu.Lock()
	s.status = fn
	s.mu.Unlock()
}

// Handler returns the HTTP handler serving the stream
func (s *StreamDisplay) Handler() http.Handler {
	return s.engine
}

// Start listens on the configured address and serves requests in the
// background
func (s *StreamDisplay) Start() error {

	ln, err := net.Listen("tcp", s.addr)

	if err != nil {
		return fmt.Errorf("%w: %w", ErrDisplaySurface, err)
	}

	s.logger.Info("stream display listening",
		zap.String("url", "http://"+ln.Addr().String()+"/stream"))

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("stream server failed", zap.Error(err))
			s.shutdown()
		}
	}()

	return nil
}

// Show encodes the image and publishes it to connected clients
func (s *StreamDisplay) Show(img gocv.Mat) error {

	buf, err := preprocess.EncodeJPEG(img, s.quality)

	if err != nil {
		return fmt.Errorf("%w: %w", ErrDisplaySurface, err)
	}

	s.mu.Lock()
	s.frame = buf
	s.seq++
	close(s.updated)
	s.updated = make(chan struct{})
	s.mu.Unlock()

	return nil
}

// PollClosed sleeps for delay and reports if the display has been closed
func (s *StreamDisplay) PollClosed(delay time.Duration) bool {

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-s.done:
		return true
	case <-timer.C:
		return false
	}
}

// Close disconnects clients and shuts down the HTTP server
func (s *StreamDisplay) Close() error {

	s.shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *StreamDisplay) shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// next blocks until a frame newer than last is available
func (s *StreamDisplay) next(ctx context.Context, last uint64) ([]byte, uint64, bool) {

	for {
		s.mu.Lock()
		frame, seq, updated := s.frame, s.seq, s.updated
		s.mu.Unlock()

		if seq != last && frame != nil {
			return frame, seq, true
		}

		select {
		case <-updated:
		case <-ctx.Done():
			return nil, 0, false
		case <-s.done:
			return nil, 0, false
		}
	}
}

// stream writes frames to the client as they are shown until the client
// disconnects or the display is closed
func (s *StreamDisplay) stream(c *gin.Context) {

	s.clients.Add(1)
	defer s.clients.Add(-1)

	s.logger.Info("stream client connected", zap.String("remote", c.ClientIP()))

	c.Header("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	w := c.Writer
	var last uint64

	for {
		frame, seq, ok := s.next(c.Request.Context(), last)

		if !ok {
			break
		}

		last = seq

		w.Write([]byte("--frame\r\n"))
		w.Write([]byte("Content-Type: image/jpeg\r\n\r\n"))
		w.Write(frame)

		if _, err := w.Write([]byte("\r\n")); err != nil {
			break
		}

		w.Flush()
	}

	s.logger.Info("stream client disconnected", zap.String("remote", c.ClientIP()))
}

func (s *StreamDisplay) health(c *gin.Context) {

	s.mu.Lock()
	frames := s.seq
	status := s.status
	s.mu.Unlock()

	closed := false

	select {
	case <-s.done:
		closed = true
	default:
	}

	resp := gin.H{
		"status":  "ok",
		"frames":  frames,
		"clients": s.clients.Load(),
	}

	if closed {
		resp["status"] = "closed"
	}

	if status != nil {
		resp["detector"] = status()
	}

	c.JSON(http.StatusOK, resp)
}

// requestLogger logs each request once it completes
func (s *StreamDisplay) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {

		start := time.Now()
		c.Next()

		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
