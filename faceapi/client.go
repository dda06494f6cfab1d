package faceapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DetectPath is the REST path of the face detect operation
	DetectPath = "/face/v1.0/detect"
	// DefaultDetectionModel is the detection model that supports returning
	// face attributes
	DefaultDetectionModel = "detection_01"
	// maxResponseSize limits how much of a response body is read
	maxResponseSize = 4 << 20
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	// DefaultAttributes are the face attributes requested on each detect call
	DefaultAttributes = []string{"age", "gender", "emotion"}
)

// Client is a face analysis client for the Azure Face REST API
type Client struct {
	endpoint       *url.URL
	key            string
	httpClient     *http.Client
	limiter        *rate.Limiter
	detectionModel string
	attributes     []string
	logger         *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the http client used to make requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit limits the number of detect requests made per minute, Detect
// waits for its turn and fails with ErrRateLimited if ctx ends first.  A
// value of zero or less disables the limit, which is the default
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}

		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
}

// WithDetectionModel sets the detection model name sent to the service
func WithDetectionModel(model string) Option {
	return func(c *Client) {
		c.detectionModel = model
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a face analysis client for the service at endpoint,
// eg: https://myresource.cognitiveservices.azure.com/
func NewClient(endpoint, key string, opts ...Option) (*Client, error) {

	u, err := url.Parse(strings.TrimRight(endpoint, "/"))

	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme and host required", endpoint)
	}

	if key == "" {
		return nil, fmt.Errorf("subscription key required")
	}

	c := &Client{
		endpoint:       u,
		key:            key,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		detectionModel: DefaultDetectionModel,
		attributes:     DefaultAttributes,
		logger:         zap.NewNop(),
	}

	WithRateLimit(0)(c)

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// detectURL builds the detect request URL with query parameters
func (c *Client) detectURL() string {

	u := *c.endpoint
	u.Path = strings.TrimRight(u.Path, "/") + DetectPath

	q := url.Values{}
	q.Set("returnFaceId", "false")
	q.Set("returnFaceAttributes", strings.Join(c.attributes, ","))
	q.Set("detectionModel", c.detectionModel)
	u.RawQuery = q.Encode()

	return u.String()
}

// Detect submits the JPEG encoded image to the service and returns the faces
// detected.  An empty result is not an error
func (c *Client) Detect(ctx context.Context, img []byte) ([]Face, error) {

	const op = "faceapi.detect"

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &APIError{Op: op, Kind: ErrRateLimited, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.detectURL(),
		bytes.NewReader(img))

	if err != nil {
		return nil, &APIError{Op: op, Kind: ErrTransport, Err: err}
	}

	requestID := uuid.NewString()

	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)

	if err != nil {
		return nil, &APIError{Op: op, Kind: ErrTransport, Err: err}
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))

	if err != nil {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Kind: ErrTransport, Err: err}
	}

	c.logger.Debug("face detect request completed",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Int("image_bytes", len(img)),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(op, resp.StatusCode, body)
	}

	var faces []Face

	if err := json.Unmarshal(body, &faces); err != nil {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Kind: ErrMalformed, Err: err}
	}

	if faces == nil {
		faces = []Face{}
	}

	return faces, nil
}

// statusError classifies a non successful response
func (c *Client) statusError(op string, status int, body []byte) error {

	apiErr := &APIError{
		Op:     op,
		Status: status,
		Kind:   ErrService,
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		apiErr.Kind = ErrAuth
	}

	// error body is optional, ignore it if it does not decode
	var svcErr serviceError

	if err := json.Unmarshal(body, &svcErr); err == nil {
		apiErr.Code = svcErr.Error.Code
		apiErr.Message = svcErr.Error.Message
	}

	return apiErr
}
