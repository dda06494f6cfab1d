package facecam

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/swdee/go-facecam/faceapi"
	"github.com/swdee/go-facecam/postprocess"
	"github.com/swdee/go-facecam/preprocess"
	"golang.org/x/time/rate"
)

// environment variables overlaid onto the config by LoadEnv
const (
	EnvEndpoint  = "FACE_API_ENDPOINT"
	EnvAPIKey    = "FACE_API_KEY"
	EnvDevice    = "FACECAM_DEVICE"
	EnvInterval  = "FACECAM_INTERVAL"
	EnvSelection = "FACECAM_SELECTION"
	EnvLogLevel  = "FACECAM_LOG_LEVEL"
)

// DefaultRequestsPerMinute allows one face analysis request per default
// interval
const DefaultRequestsPerMinute = 60

// font modes used to draw labels
const (
	FontHershey = "hershey"
	FontTTF     = "ttf"
)

// Config holds the settings of a face cam session
type Config struct {
	// DeviceID is the camera index or video device path, eg: "0" or "/dev/video0"
	DeviceID string `validate:"required"`
	// FrameWidth and FrameHeight request a capture resolution, zero keeps the
	// camera default
	FrameWidth  int `validate:"gte=0"`
	FrameHeight int `validate:"gte=0"`

	// Interval is the period between annotation cycles
	Interval time.Duration `validate:"gte=100ms"`
	// RequestTimeout bounds a single face analysis request
	RequestTimeout time.Duration `validate:"gt=0"`
	// Selection is the face selection policy, first or largest
	Selection string `validate:"oneof=first largest"`

	LabelMargin int    `validate:"gte=0"`
	FontMode    string `validate:"oneof=hershey ttf"`
	JPEGQuality int    `validate:"gte=1,lte=100"`
	// RefreshDelay is how long the capture loop yields to the display
	// between frames
	RefreshDelay time.Duration `validate:"gte=1ms"`

	Endpoint       string `validate:"required,url"`
	APIKey         string `validate:"required"`
	DetectionModel string `validate:"required"`
	// RequestsPerMinute paces annotation cycles, zero for no limit
	RequestsPerMinute int `validate:"gte=0"`

	LogLevel string `validate:"oneof=debug info warn error"`
	LogFile  string

	StreamAddr string `validate:"required,hostname_port"`
	CPUCores   []int  `validate:"dive,gte=0"`
}

// DefaultConfig returns the reference settings.  Endpoint and APIKey have no
// default and must be provided
func DefaultConfig() Config {
	return Config{
		DeviceID:          "0",
		Interval:          time.Second,
		RequestTimeout:    10 * time.Second,
		Selection:         postprocess.SelectFirst.String(),
		LabelMargin:       100,
		FontMode:          FontHershey,
		JPEGQuality:       preprocess.DefaultJPEGQuality,
		RefreshDelay:      time.Millisecond,
		DetectionModel:    faceapi.DefaultDetectionModel,
		RequestsPerMinute: DefaultRequestsPerMinute,
		LogLevel:          "info",
		StreamAddr:        "localhost:8080",
	}
}

// LoadEnv loads the given .env files, or ".env" if none are given, into the
// process environment and overlays the recognised variables onto the config.
// A missing .env file is not an error
func (c *Config) LoadEnv(files ...string) error {

	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading env file: %w", err)
	}

	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}

	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}

	if v := os.Getenv(EnvDevice); v != "" {
		c.DeviceID = v
	}

	if v := os.Getenv(EnvSelection); v != "" {
		c.Selection = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}

	if v := os.Getenv(EnvInterval); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvInterval, err)
		}

		c.Interval = d
	}

	return nil
}

// Validate checks the config field constraints
func (c Config) Validate() error {

	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(c)

	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors

	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}

	return fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
}

// limiter returns the request pacing limiter, nil when unlimited
func (c Config) limiter() *rate.Limiter {

	if c.RequestsPerMinute <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(c.RequestsPerMinute)), 1)
}

// selection returns the parsed face selection policy
func (c Config) selection() postprocess.Selection {

	sel, err := postprocess.ParseSelection(c.Selection)

	if err != nil {
		return postprocess.SelectFirst
	}

	return sel
}
