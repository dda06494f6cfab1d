// Example program showing the webcam feed next to the feed annotated with
// the age, gender and emotion of a detected face.
//
// Credentials are read from the environment or a .env file:
//
//	FACE_API_ENDPOINT=https://<resource>.cognitiveservices.azure.com/
//	FACE_API_KEY=<subscription key>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/swdee/go-facecam"
	"github.com/swdee/go-facecam/faceapi"
	"go.uber.org/zap"
)

func init() {
	// desktop window toolkits require events to be handled on the main thread
	runtime.LockOSThread()
}

var (
	cfg      = facecam.DefaultConfig()
	envFile  string
	cpuCores string
	devLog   bool
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "facecam",
	Short: "Live webcam face attribute annotation",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if err := applyEnv(cmd); err != nil {
			return err
		}

		if cpuCores != "" {
			cores, err := facecam.ParseCPUCores(cpuCores)

			if err != nil {
				return err
			}

			cfg.CPUCores = cores
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		var err error
		logger, err = facecam.NewLogger(facecam.LogConfig{
			Level:       cfg.LogLevel,
			Development: devLog,
			File:        cfg.LogFile,
		})

		if err != nil {
			return fmt.Errorf("error creating logger: %w", err)
		}

		if len(cfg.CPUCores) > 0 {
			if err := facecam.SetCPUAffinity(cfg.CPUCores); err != nil {
				logger.Warn("error setting CPU affinity", zap.Error(err))
			}
		}

		if cores, err := facecam.GetCPUAffinity(); err == nil {
			logger.Info("running on CPU cores", zap.Ints("cores", cores))
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

// applyEnv overlays the environment onto settings not given as flags
func applyEnv(cmd *cobra.Command) error {

	env := cfg

	if err := env.LoadEnv(envFile); err != nil {
		return err
	}

	flags := cmd.Flags()

	if !flags.Changed("endpoint") {
		cfg.Endpoint = env.Endpoint
	}

	if !flags.Changed("key") {
		cfg.APIKey = env.APIKey
	}

	if !flags.Changed("device") {
		cfg.DeviceID = env.DeviceID
	}

	if !flags.Changed("interval") {
		cfg.Interval = env.Interval
	}

	if !flags.Changed("select") {
		cfg.Selection = env.Selection
	}

	if !flags.Changed("log-level") {
		cfg.LogLevel = env.LogLevel
	}

	return nil
}

// run opens the camera and face analysis client and runs the detector on
// the display until it is closed
func run(ctx context.Context, display facecam.Display) error {

	client, err := faceapi.NewClient(cfg.Endpoint, cfg.APIKey,
		faceapi.WithDetectionModel(cfg.DetectionModel),
		faceapi.WithLogger(logger.Named("faceapi")),
	)

	if err != nil {
		display.Close()
		return err
	}

	camera, err := facecam.OpenWebcam(cfg.DeviceID, cfg.FrameWidth, cfg.FrameHeight)

	if err != nil {
		display.Close()
		return err
	}

	det := facecam.NewDetector(cfg, camera, display, client, logger)

	if sd, ok := display.(*facecam.StreamDisplay); ok {
		sd.SetStatus(func() any {
			return det.Stats()
		})
	}

	return det.Start(ctx)
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&envFile, "env", ".env", "Path to .env file with FACE_API_ENDPOINT and FACE_API_KEY")
	pf.StringVar(&cfg.Endpoint, "endpoint", "", "Face API endpoint URL")
	pf.StringVar(&cfg.APIKey, "key", "", "Face API subscription key")
	pf.StringVarP(&cfg.DeviceID, "device", "d", cfg.DeviceID, "Camera index or video device path")
	pf.IntVar(&cfg.FrameWidth, "width", 0, "Requested capture width, 0 keeps the camera default")
	pf.IntVar(&cfg.FrameHeight, "height", 0, "Requested capture height, 0 keeps the camera default")
	pf.DurationVarP(&cfg.Interval, "interval", "i", cfg.Interval, "Period between face analysis requests")
	pf.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Face analysis request timeout")
	pf.StringVar(&cfg.Selection, "select", cfg.Selection, "Face to annotate when several are detected [first|largest]")
	pf.IntVar(&cfg.LabelMargin, "margin", cfg.LabelMargin, "Height of the label panel beneath the face box")
	pf.StringVar(&cfg.FontMode, "font", cfg.FontMode, "Label font ["+strings.Join([]string{facecam.FontHershey, facecam.FontTTF}, "|")+"]")
	pf.IntVar(&cfg.RequestsPerMinute, "rpm", cfg.RequestsPerMinute, "Maximum face analysis requests per minute, 0 for no limit")
	pf.StringVar(&cfg.DetectionModel, "detection-model", cfg.DetectionModel, "Face API detection model, must support face attributes")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level [debug|info|warn|error]")
	pf.StringVar(&cfg.LogFile, "log-file", "", "Also write JSON logs to this rotated file")
	pf.BoolVar(&devLog, "dev", false, "Human readable console logs")
	pf.StringVar(&cpuCores, "cpu-cores", "", "Pin the process to CPU cores, eg: 4-7")
}
