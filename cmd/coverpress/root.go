package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coverpress/internal/config"
	"coverpress/internal/logger"
	"coverpress/internal/media"
	"coverpress/internal/pcm"
)

var cfg config.Config

var (
	flagEnvFile  string
	flagLogLevel string
	flagLogFile  string
	flagSuffix   string
)

var rootCmd = &cobra.Command{
	Use:   "coverpress",
	Short: "Convert audio and video files to MP3 with embedded cover art",
	Long: `coverpress converts local audio and video media into MP3 files carrying
one embedded front-cover picture, singly or in batch. Decoding is
delegated to ffmpeg; encoding is constant-bitrate MP3 done in-process.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotenv(flagEnvFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		cfg = config.Load()
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flagLogLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = flagLogFile
		}
		if cmd.Flags().Changed("suffix") {
			cfg.OutputSuffix = flagSuffix
		}

		logger.Init(logger.Config{
			Level:      logger.Level(cfg.LogLevel),
			OutputPath: cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
		})
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagEnvFile, "env-file", "", "load environment variables from this file before reading config")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "also write JSON logs to this rotating file")
	pf.StringVar(&flagSuffix, "suffix", "_tagged", "output name suffix appended before .mp3")
}

// Execute runs the command tree and maps errors to exit codes:
// validation failures exit 2 before any run starts, everything else
// (aborted runs included) exits 1.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	logger.Sync()
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var verr *media.ValidationError
	if errors.As(err, &verr) {
		os.Exit(2)
	}
	os.Exit(1)
}

// newSource builds the ffmpeg-backed PCM source and fails fast when the
// binary cannot run. A missing decoder is a startup validation failure,
// not a run error.
func newSource() (*pcm.FFmpegSource, error) {
	src := pcm.NewFFmpegSource(cfg.FFmpegPath, cfg.FFprobePath, cfg.SampleRate)
	if err := src.Available(); err != nil {
		return nil, &media.ValidationError{Input: "dependency", Msg: err.Error()}
	}
	return src, nil
}

// outputDir resolves the artifact directory: the command flag wins, then
// the configured directory, then the given fallback.
func outputDir(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return fallback
}
