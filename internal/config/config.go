package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Encoding
	BitrateKbps int // MP3 bitrate, constant for the whole stream
	SampleRate  int // decode and encode sample rate in Hz

	// Output
	OutputSuffix string // appended to the base name before ".mp3"
	OutputDir    string // where artifacts are written; "" means next to the input

	// External binaries
	FFmpegPath  string
	FFprobePath string

	// Logging
	LogLevel      string
	LogFile       string // empty disables the file sink
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		BitrateKbps: envInt("COVERPRESS_BITRATE", 192),
		SampleRate:  envInt("COVERPRESS_SAMPLE_RATE", 44100),

		OutputSuffix: envStr("COVERPRESS_SUFFIX", "_tagged"),
		OutputDir:    envStr("COVERPRESS_OUT_DIR", ""),

		FFmpegPath:  envStr("COVERPRESS_FFMPEG", "ffmpeg"),
		FFprobePath: envStr("COVERPRESS_FFPROBE", "ffprobe"),

		LogLevel:      envStr("COVERPRESS_LOG_LEVEL", "info"),
		LogFile:       envStr("COVERPRESS_LOG_FILE", ""),
		LogMaxSizeMB:  envInt("COVERPRESS_LOG_MAX_SIZE", 10),
		LogMaxBackups: envInt("COVERPRESS_LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: envInt("COVERPRESS_LOG_MAX_AGE", 7),
	}
}

// LoadDotenv reads a .env file into the process environment before Load.
// An explicit path must exist; the default ".env" is optional.
func LoadDotenv(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
