package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might interfere
	envVars := []string{
		"COVERPRESS_BITRATE", "COVERPRESS_SAMPLE_RATE",
		"COVERPRESS_SUFFIX", "COVERPRESS_OUT_DIR",
		"COVERPRESS_FFMPEG", "COVERPRESS_FFPROBE",
		"COVERPRESS_LOG_LEVEL", "COVERPRESS_LOG_FILE",
		"COVERPRESS_LOG_MAX_SIZE", "COVERPRESS_LOG_MAX_BACKUPS",
		"COVERPRESS_LOG_MAX_AGE",
	}
	for _, k := range envVars {
		os.Unsetenv(k)
	}

	cfg := Load()

	if cfg.BitrateKbps != 192 {
		t.Errorf("BitrateKbps = %d, want 192", cfg.BitrateKbps)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", cfg.SampleRate)
	}
	if cfg.OutputSuffix != "_tagged" {
		t.Errorf("OutputSuffix = %q, want '_tagged'", cfg.OutputSuffix)
	}
	if cfg.OutputDir != "" {
		t.Errorf("OutputDir = %q, want empty default", cfg.OutputDir)
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("FFmpegPath = %q, want 'ffmpeg'", cfg.FFmpegPath)
	}
	if cfg.FFprobePath != "ffprobe" {
		t.Errorf("FFprobePath = %q, want 'ffprobe'", cfg.FFprobePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want 'info'", cfg.LogLevel)
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty default", cfg.LogFile)
	}
	if cfg.LogMaxSizeMB != 10 {
		t.Errorf("LogMaxSizeMB = %d, want 10", cfg.LogMaxSizeMB)
	}
	if cfg.LogMaxBackups != 3 {
		t.Errorf("LogMaxBackups = %d, want 3", cfg.LogMaxBackups)
	}
	if cfg.LogMaxAgeDays != 7 {
		t.Errorf("LogMaxAgeDays = %d, want 7", cfg.LogMaxAgeDays)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COVERPRESS_BITRATE", "128")
	t.Setenv("COVERPRESS_SAMPLE_RATE", "48000")
	t.Setenv("COVERPRESS_SUFFIX", "_cover")
	t.Setenv("COVERPRESS_OUT_DIR", "/tmp/out")
	t.Setenv("COVERPRESS_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("COVERPRESS_FFPROBE", "/opt/ffmpeg/bin/ffprobe")
	t.Setenv("COVERPRESS_LOG_LEVEL", "debug")
	t.Setenv("COVERPRESS_LOG_FILE", "/var/log/coverpress.log")
	t.Setenv("COVERPRESS_LOG_MAX_SIZE", "50")
	t.Setenv("COVERPRESS_LOG_MAX_BACKUPS", "9")
	t.Setenv("COVERPRESS_LOG_MAX_AGE", "30")

	cfg := Load()

	if cfg.BitrateKbps != 128 {
		t.Errorf("BitrateKbps = %d, want 128", cfg.BitrateKbps)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", cfg.SampleRate)
	}
	if cfg.OutputSuffix != "_cover" {
		t.Errorf("OutputSuffix = %q, want '_cover'", cfg.OutputSuffix)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, want '/tmp/out'", cfg.OutputDir)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q, want env override", cfg.FFmpegPath)
	}
	if cfg.FFprobePath != "/opt/ffmpeg/bin/ffprobe" {
		t.Errorf("FFprobePath = %q, want env override", cfg.FFprobePath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want 'debug'", cfg.LogLevel)
	}
	if cfg.LogFile != "/var/log/coverpress.log" {
		t.Errorf("LogFile = %q, want env override", cfg.LogFile)
	}
	if cfg.LogMaxSizeMB != 50 {
		t.Errorf("LogMaxSizeMB = %d, want 50", cfg.LogMaxSizeMB)
	}
	if cfg.LogMaxBackups != 9 {
		t.Errorf("LogMaxBackups = %d, want 9", cfg.LogMaxBackups)
	}
	if cfg.LogMaxAgeDays != 30 {
		t.Errorf("LogMaxAgeDays = %d, want 30", cfg.LogMaxAgeDays)
	}
}

func TestEnvIntInvalidFallsBack(t *testing.T) {
	t.Setenv("COVERPRESS_BITRATE", "not-a-number")
	cfg := Load()
	if cfg.BitrateKbps != 192 {
		t.Errorf("Invalid int env should fallback to default: got %d, want 192", cfg.BitrateKbps)
	}
}

func TestEnvStrEmpty(t *testing.T) {
	// Unset string should use fallback
	os.Unsetenv("COVERPRESS_FFMPEG")
	cfg := Load()
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("Unset env should use fallback: got %q", cfg.FFmpegPath)
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "custom.env")
	if err := os.WriteFile(envFile, []byte("COVERPRESS_SUFFIX=_fromfile\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv skips keys already in the environment, so make sure
	// this one is absent (t.Setenv first registers the restore).
	t.Setenv("COVERPRESS_SUFFIX", "x")
	os.Unsetenv("COVERPRESS_SUFFIX")

	if err := LoadDotenv(envFile); err != nil {
		t.Fatalf("LoadDotenv(%q) error: %v", envFile, err)
	}
	cfg := Load()
	if cfg.OutputSuffix != "_fromfile" {
		t.Errorf("OutputSuffix = %q, want '_fromfile'", cfg.OutputSuffix)
	}
}

func TestLoadDotenvMissingExplicitPath(t *testing.T) {
	if err := LoadDotenv(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Error("explicit missing env file should error")
	}
}
