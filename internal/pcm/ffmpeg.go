package pcm

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpegSource decodes media by shelling out to ffmpeg, producing raw
// float32 little-endian samples at a fixed rate. Channel count is probed
// per file with ffprobe and clamped to stereo.
type FFmpegSource struct {
	FFmpegPath  string
	FFprobePath string
	SampleRate  int
}

// NewFFmpegSource builds a source with defaults for any zero field.
func NewFFmpegSource(ffmpegPath, ffprobePath string, sampleRate int) *FFmpegSource {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &FFmpegSource{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath, SampleRate: sampleRate}
}

// Available verifies the ffmpeg binary can be executed, so callers can
// fail fast before accepting work.
func (s *FFmpegSource) Available() error {
	if err := exec.Command(s.FFmpegPath, "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg not available at %q: %w", s.FFmpegPath, err)
	}
	return nil
}

// Decode implements Source.
func (s *FFmpegSource) Decode(ctx context.Context, path string) (*PCMBuffer, error) {
	channels, err := s.probeChannels(ctx, path)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.FFmpegPath,
		"-i", path,
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"-ar", strconv.Itoa(s.SampleRate),
		"-ac", strconv.Itoa(channels),
		"-vn",
		"-loglevel", "error",
		"pipe:1",
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &DecodeError{Path: path, Op: "decode", Stderr: compactStderr(stderr.String()), Err: err}
	}

	out := stdout.Bytes()
	if rem := len(out) % 4; rem != 0 {
		out = out[:len(out)-rem]
	}
	total := len(out) / 4
	if total == 0 {
		return nil, &DecodeError{Path: path, Op: "decode", Err: errors.New("no audio samples in output")}
	}

	floats := make([]float32, total)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(out[i*4:]))
	}

	buf := &PCMBuffer{SampleRate: s.SampleRate, Channels: channels}
	if channels == 1 {
		buf.Left = floats
		return buf, nil
	}
	n := total / 2
	buf.Left = make([]float32, n)
	buf.Right = make([]float32, n)
	for i := 0; i < n; i++ {
		buf.Left[i] = floats[2*i]
		buf.Right[i] = floats[2*i+1]
	}
	return buf, nil
}

// probeChannels asks ffprobe for the channel count of the first audio
// stream. Anything above stereo is downmixed at decode time.
func (s *FFmpegSource) probeChannels(ctx context.Context, path string) (int, error) {
	cmd := exec.CommandContext(ctx, s.FFprobePath,
		"-i", path,
		"-select_streams", "a:0",
		"-show_entries", "stream=channels",
		"-v", "quiet",
		"-of", "csv=p=0",
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, &DecodeError{Path: path, Op: "probe", Stderr: exitStderr(err), Err: err}
	}
	text := strings.TrimSpace(string(out))
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &DecodeError{Path: path, Op: "probe", Err: fmt.Errorf("unexpected ffprobe output %q", text)}
	}
	if n < 1 {
		return 0, &DecodeError{Path: path, Op: "probe", Err: fmt.Errorf("no audio channels (got %d)", n)}
	}
	if n > 2 {
		n = 2
	}
	return n, nil
}

func exitStderr(err error) string {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return compactStderr(string(ee.Stderr))
	}
	return ""
}

// compactStderr folds tool output onto one line and caps its length so
// error messages stay readable.
func compactStderr(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", "; ")
	const max = 256
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}
