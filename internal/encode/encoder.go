// Package encode turns PCM sample blocks into a constant-bitrate MP3
// stream. The block contract is fixed: every call carries 1152 samples
// per channel except the last, which may be shorter and is zero-padded
// internally. Configuration cannot change mid-stream.
package encode

import "fmt"

const (
	// BlockSamples is the per-channel block size consumed by one encoder
	// call, matching one MPEG-1 Layer III frame.
	BlockSamples = 1152

	// DefaultBitrateKbps applies when the caller passes a zero bitrate.
	DefaultBitrateKbps = 192
)

// frameWriter is the backend boundary: it receives interleaved,
// quantized, full-size blocks and accumulates the compressed stream.
type frameWriter interface {
	writeBlock(interleaved []int16) error
	bytes() []byte
}

// FrameEncoder encodes one stream. Bitrate, sample rate, and channel
// count are fixed at construction; a new stream needs a new instance.
type FrameEncoder struct {
	channels   int
	sampleRate int
	bitrate    int
	w          frameWriter
	interleave []int16
	flushed    bool
}

// NewFrameEncoder validates the configuration and prepares a stream.
func NewFrameEncoder(channels, sampleRate, bitrateKbps int) (*FrameEncoder, error) {
	if channels != 1 && channels != 2 {
		return nil, &EncodeError{Op: "init", Msg: fmt.Sprintf("channel count %d not in {1, 2}", channels)}
	}
	if sampleRate <= 0 {
		return nil, &EncodeError{Op: "init", Msg: fmt.Sprintf("sample rate %d must be positive", sampleRate)}
	}
	if bitrateKbps == 0 {
		bitrateKbps = DefaultBitrateKbps
	}
	if bitrateKbps < 0 {
		return nil, &EncodeError{Op: "init", Msg: fmt.Sprintf("bitrate %d must be positive", bitrateKbps)}
	}
	return &FrameEncoder{
		channels:   channels,
		sampleRate: sampleRate,
		bitrate:    bitrateKbps,
		w:          newShineWriter(sampleRate, bitrateKbps),
		interleave: make([]int16, 2*BlockSamples),
	}, nil
}

// EncodeBlock quantizes one block and appends its compressed bytes to
// the growing stream. left and right must be equal length, at most
// BlockSamples, and non-empty; only the final block of a stream may be
// shorter than BlockSamples. Mono callers pass the same samples for
// both channels.
func (e *FrameEncoder) EncodeBlock(left, right []float32) error {
	if e.flushed {
		return &EncodeError{Op: "block", Err: ErrFlushed}
	}
	if len(left) != len(right) {
		return &EncodeError{Op: "block", Msg: fmt.Sprintf("channel lengths differ: left %d, right %d", len(left), len(right))}
	}
	if len(left) == 0 {
		return &EncodeError{Op: "block", Msg: "empty block"}
	}
	if len(left) > BlockSamples {
		return &EncodeError{Op: "block", Msg: fmt.Sprintf("block of %d samples exceeds %d", len(left), BlockSamples)}
	}

	n := len(left)
	for i := 0; i < n; i++ {
		e.interleave[2*i] = Quantize(left[i])
		e.interleave[2*i+1] = Quantize(right[i])
	}
	// The interleave buffer is reused, so the pad region must be zeroed.
	for i := 2 * n; i < len(e.interleave); i++ {
		e.interleave[i] = 0
	}

	if err := e.w.writeBlock(e.interleave); err != nil {
		return &EncodeError{Op: "block", Msg: "backend write failed", Err: err}
	}
	return nil
}

// Flush finalizes the stream and returns its complete bytes. It must be
// called exactly once, after the last EncodeBlock.
func (e *FrameEncoder) Flush() ([]byte, error) {
	if e.flushed {
		return nil, &EncodeError{Op: "flush", Err: ErrFlushed}
	}
	e.flushed = true
	return e.w.bytes(), nil
}

// Channels reports the configured channel count.
func (e *FrameEncoder) Channels() int { return e.channels }

// SampleRate reports the configured sample rate in Hz.
func (e *FrameEncoder) SampleRate() int { return e.sampleRate }

// Bitrate reports the configured constant bitrate in kbps.
func (e *FrameEncoder) Bitrate() int { return e.bitrate }
