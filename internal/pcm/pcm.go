// Package pcm models decoded audio and the capability boundary that
// produces it. The engine consumes PCM through the Source interface and
// never decodes containers itself.
package pcm

import (
	"context"
	"errors"
	"fmt"
)

// PCMBuffer holds decoded samples for one media item. Samples are
// nominally in [-1.0, 1.0] but are never trusted to be in range.
// Right is nil for mono.
type PCMBuffer struct {
	SampleRate int
	Channels   int // 1 or 2
	Left       []float32
	Right      []float32
}

// Samples returns the per-channel sample count.
func (b *PCMBuffer) Samples() int {
	return len(b.Left)
}

// Validate checks the structural invariants of the buffer.
func (b *PCMBuffer) Validate() error {
	if b.SampleRate <= 0 {
		return fmt.Errorf("sample rate %d must be positive", b.SampleRate)
	}
	switch b.Channels {
	case 1:
		if b.Right != nil {
			return errors.New("mono buffer must not carry a right channel")
		}
	case 2:
		if len(b.Left) != len(b.Right) {
			return fmt.Errorf("channel lengths differ: left %d, right %d", len(b.Left), len(b.Right))
		}
	default:
		return fmt.Errorf("channel count %d not in {1, 2}", b.Channels)
	}
	return nil
}

// Source decodes a media file into a PCMBuffer. Implementations surface
// failures as *DecodeError and never retry.
type Source interface {
	Decode(ctx context.Context, path string) (*PCMBuffer, error)
}
