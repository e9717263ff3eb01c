package encode

import (
	"context"
	"runtime"

	"coverpress/internal/pcm"
)

// yieldEvery is the number of blocks encoded between cooperative yields
// in EncodeBuffer. Yielding keeps the surrounding process responsive on
// long inputs and has no effect on output bytes.
const yieldEvery = 20

// BlockEncoder is the frame-level contract EncodeBuffer drives. It is
// satisfied by *FrameEncoder.
type BlockEncoder interface {
	EncodeBlock(left, right []float32) error
	Flush() ([]byte, error)
}

// EncodeBuffer slices a PCM buffer into BlockSamples-sized blocks, feeds
// them to enc in order, and returns the finished stream from Flush. An
// input of L samples yields ceil(L/BlockSamples) blocks; only the last
// may be short. Mono buffers are duplicated into both encoder channels
// so the encoder always works in a two-channel shape. The context is
// checked at every yield point; cancellation abandons the stream.
func EncodeBuffer(ctx context.Context, enc BlockEncoder, buf *pcm.PCMBuffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, &EncodeError{Op: "buffer", Msg: err.Error()}
	}

	left, right := buf.Left, buf.Right
	if buf.Channels == 1 {
		right = left
	}

	blocks := 0
	for start := 0; start < len(left); start += BlockSamples {
		end := start + BlockSamples
		if end > len(left) {
			end = len(left)
		}
		if err := enc.EncodeBlock(left[start:end], right[start:end]); err != nil {
			return nil, err
		}
		blocks++
		if blocks%yieldEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			runtime.Gosched()
		}
	}
	return enc.Flush()
}
