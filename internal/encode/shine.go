package encode

import (
	"bytes"

	shine "github.com/braheezy/shine-mp3/pkg/mp3"
)

// shineWriter adapts the shine backend to the frameWriter contract. The
// backend is always configured for two channels; mono input is
// duplicated upstream, since shine mishandles true single-channel
// streams and stereo with equal channels is the supported shape.
type shineWriter struct {
	enc *shine.Encoder
	out bytes.Buffer
}

func newShineWriter(sampleRate, bitrateKbps int) *shineWriter {
	enc := shine.NewEncoder(sampleRate, 2)
	enc.Mpeg.Bitr = bitrateKbps
	return &shineWriter{enc: enc}
}

// writeBlock feeds one interleaved full-size block to the backend. Every
// block is exactly one frame, so no residue accumulates inside shine and
// the stream is complete once the last block is written.
func (w *shineWriter) writeBlock(interleaved []int16) error {
	return w.enc.Write(&w.out, interleaved)
}

func (w *shineWriter) bytes() []byte {
	return w.out.Bytes()
}
