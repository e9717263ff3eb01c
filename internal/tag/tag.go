// Package tag attaches cover artwork to a finished MP3 stream. The
// operation is pure binary header construction: the audio payload is
// never re-encoded, and stripping the header recovers it byte for byte.
package tag

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/bogem/id3v2/v2"
)

const (
	headerSize       = 10
	defaultMIME      = "image/jpeg"
	coverDescription = "Cover"
)

// Embed prepends an ID3v2 block carrying exactly one front-cover picture
// to stream. mime falls back to image/jpeg when absent or unrecognized.
// No other metadata fields are written. Embedding over an already tagged
// stream replaces the old block instead of stacking a second one.
func Embed(stream, artwork []byte, mime string) ([]byte, error) {
	if len(artwork) == 0 {
		return nil, errors.New("empty artwork")
	}
	if !strings.HasPrefix(strings.ToLower(mime), "image/") {
		mime = defaultMIME
	}
	body := Strip(stream)

	t := id3v2.NewEmptyTag()
	t.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mime,
		PictureType: id3v2.PTFrontCover,
		Description: coverDescription,
		Picture:     artwork,
	})

	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write tag: %w", err)
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// Strip removes a leading ID3v2 block if present and returns the rest of
// the stream. Data without a tag, or with one that cannot be measured,
// comes back unchanged.
func Strip(data []byte) []byte {
	if len(data) < headerSize || string(data[:3]) != "ID3" {
		return data
	}
	// The tag size is four syncsafe bytes, seven bits each, header not
	// included.
	size := 0
	for _, b := range data[6:10] {
		if b&0x80 != 0 {
			return data
		}
		size = size<<7 | int(b)
	}
	total := headerSize + size
	if data[5]&0x10 != 0 {
		total += headerSize // v2.4 footer
	}
	if total > len(data) {
		return data
	}
	return data[total:]
}
