// Package media defines the input item types and the acceptance gates
// that decide whether a file may enter the pipeline at all. Gates
// validate, they never decode.
package media

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind classifies an accepted media item.
type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// audioExtensions lists name suffixes accepted as audio/video input.
var audioExtensions = map[string]Kind{
	".mp3":  KindAudio,
	".wav":  KindAudio,
	".m4a":  KindAudio,
	".aac":  KindAudio,
	".mp4":  KindVideo,
	".mov":  KindVideo,
	".webm": KindVideo,
}

// artworkExtensions maps accepted image suffixes to their MIME types.
var artworkExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// MediaItem is one accepted audio or video input. Immutable once built.
type MediaItem struct {
	Name        string // display name, base of the path
	Path        string
	ContentType string // declared or sniffed; may be empty if accepted by extension
	Kind        Kind
}

// ArtworkItem is one accepted cover image. Immutable once built.
type ArtworkItem struct {
	Name string
	Path string
	MIME string
	Data []byte // optional in-memory payload; takes precedence over Path
}

// Bytes returns the raw image payload.
func (a ArtworkItem) Bytes() ([]byte, error) {
	if a.Data != nil {
		return a.Data, nil
	}
	return os.ReadFile(a.Path)
}

// NewMediaItem gates a file as audio/video input. The declared content
// type wins when it carries an audio/ or video/ prefix; otherwise the
// extension set decides; as a last resort the file's magic bytes are
// sniffed. Failing all three is a *ValidationError.
func NewMediaItem(path, declaredType string) (MediaItem, error) {
	name := filepath.Base(path)

	if kind, ok := kindFromContentType(declaredType); ok {
		return MediaItem{Name: name, Path: path, ContentType: declaredType, Kind: kind}, nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := audioExtensions[ext]; ok {
		return MediaItem{Name: name, Path: path, ContentType: declaredType, Kind: kind}, nil
	}
	if declaredType == "" {
		detected, err := mimetype.DetectFile(path)
		if err != nil {
			return MediaItem{}, &ValidationError{Input: "media", Name: name, Msg: "cannot inspect file", Err: err}
		}
		if kind, ok := kindFromContentType(detected.String()); ok {
			return MediaItem{Name: name, Path: path, ContentType: detected.String(), Kind: kind}, nil
		}
	}
	return MediaItem{}, &ValidationError{
		Input: "media",
		Name:  name,
		Msg:   "not an audio or video file (accepted: mp3, mp4, mov, wav, m4a, webm, aac, or an audio/* or video/* content type)",
	}
}

// NewArtworkItem gates a file as cover artwork. Same precedence as
// NewMediaItem: declared image/ type, then extension, then sniffing.
func NewArtworkItem(path, declaredType string) (ArtworkItem, error) {
	name := filepath.Base(path)

	if strings.HasPrefix(strings.ToLower(declaredType), "image/") {
		return ArtworkItem{Name: name, Path: path, MIME: declaredType}, nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	if mime, ok := artworkExtensions[ext]; ok {
		return ArtworkItem{Name: name, Path: path, MIME: mime}, nil
	}
	if declaredType == "" {
		detected, err := mimetype.DetectFile(path)
		if err != nil {
			return ArtworkItem{}, &ValidationError{Input: "artwork", Name: name, Msg: "cannot inspect file", Err: err}
		}
		if strings.HasPrefix(detected.String(), "image/") {
			return ArtworkItem{Name: name, Path: path, MIME: detected.String()}, nil
		}
	}
	return ArtworkItem{}, &ValidationError{
		Input: "artwork",
		Name:  name,
		Msg:   "not an image file (accepted: jpg, jpeg, png, webp, or an image/* content type)",
	}
}

func kindFromContentType(ct string) (Kind, bool) {
	switch {
	case strings.HasPrefix(strings.ToLower(ct), "audio/"):
		return KindAudio, true
	case strings.HasPrefix(strings.ToLower(ct), "video/"):
		return KindVideo, true
	default:
		return "", false
	}
}

// SanitizeBaseName strips directory components, traversal sequences, and
// control characters from a name destined for the filesystem. Spaces and
// case are preserved.
func SanitizeBaseName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}
