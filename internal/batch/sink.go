package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"coverpress/internal/media"
)

// Artifact is the finished deliverable for one pairing: a complete MP3
// stream with the cover block already prepended.
type Artifact struct {
	SourceName string // display name of the media item it came from
	Name       string // derived output file name
	Data       []byte
}

// Sink receives finished artifacts. Artifacts delivered before a run
// aborts stay delivered; there is no rollback.
type Sink interface {
	Deliver(ctx context.Context, artifact Artifact) error
}

// OutputName derives the artifact file name from the source display
// name: sanitized base name without its final extension, plus the fixed
// suffix, plus ".mp3".
func OutputName(sourceName, suffix string) string {
	base := media.SanitizeBaseName(sourceName)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		base = "output"
	}
	return base + suffix + ".mp3"
}

// DirSink writes artifacts into a directory, creating it on first use.
type DirSink struct {
	Dir string
}

func (s *DirSink) Deliver(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, a.Name), a.Data, 0o644)
}
