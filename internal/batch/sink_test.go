package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		source string
		suffix string
		want   string
	}{
		{"Track One.mp3", "_tagged", "Track One_tagged.mp3"},
		{"song.wav", "_tagged", "song_tagged.mp3"},
		{"noext", "_tagged", "noext_tagged.mp3"},
		{"clip.final.mov", "", "clip.final.mp3"},
		{"../../etc/passwd", "_x", "passwd_x.mp3"},
		{"dir/nested.wav", "_x", "nested_x.mp3"},
		{".hidden", "_x", "output_x.mp3"},
		{"", "_x", "output_x.mp3"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.source, tt.suffix); got != tt.want {
			t.Errorf("OutputName(%q, %q) = %q, want %q", tt.source, tt.suffix, got, tt.want)
		}
	}
}

func TestDirSinkWritesArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	sink := &DirSink{Dir: dir}

	artifact := Artifact{
		SourceName: "song.wav",
		Name:       "song_tagged.mp3",
		Data:       []byte("ID3-then-audio"),
	}
	if err := sink.Deliver(context.Background(), artifact); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "song_tagged.mp3"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.Equal(got, artifact.Data) {
		t.Errorf("file bytes = %q, want %q", got, artifact.Data)
	}
}

func TestDirSinkHonorsContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &DirSink{Dir: dir}
	err := sink.Deliver(ctx, Artifact{Name: "x.mp3", Data: []byte("data")})
	if err == nil {
		t.Fatal("Deliver succeeded with a canceled context")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "x.mp3")); !os.IsNotExist(statErr) {
		t.Error("artifact written despite cancellation")
	}
}
