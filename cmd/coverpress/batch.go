package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"coverpress/internal/batch"
	"coverpress/internal/logger"
	"coverpress/internal/match"
	"coverpress/internal/media"
)

var (
	batchOut       string
	batchOverrides string
)

var batchCmd = &cobra.Command{
	Use:   "batch <media-dir> <artwork-dir>",
	Short: "Convert every matched media file in a directory",
	Long: `batch scans a media directory and an artwork directory, pairs files by
normalized name (lowercase alphanumerics, extension stripped), and
converts each matched pair in order. Media without a matching image is
skipped. A YAML manifest may force pairings by exact display name:

    Track One.mp3: special-cover.png`,
	Args: cobra.MaximumNArgs(2),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output directory (default: the media directory)")
	batchCmd.Flags().StringVar(&batchOverrides, "overrides", "", "YAML manifest mapping audio names to artwork file names")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return &media.ValidationError{Input: "media", Msg: "a media directory is required"}
	case 1:
		return &media.ValidationError{Input: "artwork", Msg: "an artwork directory is required"}
	}
	mediaDir, artDir := args[0], args[1]

	q := batch.NewQueue()
	if err := scanMedia(q, mediaDir); err != nil {
		return err
	}
	if q.Len() == 0 {
		return &media.ValidationError{Input: "media", Msg: fmt.Sprintf("no audio or video files in %s", mediaDir)}
	}
	artwork, err := scanArtwork(q, artDir)
	if err != nil {
		return err
	}
	if batchOverrides != "" {
		if err := applyOverrides(q, batchOverrides, artwork); err != nil {
			return err
		}
	}

	pairings := q.Pairings()
	matchedCount := 0
	for _, p := range pairings {
		if p.Status == match.StatusMatched {
			fmt.Printf("  %-14s %s <- %s\n", p.Status, p.Media.Name, p.Artwork.Name)
			matchedCount++
		} else {
			fmt.Printf("  %-14s %s\n", p.Status, p.Media.Name)
		}
	}
	if matchedCount == 0 {
		return &media.ValidationError{Input: "media", Msg: "no media file matched an artwork file; nothing to convert"}
	}

	src, err := newSource()
	if err != nil {
		return err
	}

	outDir := outputDir(batchOut, mediaDir)
	runner := batch.NewRunner(src, &batch.DirSink{Dir: outDir}, batch.RunnerConfig{
		BitrateKbps:  cfg.BitrateKbps,
		OutputSuffix: cfg.OutputSuffix,
	})

	notifier := batch.NewNotifier()
	runner.SetStatusFunc(notifier.Publish)
	listener := notifier.Subscribe()
	done := make(chan struct{})
	go printProgress(listener, done)

	runErr := runner.Run(cmd.Context(), pairings)
	notifier.Unsubscribe(listener)
	<-done

	if runErr != nil {
		return runErr
	}
	st := runner.Status()
	fmt.Printf("completed: %d/%d artifacts written to %s\n", st.Processed, st.Total, outDir)
	return nil
}

// scanMedia gates every regular file in dir as media and queues the
// accepted ones. Rejected files are skipped, since batch directories
// normally hold covers and notes alongside the media.
func scanMedia(q *batch.Queue, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &media.ValidationError{Input: "media", Msg: fmt.Sprintf("cannot read directory %s", dir), Err: err}
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		item, err := media.NewMediaItem(filepath.Join(dir, e.Name()), "")
		if err != nil {
			logger.Debug("skipping non-media file", logger.String("name", e.Name()), logger.Err(err))
			continue
		}
		q.AddAudio(item)
	}
	return nil
}

// scanArtwork does the same for the artwork directory and returns the
// accepted items by display name for override lookups.
func scanArtwork(q *batch.Queue, dir string) (map[string]media.ArtworkItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &media.ValidationError{Input: "artwork", Msg: fmt.Sprintf("cannot read directory %s", dir), Err: err}
	}
	byName := make(map[string]media.ArtworkItem)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		art, err := media.NewArtworkItem(filepath.Join(dir, e.Name()), "")
		if err != nil {
			logger.Debug("skipping non-artwork file", logger.String("name", e.Name()), logger.Err(err))
			continue
		}
		q.AddArtwork(art)
		byName[art.Name] = art
	}
	return byName, nil
}

// applyOverrides reads the YAML manifest of audio display name ->
// artwork file name. Every named artwork must exist in the scanned
// artwork directory.
func applyOverrides(q *batch.Queue, path string, artwork map[string]media.ArtworkItem) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &media.ValidationError{Input: "overrides", Msg: fmt.Sprintf("cannot read manifest %s", path), Err: err}
	}
	var manifest map[string]string
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return &media.ValidationError{Input: "overrides", Msg: fmt.Sprintf("malformed manifest %s", path), Err: err}
	}
	for audioName, artName := range manifest {
		art, ok := artwork[artName]
		if !ok {
			return &media.ValidationError{Input: "overrides", Name: artName, Msg: "artwork not found in the artwork directory"}
		}
		q.SetOverride(audioName, art)
	}
	return nil
}

// printProgress prints one line per stage change until the listener is
// unsubscribed. Buffered snapshots left behind are advisory and dropped.
func printProgress(l *batch.Listener, done chan<- struct{}) {
	defer close(done)
	var last string
	for {
		select {
		case st := <-l.C:
			if st.Stage != "" && st.Stage != last {
				fmt.Println("  " + st.Stage)
				last = st.Stage
			}
		case <-l.Done():
			return
		}
	}
}
