package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"coverpress/internal/batch"
	"coverpress/internal/media"
)

var convertOut string

var convertCmd = &cobra.Command{
	Use:   "convert <media-file> <artwork-file>",
	Short: "Convert one media file to MP3 with embedded cover art",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output directory (default: next to the input)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	// Missing required inputs are validation failures, not usage errors,
	// so they share the pre-run exit code.
	if len(args) == 0 {
		return &media.ValidationError{Input: "media", Msg: "a media file is required"}
	}
	if len(args) < 2 {
		return &media.ValidationError{Input: "artwork", Msg: "an artwork file is required in single mode"}
	}

	item, err := media.NewMediaItem(args[0], "")
	if err != nil {
		return err
	}
	art, err := media.NewArtworkItem(args[1], "")
	if err != nil {
		return err
	}

	src, err := newSource()
	if err != nil {
		return err
	}

	// An explicit override guarantees the pairing regardless of names.
	q := batch.NewQueue()
	q.AddAudio(item)
	q.AddArtwork(art)
	q.SetOverride(item.Name, art)

	outDir := outputDir(convertOut, filepath.Dir(args[0]))
	runner := batch.NewRunner(src, &batch.DirSink{Dir: outDir}, batch.RunnerConfig{
		BitrateKbps:  cfg.BitrateKbps,
		OutputSuffix: cfg.OutputSuffix,
	})
	if err := runner.Run(cmd.Context(), q.Pairings()); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", filepath.Join(outDir, batch.OutputName(item.Name, cfg.OutputSuffix)))
	return nil
}
