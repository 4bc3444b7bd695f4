package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/angelospk/sublight-go/pkg/core/provider"
	"github.com/angelospk/sublight-go/pkg/processor"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewProcessorFunc allows overriding the directory scanner for testing.
var NewProcessorFunc = func(logger *logrus.Logger) processor.ProcessorInterface {
	return processor.NewProcessor(logger)
}

var (
	lookupDir         string
	lookupRecursive   bool
	lookupLang        string
	lookupMissingOnly bool
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup [video...]",
	Short: "Find subtitles linked to video files",
	Long: `Computes the Sublight video hash of every file and lists the subtitles
linked to it. Files are given as arguments and/or collected from --dir.

Examples:
  sublight lookup Avatar.2009.720p.mkv --lang en
  sublight lookup --dir ~/Movies --recursive --missing-only`,
	RunE: runLookup,
}

func init() {
	RootCmd.AddCommand(lookupCmd)
	addVideoSelectionFlags(lookupCmd, &lookupDir, &lookupRecursive, &lookupLang, &lookupMissingOnly)
}

func addVideoSelectionFlags(cmd *cobra.Command, dir *string, recursive *bool, lang *string, missingOnly *bool) {
	cmd.Flags().StringVarP(dir, "dir", "d", "", "Directory to scan for video files")
	cmd.Flags().BoolVarP(recursive, "recursive", "r", false, "Scan --dir recursively")
	cmd.Flags().StringVarP(lang, "lang", "l", "", "Language name or ISO code (default all languages)")
	cmd.Flags().BoolVar(missingOnly, "missing-only", false, "Skip videos that already have a subtitle next to them")
}

// collectVideos merges the video arguments with the videos found in dir.
func collectVideos(ctx context.Context, args []string, dir string, recursive, missingOnly bool) ([]string, error) {
	var videos []string
	seen := make(map[string]bool)
	add := func(files ...string) {
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				videos = append(videos, f)
			}
		}
	}

	for _, arg := range args {
		if !processor.IsVideoFile(arg) {
			logger.Warnf("Skipping %s: not a video file", arg)
			continue
		}
		if missingOnly {
			result, err := NewProcessorFunc(logger).ScanDirectory(ctx, filepath.Dir(arg), false)
			if err == nil && processor.FindMatchingSubtitle(arg, result.SubtitleFiles) != "" {
				continue
			}
		}
		add(arg)
	}

	if dir != "" {
		result, err := NewProcessorFunc(logger).ScanDirectory(ctx, dir, recursive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		if missingOnly {
			add(result.VideosWithoutSubtitles()...)
		} else {
			add(result.VideoFiles...)
		}
	}

	if len(videos) == 0 {
		return nil, fmt.Errorf("no video files to look up; pass files or --dir")
	}
	return videos, nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	lang, err := resolveLanguage(lookupLang)
	if err != nil {
		return err
	}

	videos, err := collectVideos(cmd.Context(), args, lookupDir, lookupRecursive, lookupMissingOnly)
	if err != nil {
		return err
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	logger.WithFields(logrus.Fields{"files": len(videos), "language": lang}).Info("Looking up subtitles by video hash...")

	results, err := client.SubtitleListByFiles(cmd.Context(), videos, lang)
	if err != nil {
		return fmt.Errorf("subtitle lookup failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Video", "Subtitle", "Language", "Type"}, lookupRows(videos, results)))
	return nil
}

func lookupRows(videos []string, results map[string][]provider.SubtitleDescriptor) [][]string {
	sorted := append([]string(nil), videos...)
	sort.Strings(sorted)

	var rows [][]string
	for _, video := range sorted {
		name := filepath.Base(video)
		subtitles := results[video]
		if len(subtitles) == 0 {
			rows = append(rows, []string{name, "-", "", ""})
			continue
		}
		for _, s := range subtitles {
			rows = append(rows, []string{name, s.Name(), s.LanguageName(), s.Type()})
		}
	}
	return rows
}
