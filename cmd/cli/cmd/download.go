package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/angelospk/sublight-go/pkg/core/fileops"
	"github.com/angelospk/sublight-go/pkg/core/naming"
	"github.com/angelospk/sublight-go/pkg/core/provider"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	downloadDir         string
	downloadRecursive   bool
	downloadLang        string
	downloadMissingOnly bool
	downloadNaming      string
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download [video...]",
	Short: "Download subtitles next to video files",
	Long: `Looks up every video by its Sublight video hash and saves the first
linked subtitle next to it. The file name follows the naming policy:
  original              video name with the subtitle type
  match-video           same as original
  match-video-language  video name, language and subtitle type

Examples:
  sublight download Avatar.2009.720p.mkv --lang en
  sublight download --dir ~/Movies -r --missing-only --naming match-video-language`,
	RunE: runDownload,
}

func init() {
	RootCmd.AddCommand(downloadCmd)
	addVideoSelectionFlags(downloadCmd, &downloadDir, &downloadRecursive, &downloadLang, &downloadMissingOnly)
	downloadCmd.Flags().StringVar(&downloadNaming, "naming", "", "Naming policy (default from config key 'naming')")
}

func runDownload(cmd *cobra.Command, args []string) error {
	policy, err := namingPolicy(downloadNaming)
	if err != nil {
		return err
	}
	lang, err := resolveLanguage(downloadLang)
	if err != nil {
		return err
	}

	videos, err := collectVideos(cmd.Context(), args, downloadDir, downloadRecursive, downloadMissingOnly)
	if err != nil {
		return err
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := client.SubtitleListByFiles(cmd.Context(), videos, lang)
	if err != nil {
		return fmt.Errorf("subtitle lookup failed: %w", err)
	}

	sort.Strings(videos)
	saved, failed := 0, 0
	for _, video := range videos {
		subtitles := results[video]
		if len(subtitles) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No subtitle found for %s\n", filepath.Base(video))
			continue
		}

		path, err := saveSubtitle(cmd, video, subtitles[0], policy)
		if err != nil {
			logger.WithError(err).WithField("video", video).Error("Failed to download subtitle")
			fmt.Fprintf(cmd.OutOrStdout(), "Failed to download subtitle for %s: %v\n", filepath.Base(video), err)
			failed++
			continue
		}
		saved++
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d of %d subtitles.\n", saved, len(videos))
	if failed > 0 {
		return fmt.Errorf("%d subtitle downloads failed", failed)
	}
	return nil
}

// saveSubtitle fetches the archive of subtitle and writes its first subtitle
// file next to video.
func saveSubtitle(cmd *cobra.Command, video string, subtitle provider.SubtitleDescriptor, policy naming.SubtitleNaming) (string, error) {
	archive, err := subtitle.Fetch(cmd.Context())
	if err != nil {
		return "", err
	}

	files, err := fileops.ExtractSubtitles(archive)
	if err != nil {
		return "", err
	}
	if len(files) > 1 {
		logger.WithFields(logrus.Fields{"video": video, "files": len(files)}).Info("Archive holds several subtitles, using the first")
	}

	path := filepath.Join(filepath.Dir(video), policy.Format(video, subtitle))
	if err := os.WriteFile(path, files[0].Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
