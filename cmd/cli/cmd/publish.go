package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abadojack/whatlanggo"
	sublight "github.com/angelospk/sublight-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	publishImdbID   string
	publishVideo    string
	publishSubtitle string
	publishLang     string
	publishRelease  string
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a subtitle to Sublight",
	Long: `Uploads a subtitle for a movie and links it to the video hash of the
given video file.

Example:
  sublight publish --imdbid tt0499549 --video Avatar.2009.720p.mkv \
    --subtitle Avatar.2009.720p.srt --lang sl`,
	RunE: runPublish,
}

func init() {
	RootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVar(&publishImdbID, "imdbid", "", "IMDb ID (e.g., tt0499549)")
	publishCmd.Flags().StringVar(&publishVideo, "video", "", "Video file the subtitle is synchronised to")
	publishCmd.Flags().StringVar(&publishSubtitle, "subtitle", "", "Subtitle file to publish")
	publishCmd.Flags().StringVarP(&publishLang, "lang", "l", "", "Subtitle language name or ISO code")
	publishCmd.Flags().StringVar(&publishRelease, "release", "", "Release name (default video file name)")
	for _, f := range []string{"imdbid", "video", "subtitle", "lang"} {
		_ = publishCmd.MarkFlagRequired(f)
	}
}

func parseImdbFlag(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), "tt"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid --imdbid: %s", value)
	}
	return id, nil
}

// warnOnLanguageMismatch logs when the detected language of the subtitle text
// differs from the language it is published as.
func warnOnLanguageMismatch(data []byte, languageName string) {
	info := whatlanggo.Detect(string(data))
	if !info.IsReliable() {
		return
	}
	detected := info.Lang.String()
	if strings.EqualFold(detected, languageName) {
		return
	}
	logger.WithFields(logrus.Fields{"detected": detected, "language": languageName}).
		Warn("Subtitle text does not look like the selected language")
}

func runPublish(cmd *cobra.Command, args []string) error {
	imdbID, err := parseImdbFlag(publishImdbID)
	if err != nil {
		return err
	}
	lang, err := resolveLanguage(publishLang)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(publishSubtitle)
	if err != nil {
		return fmt.Errorf("failed to read subtitle: %w", err)
	}
	warnOnLanguageMismatch(data, lang)

	videoHash, err := NewVideoHasherFunc().Hash(publishVideo)
	if err != nil {
		return fmt.Errorf("failed to compute video hash: %w", err)
	}

	release := publishRelease
	if release == "" {
		base := filepath.Base(publishVideo)
		release = strings.TrimSuffix(base, filepath.Ext(base))
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	subtitleID, err := client.PublishSubtitle(cmd.Context(), sublight.PublishRequest{
		ImdbID:       imdbID,
		VideoHash:    videoHash,
		LanguageName: lang,
		ReleaseName:  release,
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Subtitle published with id %s and linked to %s\n", subtitleID, filepath.Base(publishVideo))
	return nil
}
