package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/angelospk/sublight-go/pkg/core/provider"
	ptn "github.com/razsteinmetz/go-ptn"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	subtitlesQuery string
	subtitlesYear  int
	subtitlesFile  string
	subtitlesLang  string
)

// subtitlesCmd represents the subtitles command
var subtitlesCmd = &cobra.Command{
	Use:   "subtitles",
	Short: "List subtitles for a movie title",
	Long: `Lists the subtitles Sublight has for a movie. The movie is given by
--query (and optionally --year), or derived from a video file name with --file.

Examples:
  sublight subtitles --query Avatar --year 2009 --lang en
  sublight subtitles --file Avatar.2009.720p.BluRay.x264.mkv --lang Slovenian`,
	RunE: runSubtitles,
}

func init() {
	RootCmd.AddCommand(subtitlesCmd)

	subtitlesCmd.Flags().StringVarP(&subtitlesQuery, "query", "q", "", "Movie title")
	subtitlesCmd.Flags().IntVarP(&subtitlesYear, "year", "y", 0, "Release year")
	subtitlesCmd.Flags().StringVarP(&subtitlesFile, "file", "f", "", "Video file name to take title and year from")
	subtitlesCmd.Flags().StringVarP(&subtitlesLang, "lang", "l", "", "Language name or ISO code (default all languages)")
}

// movieFromFileName derives title and year from a release style file name.
func movieFromFileName(file string) provider.Movie {
	name := filepath.Base(file)
	parsed, err := ptn.Parse(name)
	if err != nil || parsed.Title == "" {
		logger.Warnf("Failed to parse video filename '%s': %v", name, err)
		base := strings.TrimSuffix(name, filepath.Ext(name))
		return provider.Movie{Title: strings.ReplaceAll(base, ".", " "), TmdbID: -1}
	}
	return provider.Movie{Title: parsed.Title, Year: parsed.Year, TmdbID: -1}
}

func runSubtitles(cmd *cobra.Command, args []string) error {
	if subtitlesQuery == "" && subtitlesFile == "" {
		return fmt.Errorf("one of --query or --file must be provided")
	}

	movie := provider.Movie{Title: subtitlesQuery, Year: subtitlesYear, TmdbID: -1}
	if subtitlesQuery == "" {
		movie = movieFromFileName(subtitlesFile)
		if subtitlesYear > 0 {
			movie.Year = subtitlesYear
		}
	}

	lang, err := resolveLanguage(subtitlesLang)
	if err != nil {
		return err
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	logger.WithFields(logrus.Fields{"title": movie.Title, "year": movie.Year, "language": lang}).Info("Searching subtitles...")

	subtitles, err := client.SubtitleList(cmd.Context(), movie, lang)
	if err != nil {
		return fmt.Errorf("subtitle search failed: %w", err)
	}

	if len(subtitles) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No subtitles found for %s.\n", movie.Name())
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Found %d subtitles for %s:\n", len(subtitles), movie.Name())
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Language", "Type"}, descriptorRows(subtitles)))
	return nil
}

func descriptorRows(subtitles []provider.SubtitleDescriptor) [][]string {
	rows := make([][]string, 0, len(subtitles))
	for _, s := range subtitles {
		rows = append(rows, []string{s.Name(), s.LanguageName(), s.Type()})
	}
	return rows
}
