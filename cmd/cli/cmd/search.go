package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Search movies in the Sublight catalog",
	Long: `Searches the Sublight movie catalog by title and prints the matching
movies with their IMDb ids.

Examples:
  sublight search Avatar
  sublight search "The Matrix"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	RootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("search query must not be empty")
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	logger.WithFields(logrus.Fields{"query": query}).Info("Searching movies...")

	movies, err := client.SearchMovies(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("movie search failed: %w", err)
	}

	if len(movies) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No movies found matching the query.")
		return nil
	}

	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		year := ""
		if m.Year > 0 {
			year = strconv.Itoa(m.Year)
		}
		rows = append(rows, []string{fmt.Sprintf("tt%07d", m.ImdbID), m.Title, year})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Found %d movies:\n", len(movies))
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"IMDb", "Title", "Year"}, rows, 3))
	return nil
}
