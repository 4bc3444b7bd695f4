package sublight

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
	"github.com/angelospk/sublight-go/pkg/core/provider"
)

// Search looks up movies by name in the whole catalog.
func (c *Client) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	movies, err := c.SearchMovies(ctx, query)
	if err != nil {
		return nil, err
	}
	results := make([]provider.SearchResult, 0, len(movies))
	for _, m := range movies {
		results = append(results, m)
	}
	return results, nil
}

// SearchMovies is Search with concrete movie results. Cached results still
// count as session activity.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]provider.Movie, error) {
	query = strings.TrimSpace(query)

	_, svc, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := "search:" + strings.ToLower(query)
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			var movies []provider.Movie
			if err := json.Unmarshal(cached, &movies); err == nil {
				return movies, nil
			}
			c.logger.WithField("key", cacheKey).Warn("Ignoring undecodable cached search result")
		}
	}

	entries, err := svc.FindIMDB(ctx, query)
	if err != nil {
		return nil, err
	}

	movies := make([]provider.Movie, 0, len(entries))
	for _, entry := range entries {
		imdbID, err := parseImdbID(entry.ID)
		if err != nil {
			return nil, err
		}
		movies = append(movies, provider.Movie{
			Title:  entry.Title,
			Year:   entry.Year,
			ImdbID: imdbID,
			TmdbID: -1,
		})
	}

	if c.cache != nil {
		if data, err := json.Marshal(movies); err == nil {
			c.cache.Set(cacheKey, data)
		}
	}
	return movies, nil
}

// parseImdbID strips the two character "tt" prefix and parses the number.
func parseImdbID(id string) (int, error) {
	if len(id) <= 2 {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidImdb, id)
	}
	n, err := strconv.Atoi(id[2:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidImdb, id)
	}
	return n, nil
}
