package sublight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelospk/sublight-go/pkg/core/cache"
	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
	"github.com/angelospk/sublight-go/pkg/core/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	svc := newFakeService()
	var queries []string
	svc.findIMDB = func(query string) ([]IMDB, error) {
		queries = append(queries, query)
		return []IMDB{
			{ID: "tt0499549", Title: "Avatar", Year: 2009},
			{ID: "tt1630029", Title: "Avatar: The Way of Water", Year: 2022},
		}, nil
	}
	client := newTestClient(t, svc)

	results, err := client.Search(context.Background(), "Avatar")
	require.NoError(t, err)
	require.Len(t, results, 2)

	first, ok := results[0].(provider.Movie)
	require.True(t, ok)
	assert.Equal(t, provider.Movie{Title: "Avatar", Year: 2009, ImdbID: 499549, TmdbID: -1}, first)
	assert.Equal(t, "Avatar (2009)", first.Name())
	assert.Equal(t, []string{"Avatar"}, queries)

	logins, _, _ := svc.counts()
	assert.Equal(t, 1, logins)
}

func TestSearch_ServiceError(t *testing.T) {
	svc := newFakeService()
	svc.findIMDB = func(string) ([]IMDB, error) {
		return nil, &apperrors.ServiceError{Op: "FindIMDB", Message: "invalid session"}
	}
	client := newTestClient(t, svc)

	results, err := client.Search(context.Background(), "Avatar")
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "invalid session")
}

func TestSearch_InvalidImdbID(t *testing.T) {
	svc := newFakeService()
	svc.findIMDB = func(string) ([]IMDB, error) {
		return []IMDB{{ID: "ttabc", Title: "Broken"}}, nil
	}
	client := newTestClient(t, svc)

	_, err := client.Search(context.Background(), "Broken")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidImdb))
}

func TestSearch_UsesCache(t *testing.T) {
	c, err := cache.New("memory", cache.ProviderConfig{Size: 10, TTL: time.Minute})
	require.NoError(t, err)

	calls := 0
	svc := newFakeService()
	svc.findIMDB = func(string) ([]IMDB, error) {
		calls++
		return []IMDB{{ID: "tt0499549", Title: "Avatar", Year: 2009}}, nil
	}
	client := newTestClient(t, svc, func(cfg *Config) { cfg.Cache = c })

	first, err := client.SearchMovies(context.Background(), "Avatar")
	require.NoError(t, err)
	second, err := client.SearchMovies(context.Background(), "  avatar ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestSearch_TrimsQuery(t *testing.T) {
	var got string
	svc := newFakeService()
	svc.findIMDB = func(query string) ([]IMDB, error) {
		got = query
		return nil, nil
	}
	client := newTestClient(t, svc)

	_, err := client.SearchMovies(context.Background(), "  Avatar \n")
	require.NoError(t, err)
	assert.Equal(t, "Avatar", got)
}

func TestSearch_CacheHitKeepsSessionAlive(t *testing.T) {
	c, err := cache.New("memory", cache.ProviderConfig{Size: 10, TTL: time.Minute})
	require.NoError(t, err)

	svc := newFakeService()
	svc.findIMDB = func(string) ([]IMDB, error) {
		return []IMDB{{ID: "tt0499549", Title: "Avatar", Year: 2009}}, nil
	}
	client := newTestClient(t, svc, func(cfg *Config) {
		cfg.Cache = c
		cfg.IdleTimeout = 200 * time.Millisecond
	})

	_, err = client.SearchMovies(context.Background(), "Avatar")
	require.NoError(t, err)

	time.Sleep(120 * time.Millisecond)
	_, err = client.SearchMovies(context.Background(), "Avatar")
	require.NoError(t, err)

	// Past the first deadline, but the cached call pushed it forward.
	time.Sleep(120 * time.Millisecond)
	assert.True(t, client.IsLoggedIn())

	logins, logouts, _ := svc.counts()
	assert.Equal(t, 1, logins)
	assert.Equal(t, 0, logouts)
}

func TestParseImdbID(t *testing.T) {
	id, err := parseImdbID("tt0499549")
	require.NoError(t, err)
	assert.Equal(t, 499549, id)

	_, err = parseImdbID("tt")
	assert.Error(t, err)
}

func TestProviderIdentity(t *testing.T) {
	client := newTestClient(t, newFakeService())
	assert.Equal(t, "Sublight", client.Name())
	assert.Equal(t, "http://www.sublight.si", client.Link())
	assert.Equal(t, "http://www.sublight.si/SearchSubtitles.aspx", client.SubtitleListLink(provider.Movie{}, "English"))
}
