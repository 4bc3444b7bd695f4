// Package provider holds the abstractions shared by subtitle providers and
// the code that consumes them.
package provider

import (
	"context"
	"fmt"
)

// SearchResult is anything a provider search can return.
type SearchResult interface {
	Name() string
}

// Movie is a search result for a movie or show.
// TmdbID is -1 when unknown.
type Movie struct {
	Title  string
	Year   int
	ImdbID int
	TmdbID int
}

// Name returns the display name, e.g. "Avatar (2009)".
func (m Movie) Name() string {
	if m.Year > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, m.Year)
	}
	return m.Title
}

// SubtitleDescriptor describes a single downloadable subtitle.
type SubtitleDescriptor interface {
	Name() string
	LanguageName() string
	Type() string
	// Fetch returns the raw archive bytes of the subtitle.
	Fetch(ctx context.Context) ([]byte, error)
}

// SubtitleProvider searches and lists subtitles for movies.
type SubtitleProvider interface {
	Name() string
	Link() string
	Search(ctx context.Context, query string) ([]SearchResult, error)
	SubtitleList(ctx context.Context, result SearchResult, languageName string) ([]SubtitleDescriptor, error)
	SubtitleListLink(result SearchResult, languageName string) string
}

// VideoHashSubtitleService looks up and publishes subtitles by video content fingerprint.
type VideoHashSubtitleService interface {
	Name() string
	SubtitleListByFiles(ctx context.Context, files []string, languageName string) (map[string][]SubtitleDescriptor, error)
	PublishSubtitleFiles(ctx context.Context, imdbID int, languageName string, videoFile, subtitleFile string) (bool, error)
}
