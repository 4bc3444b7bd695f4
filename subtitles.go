package sublight

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
	"github.com/angelospk/sublight-go/pkg/core/provider"
	log "github.com/sirupsen/logrus"
)

// Descriptor is a subtitle offered by Sublight.
type Descriptor struct {
	Subtitle Subtitle
	client   *Client
}

var _ provider.SubtitleDescriptor = (*Descriptor)(nil)

// Name returns the release name, or the title when the release is unknown.
func (d *Descriptor) Name() string {
	if d.Subtitle.Release != "" {
		return d.Subtitle.Release
	}
	return d.Subtitle.Title
}

// LanguageName returns the display name of the subtitle language.
func (d *Descriptor) LanguageName() string {
	return LanguageName(d.Subtitle.Language)
}

// Type returns the lowercase subtitle format, usable as a file extension.
func (d *Descriptor) Type() string {
	return strings.ToLower(string(d.Subtitle.SubtitleType))
}

// ReleaseName returns the release the subtitle is synchronised to.
func (d *Descriptor) ReleaseName() string {
	return d.Subtitle.Release
}

// Fetch downloads the subtitle archive.
func (d *Descriptor) Fetch(ctx context.Context) ([]byte, error) {
	return d.client.ZipArchive(ctx, d.Subtitle)
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s [%s]", d.Name(), d.LanguageName())
}

func (c *Client) descriptors(subtitles []Subtitle) []provider.SubtitleDescriptor {
	list := make([]provider.SubtitleDescriptor, 0, len(subtitles))
	for _, s := range subtitles {
		list = append(list, &Descriptor{Subtitle: s, client: c})
	}
	return list
}

// SubtitleList searches subtitles by the title and year of a movie.
// An empty languageName searches all languages.
func (c *Client) SubtitleList(ctx context.Context, result provider.SearchResult, languageName string) ([]provider.SubtitleDescriptor, error) {
	var movie provider.Movie
	switch m := result.(type) {
	case provider.Movie:
		movie = m
	case *provider.Movie:
		movie = *m
	default:
		return nil, fmt.Errorf("%w: unsupported search result %T", apperrors.ErrInvalidInput, result)
	}

	var year *int
	if movie.Year > 0 {
		year = &movie.Year
	}

	subtitles, err := c.subtitleList(ctx, "", movie.Title, year, languageName)
	if err != nil {
		return nil, err
	}
	return c.descriptors(subtitles), nil
}

// SubtitleListByHash returns the subtitles linked to a video hash.
func (c *Client) SubtitleListByHash(ctx context.Context, videoHash, languageName string) ([]provider.SubtitleDescriptor, error) {
	subtitles, err := c.subtitleList(ctx, videoHash, "", nil, languageName)
	if err != nil {
		return nil, err
	}

	linked := subtitles[:0]
	for _, s := range subtitles {
		if s.IsLinked {
			linked = append(linked, s)
		}
	}
	return c.descriptors(linked), nil
}

// subtitleList runs a subtitle search and attaches release names to the results.
func (c *Client) subtitleList(ctx context.Context, videoHash, name string, year *int, languageName string) ([]Subtitle, error) {
	languages := Languages()
	if languageName != "" {
		language, err := SubtitleLanguageFor(languageName)
		if err != nil {
			return nil, err
		}
		languages = []SubtitleLanguage{language}
	}

	var hashes []string
	if videoHash != "" {
		hashes = []string{videoHash}
	}

	session, svc, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	result, err := svc.SearchSubtitles(ctx, SearchSubtitlesRequest{
		Session:     session,
		VideoHashes: hashes,
		Title:       name,
		Year:        year,
		Languages:   languages,
		Genres:      Genres(),
	})
	if err != nil {
		return nil, err
	}
	if result == nil || result.Subtitles == nil {
		return []Subtitle{}, nil
	}

	releaseNames := make(map[string]string, len(result.Releases))
	for _, r := range result.Releases {
		releaseNames[r.SubtitleID] = r.Name
	}

	subtitles := make([]Subtitle, len(result.Subtitles))
	for i, s := range result.Subtitles {
		if release, ok := releaseNames[s.SubtitleID]; ok {
			s.Release = release
		}
		subtitles[i] = s
	}
	return subtitles, nil
}

// ZipArchive downloads the archive of a subtitle. It asks for a download
// ticket, waits as long as the ticket demands and then downloads. Only one
// download runs at a time per client and the session is not closed for
// inactivity while it runs.
func (c *Client) ZipArchive(ctx context.Context, subtitle Subtitle) ([]byte, error) {
	c.downloadMu.Lock()
	defer c.downloadMu.Unlock()

	cacheKey := "zip:" + subtitle.SubtitleID
	if c.cache != nil {
		if data, ok := c.cache.Get(cacheKey); ok {
			return data, nil
		}
	}

	session, svc, release, err := c.holdSession(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	ticket, err := svc.GetDownloadTicket(ctx, session, subtitle.SubtitleID)
	if err != nil {
		return nil, err
	}

	wait := time.Duration(ticket.Que) * time.Second
	if wait > c.maxTicketWait {
		return nil, fmt.Errorf("%w: %s > %s", apperrors.ErrTicketWaitTooLong, wait, c.maxTicketWait)
	}
	if wait > 0 {
		c.logger.WithFields(log.Fields{"subtitle": subtitle.SubtitleID, "wait": wait}).Info("Waiting for download ticket")
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	data, err := svc.DownloadByID(ctx, session, subtitle.SubtitleID, ticket.Ticket)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, data)
	}
	return data, nil
}
