package sublight

import (
	"context"
	"fmt"

	"github.com/angelospk/sublight-go/internal/constants"
	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
	log "github.com/sirupsen/logrus"
)

// PublishRequest describes a subtitle upload.
type PublishRequest struct {
	ImdbID       int
	VideoHash    string
	LanguageName string
	ReleaseName  string
	Data         []byte
}

// PublishSubtitle uploads a subtitle and links it to the video hash.
// It returns the id the service assigned to the subtitle.
func (c *Client) PublishSubtitle(ctx context.Context, req PublishRequest) (string, error) {
	language, err := SubtitleLanguageFor(req.LanguageName)
	if err != nil {
		return "", err
	}

	session, svc, err := c.ensureSession(ctx)
	if err != nil {
		return "", err
	}

	subtitle := Subtitle{
		IMDB:     fmt.Sprintf(constants.ImdbTitleURLFormat, req.ImdbID),
		Language: language,
		Release:  req.ReleaseName,
	}

	subtitleID, err := svc.PublishSubtitle(ctx, session, subtitle, req.Data)
	if err != nil {
		return "", err
	}

	if err := svc.AddHashLink(ctx, session, subtitleID, req.VideoHash); err != nil {
		return "", err
	}

	c.logger.WithFields(log.Fields{"subtitle": subtitleID, "imdb": req.ImdbID, "hash": req.VideoHash}).Info("Subtitle published")
	return subtitleID, nil
}

// PublishSubtitleFiles is not supported by this client. It never contacts the service.
func (c *Client) PublishSubtitleFiles(ctx context.Context, imdbID int, languageName string, videoFile, subtitleFile string) (bool, error) {
	return false, apperrors.ErrUnsupported
}
