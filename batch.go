package sublight

import (
	"context"
	"sync"

	"github.com/angelospk/sublight-go/pkg/core/metrics"
	"github.com/angelospk/sublight-go/pkg/core/provider"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds the remote lookups of a batch.
const maxConcurrentLookups = 10

// SubtitleListByFiles looks up subtitles for every file by its video hash.
//
// Hashes are computed one file at a time; a file that cannot be hashed is
// logged and maps to an empty list. Lookups run concurrently, at most
// min(len(files), 10) at once. The first failing lookup cancels the others
// and fails the batch. Cancelling ctx stops dispatching further lookups.
func (c *Client) SubtitleListByFiles(ctx context.Context, files []string, languageName string) (map[string][]provider.SubtitleDescriptor, error) {
	results := make(map[string][]provider.SubtitleDescriptor, len(files))
	if len(files) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(len(files), maxConcurrentLookups))

	var mu sync.Mutex
	for _, file := range files {
		file := file
		if gctx.Err() != nil {
			break
		}

		videoHash, err := c.hasher.Hash(file)
		if err != nil {
			c.logger.WithError(err).WithField("file", file).Warn("Failed to compute video hash")
			metrics.BatchFilesTotal.WithLabelValues("hash_failed").Inc()
			mu.Lock()
			results[file] = []provider.SubtitleDescriptor{}
			mu.Unlock()
			continue
		}
		metrics.BatchFilesTotal.WithLabelValues("hashed").Inc()

		g.Go(func() error {
			subtitles, err := c.SubtitleListByHash(gctx, videoHash, languageName)
			if err != nil {
				return err
			}
			mu.Lock()
			results[file] = subtitles
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
