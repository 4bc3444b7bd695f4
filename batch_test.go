package sublight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkedResult(id string) *SearchSubtitlesResult {
	return &SearchSubtitlesResult{
		Subtitles: []Subtitle{{SubtitleID: id, Title: id, Language: English, SubtitleType: SubtitleTypeSrt, IsLinked: true}},
	}
}

func TestSubtitleListByFiles(t *testing.T) {
	svc := newFakeService()
	svc.searchSubtitles = func(req SearchSubtitlesRequest) (*SearchSubtitlesResult, error) {
		return linkedResult(req.VideoHashes[0]), nil
	}
	client := newTestClient(t, svc)

	files := []string{"a.mkv", "b.mkv", "c.avi"}
	results, err := client.SubtitleListByFiles(context.Background(), files, "English")
	require.NoError(t, err)
	require.Len(t, results, len(files))

	for _, f := range files {
		require.Len(t, results[f], 1, f)
		assert.Equal(t, "hash-"+f, results[f][0].Name())
	}
}

func TestSubtitleListByFiles_Empty(t *testing.T) {
	client := newTestClient(t, newFakeService())

	results, err := client.SubtitleListByFiles(context.Background(), nil, "")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSubtitleListByFiles_HashFailure(t *testing.T) {
	svc := newFakeService()
	svc.searchSubtitles = func(req SearchSubtitlesRequest) (*SearchSubtitlesResult, error) {
		return linkedResult(req.VideoHashes[0]), nil
	}
	client := newTestClient(t, svc, func(c *Config) {
		c.Hasher = hasherFunc(func(p string) (string, error) {
			if strings.HasPrefix(p, "bad") {
				return "", errors.New("permission denied")
			}
			return "hash-" + p, nil
		})
	})

	files := []string{"good.mkv", "bad.mkv"}
	results, err := client.SubtitleListByFiles(context.Background(), files, "")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Len(t, results["good.mkv"], 1)
	bad, ok := results["bad.mkv"]
	require.True(t, ok, "a file that cannot be hashed still has an entry")
	assert.NotNil(t, bad)
	assert.Empty(t, bad)

	_, _, searches := svc.counts()
	assert.Equal(t, 1, searches)
}

func TestSubtitleListByFiles_ConcurrencyBound(t *testing.T) {
	var inFlight, maxInFlight int32
	svc := newFakeService()
	svc.searchSubtitles = func(req SearchSubtitlesRequest) (*SearchSubtitlesResult, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return linkedResult(req.VideoHashes[0]), nil
	}
	client := newTestClient(t, svc)

	files := make([]string, 25)
	for i := range files {
		files[i] = fmt.Sprintf("episode-%02d.mkv", i)
	}

	results, err := client.SubtitleListByFiles(context.Background(), files, "")
	require.NoError(t, err)
	assert.Len(t, results, 25)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(maxConcurrentLookups))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(1))
}

func TestSubtitleListByFiles_SmallBatchBound(t *testing.T) {
	var inFlight, maxInFlight int32
	svc := newFakeService()
	svc.searchSubtitles = func(req SearchSubtitlesRequest) (*SearchSubtitlesResult, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return linkedResult(req.VideoHashes[0]), nil
	}
	client := newTestClient(t, svc)

	_, err := client.SubtitleListByFiles(context.Background(), []string{"a.mkv", "b.mkv", "c.mkv"}, "")
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(3))
}

func TestSubtitleListByFiles_RemoteError(t *testing.T) {
	svc := newFakeService()
	svc.searchSubtitles = func(req SearchSubtitlesRequest) (*SearchSubtitlesResult, error) {
		if req.VideoHashes[0] == "hash-b.mkv" {
			return nil, &apperrors.ServiceError{Op: "SearchSubtitles4", Message: "invalid session"}
		}
		return linkedResult(req.VideoHashes[0]), nil
	}
	client := newTestClient(t, svc)

	results, err := client.SubtitleListByFiles(context.Background(), []string{"a.mkv", "b.mkv", "c.mkv"}, "")
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, apperrors.ErrServiceResponse))
}

func TestSubtitleListByFiles_Cancelled(t *testing.T) {
	var hashed int32
	svc := newFakeService()
	client := newTestClient(t, svc, func(c *Config) {
		c.Hasher = hasherFunc(func(p string) (string, error) {
			atomic.AddInt32(&hashed, 1)
			return "hash-" + p, nil
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := client.SubtitleListByFiles(ctx, []string{"a.mkv", "b.mkv"}, "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
	assert.Zero(t, atomic.LoadInt32(&hashed))
}
