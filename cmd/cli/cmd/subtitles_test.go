package cmd_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
	"github.com/angelospk/sublight-go/pkg/core/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubtitlesCommand_Query(t *testing.T) {
	client := newMockClient()
	client.On("SubtitleList", mock.Anything, provider.Movie{Title: "Avatar", Year: 2009, TmdbID: -1}, "Slovenian").
		Return([]provider.SubtitleDescriptor{
			stubDescriptor{name: "Avatar.2009.720p.BluRay.x264", language: "Slovenian", typ: "srt"},
		}, nil).Once()

	output, err := executeCommand(t, client, "subtitles", "--query", "Avatar", "--year", "2009", "--lang", "sl")
	require.NoError(t, err)
	assert.Contains(t, output, "Found 1 subtitles for Avatar (2009):")
	assert.Contains(t, output, "Avatar.2009.720p.BluRay.x264")
	client.AssertExpectations(t)
}

func TestSubtitlesCommand_File(t *testing.T) {
	client := newMockClient()
	client.On("SubtitleList", mock.Anything, mock.MatchedBy(func(m provider.Movie) bool {
		return m.Title == "Avatar" && m.Year == 2009
	}), "").Return([]provider.SubtitleDescriptor{}, nil).Once()

	output, err := executeCommand(t, client, "subtitles", "--file", "/videos/Avatar.2009.720p.BluRay.x264.mkv")
	require.NoError(t, err)
	assert.Contains(t, output, "No subtitles found for Avatar (2009).")
	client.AssertExpectations(t)
}

func TestSubtitlesCommand_Fail_NoMovie(t *testing.T) {
	client := newMockClient()
	_, err := executeCommand(t, client, "subtitles", "--lang", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one of --query or --file must be provided")
}

func TestSubtitlesCommand_Fail_IllegalLanguage(t *testing.T) {
	client := newMockClient()
	_, err := executeCommand(t, client, "subtitles", "--query", "Avatar", "--lang", "Klingon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrIllegalLanguage))
	client.AssertNotCalled(t, "SubtitleList", mock.Anything, mock.Anything, mock.Anything)
}

func TestLookupCommand_MissingOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mkv", "a.srt", "b.mkv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	b := filepath.Join(dir, "b.mkv")

	client := newMockClient()
	client.On("SubtitleListByFiles", mock.Anything, []string{b}, "English").
		Return(map[string][]provider.SubtitleDescriptor{
			b: {stubDescriptor{name: "B.Release", language: "English", typ: "srt"}},
		}, nil).Once()

	output, err := executeCommand(t, client, "lookup", "--dir", dir, "--missing-only", "--lang", "en")
	require.NoError(t, err)
	assert.Contains(t, output, "b.mkv")
	assert.Contains(t, output, "B.Release")
	assert.NotContains(t, output, "a.mkv")
	client.AssertExpectations(t)
}

func TestLookupCommand_NoSubtitles(t *testing.T) {
	client := newMockClient()
	client.On("SubtitleListByFiles", mock.Anything, []string{"/videos/clip.mp4"}, "").
		Return(map[string][]provider.SubtitleDescriptor{"/videos/clip.mp4": {}}, nil).Once()

	output, err := executeCommand(t, client, "lookup", "/videos/clip.mp4", "/videos/readme.txt")
	require.NoError(t, err)
	assert.Contains(t, output, "clip.mp4")
	client.AssertExpectations(t)
}

func TestLookupCommand_Fail_NoVideos(t *testing.T) {
	client := newMockClient()
	_, err := executeCommand(t, client, "lookup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no video files to look up")
}
