package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/angelospk/sublight-go/pkg/core/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDownloadCommand(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "Movie.2020.mkv")
	require.NoError(t, os.WriteFile(video, []byte("x"), 0o644))

	archive := buildZip(t, map[string]string{"release/Movie.2020.srt": "1\n00:00:01,000 --> 00:00:02,000\nHello\n"})

	client := newMockClient()
	client.On("SubtitleListByFiles", mock.Anything, []string{video}, "English").
		Return(map[string][]provider.SubtitleDescriptor{
			video: {stubDescriptor{name: "Movie.2020.Release", language: "English", typ: "srt", archive: archive}},
		}, nil).Once()

	output, err := executeCommand(t, client, "download", video, "--lang", "English", "--naming", "match-video-language")
	require.NoError(t, err)

	saved := filepath.Join(dir, "Movie.2020.English.srt")
	assert.Contains(t, output, "Saved "+saved)
	assert.Contains(t, output, "Downloaded 1 of 1 subtitles.")

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello")
	client.AssertExpectations(t)
}

func TestDownloadCommand_FetchFailure(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "Movie.mkv")
	require.NoError(t, os.WriteFile(video, []byte("x"), 0o644))

	client := newMockClient()
	client.On("SubtitleListByFiles", mock.Anything, []string{video}, "").
		Return(map[string][]provider.SubtitleDescriptor{
			video: {stubDescriptor{name: "Movie", language: "English", typ: "srt", fetchErr: assert.AnError}},
		}, nil).Once()

	output, err := executeCommand(t, client, "download", video)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 subtitle downloads failed")
	assert.Contains(t, output, "Failed to download subtitle for Movie.mkv")

	_, statErr := os.Stat(filepath.Join(dir, "Movie.srt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloadCommand_Fail_UnknownNaming(t *testing.T) {
	client := newMockClient()
	_, err := executeCommand(t, client, "download", "movie.mkv", "--naming", "random")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown subtitle naming")
	client.AssertNotCalled(t, "SubtitleListByFiles", mock.Anything, mock.Anything, mock.Anything)
}
