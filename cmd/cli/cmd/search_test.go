package cmd_test

import (
	"testing"

	"github.com/angelospk/sublight-go/pkg/core/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchCommand_Success(t *testing.T) {
	client := newMockClient()
	client.On("SearchMovies", mock.Anything, "The Matrix").Return([]provider.Movie{
		{Title: "The Matrix", Year: 1999, ImdbID: 133093, TmdbID: -1},
		{Title: "The Matrix Reloaded", Year: 2003, ImdbID: 234215, TmdbID: -1},
	}, nil).Once()

	output, err := executeCommand(t, client, "search", "The", "Matrix")
	require.NoError(t, err)
	assert.Contains(t, output, "Found 2 movies:")
	assert.Contains(t, output, "tt0133093")
	assert.Contains(t, output, "The Matrix Reloaded")
	assert.Contains(t, output, "2003")
	client.AssertExpectations(t)
}

func TestSearchCommand_NoResults(t *testing.T) {
	client := newMockClient()
	client.On("SearchMovies", mock.Anything, "zzzz").Return([]provider.Movie{}, nil).Once()

	output, err := executeCommand(t, client, "search", "zzzz")
	require.NoError(t, err)
	assert.Contains(t, output, "No movies found")
}

func TestSearchCommand_Fail_NoQuery(t *testing.T) {
	client := newMockClient()
	_, err := executeCommand(t, client, "search")
	assert.Error(t, err)
	client.AssertNotCalled(t, "SearchMovies", mock.Anything, mock.Anything)
}

func TestSearchCommand_Fail_APIError(t *testing.T) {
	client := newMockClient()
	client.On("SearchMovies", mock.Anything, "Avatar").Return(nil, assert.AnError).Once()

	_, err := executeCommand(t, client, "search", "Avatar")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError, "Expected the underlying API error to be wrapped")
	assert.Contains(t, err.Error(), "movie search failed:")
}
