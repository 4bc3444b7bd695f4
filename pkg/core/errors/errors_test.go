package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckError(t *testing.T) {
	assert.NoError(t, CheckError("logOut", nil))

	empty := ""
	assert.NoError(t, CheckError("logOut", &empty))

	msg := "invalid session"
	err := CheckError("searchSubtitles4", &msg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Response indicates error: invalid session")
	assert.True(t, errors.Is(err, ErrServiceResponse))

	var serviceErr *ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, "searchSubtitles4", serviceErr.Op)
	assert.Equal(t, "invalid session", serviceErr.Message)
}

func TestLanguageError(t *testing.T) {
	err := fmt.Errorf("lookup failed: %w", &LanguageError{Name: "Klingon"})
	assert.EqualError(t, err, "lookup failed: Illegal language: Klingon")
	assert.True(t, errors.Is(err, ErrIllegalLanguage))
	assert.False(t, errors.Is(err, ErrServiceResponse))
}
