package fileops

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestCalculateSublightHash(t *testing.T) {
	content := []byte(strings.Repeat("sublight", 1000))
	path := writeTempFile(t, "movie.avi", content)

	hash, err := CalculateSublightHash(path, 5400*time.Second+300*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, hash, 52)

	raw, err := hex.DecodeString(hash)
	require.NoError(t, err)

	assert.Equal(t, byte(0), raw[0])
	// 5400 seconds = 0x1518
	assert.Equal(t, []byte{0x15, 0x18}, raw[1:3])
	// 8000 bytes = 0x1f40
	assert.Equal(t, []byte{0, 0, 0, 0, 0x1f, 0x40}, raw[3:9])

	digest := md5.Sum(content)
	assert.Equal(t, digest[:], raw[9:25])

	var sum byte
	for _, b := range raw[:25] {
		sum += b
	}
	assert.Equal(t, sum, raw[25])
}

func TestCalculateSublightHash_OnlyHeadChunkIsHashed(t *testing.T) {
	head := make([]byte, sublightHashChunkSize)
	a := writeTempFile(t, "a.mkv", append(append([]byte{}, head...), 'a'))
	b := writeTempFile(t, "b.mkv", append(append([]byte{}, head...), 'b'))

	hashA, err := CalculateSublightHash(a, time.Minute)
	require.NoError(t, err)
	hashB, err := CalculateSublightHash(b, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB)
}

func TestCalculateSublightHash_MissingFile(t *testing.T) {
	_, err := CalculateSublightHash(filepath.Join(t.TempDir(), "missing.mkv"), time.Minute)
	assert.Error(t, err)
}

func TestVideoHasher(t *testing.T) {
	path := writeTempFile(t, "movie.mkv", []byte("video"))

	hasher := NewVideoHasher(func(string) (time.Duration, error) { return 90 * time.Second, nil })
	hash, err := hasher.Hash(path)
	require.NoError(t, err)

	expected, err := CalculateSublightHash(path, 90*time.Second)
	require.NoError(t, err)
	assert.Equal(t, expected, hash)

	failing := NewVideoHasher(func(string) (time.Duration, error) { return 0, errors.New("no ffprobe") })
	_, err = failing.Hash(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ffprobe")
}
