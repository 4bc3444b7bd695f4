package fileops

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	// sublightHashChunkSize is the amount of leading file content fed to MD5.
	sublightHashChunkSize = 5 * 1024 * 1024
)

// DurationProbe reports the play length of a video file.
type DurationProbe func(filePath string) (time.Duration, error)

// VideoHasher computes Sublight video hashes.
type VideoHasher struct {
	probe DurationProbe
}

// NewVideoHasher creates a hasher that reads durations with probe.
// A nil probe falls back to ffprobe.
func NewVideoHasher(probe DurationProbe) *VideoHasher {
	if probe == nil {
		probe = ProbeDuration
	}
	return &VideoHasher{probe: probe}
}

// Hash computes the Sublight video hash of the file at filePath.
func (h *VideoHasher) Hash(filePath string) (string, error) {
	duration, err := h.probe(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read duration of '%s': %w", filePath, err)
	}
	return CalculateSublightHash(filePath, duration)
}

// CalculateSublightHash calculates the Sublight hash for a video of the given duration.
//
// Layout (26 bytes, hex encoded):
//
//	1 byte   reserved, always 0
//	2 bytes  duration in seconds, big endian
//	6 bytes  file size in bytes, big endian
//	16 bytes MD5 of the first 5 MB
//	1 byte   sum of the previous 25 bytes modulo 256
func CalculateSublightHash(filePath string, duration time.Duration) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for Sublight hashing '%s': %w", filePath, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat file '%s': %w", filePath, err)
	}

	buf := make([]byte, 0, 26)
	buf = append(buf, 0)

	var seconds [4]byte
	binary.BigEndian.PutUint32(seconds[:], uint32(duration/time.Second))
	buf = append(buf, seconds[2:]...)

	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(stat.Size()))
	buf = append(buf, size[2:]...)

	digest := md5.New()
	if _, err := io.CopyN(digest, file, sublightHashChunkSize); err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read head chunk from '%s': %w", filePath, err)
	}
	buf = digest.Sum(buf)

	var sum byte
	for _, b := range buf {
		sum += b
	}
	buf = append(buf, sum)

	return hex.EncodeToString(buf), nil
}
