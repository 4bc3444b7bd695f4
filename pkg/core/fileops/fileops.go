package fileops

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"path"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
)

var subtitleExtensions = map[string]bool{
	".srt": true, ".sub": true, ".ssa": true, ".ass": true, ".smi": true, ".txt": true, ".mpl": true,
}

// ProbeDuration reads the container duration of a video with ffprobe.
func ProbeDuration(filePath string) (time.Duration, error) {
	cmdPath, err := exec.LookPath("ffprobe")
	if err != nil {
		return 0, err
	}
	cmd := exec.Command(cmdPath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for '%s': %w", filePath, err)
	}
	return parseProbeDuration(output)
}

func parseProbeDuration(output []byte) (time.Duration, error) {
	var probeResult struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &probeResult); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if probeResult.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}
	seconds, err := strconv.ParseFloat(probeResult.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", probeResult.Format.Duration, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// SubtitleFile is a subtitle extracted from an archive.
type SubtitleFile struct {
	Name string
	Data []byte
}

// ExtractSubtitles returns every subtitle file contained in a ZIP archive.
func ExtractSubtitles(archive []byte) ([]SubtitleFile, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle archive: %w", err)
	}

	var files []SubtitleFile
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Base(f.Name)
		if !subtitleExtensions[strings.ToLower(path.Ext(name))] {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry '%s': %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive entry '%s': %w", f.Name, err)
		}
		files = append(files, SubtitleFile{Name: name, Data: data})
	}

	if len(files) == 0 {
		return nil, apperrors.ErrNoSubtitle
	}
	return files, nil
}
