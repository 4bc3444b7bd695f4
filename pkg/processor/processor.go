package processor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ProcessorInterface defines the methods for collecting files for batch lookups.
type ProcessorInterface interface {
	ScanDirectory(ctx context.Context, rootPath string, recursive bool) (*ScanDirectoryResult, error)
}

// Ensure Processor implements ProcessorInterface
var _ ProcessorInterface = (*Processor)(nil)

// Known video and subtitle extensions
var videoExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true,
	".mpg": true, ".mpeg": true, ".m4v": true, ".ts": true, ".divx": true, ".ogm": true,
}
var subtitleExtensions = map[string]bool{
	".srt": true, ".sub": true, ".ssa": true, ".ass": true, ".smi": true, ".txt": true, ".mpl": true,
}

// Processor scans directories for videos and the subtitles next to them.
type Processor struct {
	logger *log.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(logger *log.Logger) *Processor {
	if logger == nil {
		logger = log.New()
		logger.SetFormatter(&log.TextFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(log.InfoLevel)
	}
	return &Processor{logger: logger}
}

// ScanDirectoryResult holds the lists of video and subtitle files found.
type ScanDirectoryResult struct {
	VideoFiles    []string
	SubtitleFiles []string
}

// IsVideoFile reports whether the path has a known video extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanDirectory scans a directory for video and subtitle files. Subdirectories
// are only entered when recursive is set.
func (p *Processor) ScanDirectory(ctx context.Context, rootPath string, recursive bool) (*ScanDirectoryResult, error) {
	result := &ScanDirectoryResult{}

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			p.logger.Warnf("Error accessing path %q: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			p.logger.Info("Context cancelled during directory scan")
			return ctx.Err()
		}

		if d.IsDir() {
			if path != rootPath && !recursive {
				p.logger.Debugf("Skipping directory (not recursive): %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if videoExtensions[ext] {
			result.VideoFiles = append(result.VideoFiles, path)
		} else if subtitleExtensions[ext] {
			result.SubtitleFiles = append(result.SubtitleFiles, path)
		}
		return nil
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil && !errors.Is(err, filepath.SkipDir) {
		p.logger.Errorf("Error walking directory %q: %v", rootPath, err)
		return nil, err
	}

	p.logger.Infof("Scan complete. Found %d video files and %d subtitle files in %s (Recursive: %t)",
		len(result.VideoFiles), len(result.SubtitleFiles), rootPath, recursive)
	return result, nil
}

// VideosWithoutSubtitles returns the videos of the scan that have no
// matching subtitle file next to them.
func (r *ScanDirectoryResult) VideosWithoutSubtitles() []string {
	var missing []string
	for _, video := range r.VideoFiles {
		if FindMatchingSubtitle(video, r.SubtitleFiles) == "" {
			missing = append(missing, video)
		}
	}
	return missing
}

// FindMatchingSubtitle returns the first subtitle in the same directory whose
// name starts with the video's base name, or "" when there is none. Both
// "Movie.srt" and "Movie.English.srt" match "Movie.mkv".
func FindMatchingSubtitle(videoPath string, subtitlePaths []string) string {
	dir := filepath.Dir(videoPath)
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath)))
	for _, sub := range subtitlePaths {
		if filepath.Dir(sub) != dir {
			continue
		}
		name := strings.ToLower(strings.TrimSuffix(filepath.Base(sub), filepath.Ext(sub)))
		if name == base || strings.HasPrefix(name, base+".") {
			return sub
		}
	}
	return ""
}
