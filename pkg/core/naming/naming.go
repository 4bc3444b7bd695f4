package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/angelospk/sublight-go/pkg/core/provider"
)

// SubtitleNaming decides the file name for a downloaded subtitle.
type SubtitleNaming int

const (
	// Original keeps the subtitle's own name.
	Original SubtitleNaming = iota
	// MatchVideo names the subtitle after the video.
	MatchVideo
	// MatchVideoAddLanguageTag names the subtitle after the video and adds the language.
	MatchVideoAddLanguageTag
)

var labels = map[SubtitleNaming]string{
	Original:                 "Keep Original",
	MatchVideo:               "Match Video",
	MatchVideoAddLanguageTag: "By Video/Language",
}

var keys = map[string]SubtitleNaming{
	"original":             Original,
	"keep-original":        Original,
	"match-video":          MatchVideo,
	"match-video-language": MatchVideoAddLanguageTag,
	"by-video-language":    MatchVideoAddLanguageTag,
}

// Values returns every naming policy in declaration order.
func Values() []SubtitleNaming {
	return []SubtitleNaming{Original, MatchVideo, MatchVideoAddLanguageTag}
}

// String returns the human readable label.
func (n SubtitleNaming) String() string {
	if l, ok := labels[n]; ok {
		return l
	}
	return fmt.Sprintf("SubtitleNaming(%d)", int(n))
}

// Format derives the output file name for subtitle when saved next to video.
func (n SubtitleNaming) Format(video string, subtitle provider.SubtitleDescriptor) string {
	switch n {
	case MatchVideo:
		return FormatSubtitle(nameWithoutExtension(video), "", subtitle.Type())
	case MatchVideoAddLanguageTag:
		return FormatSubtitle(nameWithoutExtension(video), subtitle.LanguageName(), subtitle.Type())
	case Original:
		return fmt.Sprintf("%s.%s", nameWithoutExtension(video), subtitle.Type())
	}
	// Unknown values name like Original.
	return Original.Format(video, subtitle)
}

// Parse accepts either a label ("Match Video") or a key ("match-video").
func Parse(s string) (SubtitleNaming, error) {
	s = strings.TrimSpace(s)
	if n, ok := keys[strings.ToLower(s)]; ok {
		return n, nil
	}
	for n, l := range labels {
		if strings.EqualFold(l, s) {
			return n, nil
		}
	}
	return Original, fmt.Errorf("unknown subtitle naming %q", s)
}

// FormatSubtitle builds name[.language][.type] and strips characters that are
// not allowed in file names. Empty parts are skipped.
func FormatSubtitle(name, languageName, subtitleType string) string {
	var sb strings.Builder
	sb.WriteString(name)
	if languageName != "" {
		sb.WriteByte('.')
		sb.WriteString(languageName)
	}
	if subtitleType != "" {
		sb.WriteByte('.')
		sb.WriteString(subtitleType)
	}
	return ValidateFileName(sb.String())
}

var illegalCharacters = regexp.MustCompile(`[\\/:*?"<>|\r\n]`)

// ValidateFileName removes illegal characters as well as any mix of trailing
// spaces and dots. A name made only of dots and spaces keeps its dots.
func ValidateFileName(name string) string {
	name = illegalCharacters.ReplaceAllString(name, "")
	if trimmed := strings.TrimRight(name, " ."); trimmed != "" {
		return trimmed
	}
	return strings.TrimRight(name, " ")
}

// nameWithoutExtension returns the base name of path without its last extension.
func nameWithoutExtension(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}
