package sublight

import (
	"strings"

	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
)

// languageAliases maps common language names onto the regional variant the
// service uses. The mapping is applied in both directions.
var languageAliases = map[string]SubtitleLanguage{
	"Brazilian": PortugueseBrazil,
	"Bosnian":   BosnianLatin,
	"Serbian":   SerbianLatin,
}

// SubtitleLanguageFor returns the service language for a language name.
// Enum values are matched case-insensitively before aliases.
func SubtitleLanguageFor(languageName string) (SubtitleLanguage, error) {
	for _, language := range allLanguages {
		if strings.EqualFold(string(language), languageName) {
			return language, nil
		}
	}
	for alias, language := range languageAliases {
		if strings.EqualFold(alias, languageName) {
			return language, nil
		}
	}
	return "", &apperrors.LanguageError{Name: languageName}
}

// LanguageName returns the display name of a service language.
func LanguageName(language SubtitleLanguage) string {
	for alias, value := range languageAliases {
		if value == language {
			return alias
		}
	}
	return string(language)
}
