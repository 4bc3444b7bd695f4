package cmd

import (
	"strings"

	sublight "github.com/angelospk/sublight-go"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// resolveLanguage turns the --lang flag into a Sublight language name. It
// accepts Sublight names ("Slovenian") as well as ISO codes ("sl", "pt-BR").
// An empty flag means all languages.
func resolveLanguage(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	if _, err := sublight.SubtitleLanguageFor(input); err == nil {
		return input, nil
	}

	tag, err := language.Parse(input)
	if err == nil {
		if tag == language.BrazilianPortuguese {
			return "Brazilian", nil
		}
		namer := display.English.Languages()
		for _, name := range []string{namer.Name(tag), baseName(namer, tag)} {
			if name == "" {
				continue
			}
			if _, err := sublight.SubtitleLanguageFor(name); err == nil {
				return name, nil
			}
		}
	}

	_, err = sublight.SubtitleLanguageFor(input)
	return "", err
}

func baseName(namer display.Namer, tag language.Tag) string {
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return namer.Name(base)
}
