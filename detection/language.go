package detection

import (
	"strings"
	"unicode"

	"go-healthai/types"
)

// pidginMarkers are whole words that rarely appear in English text.
var pidginMarkers = map[string]bool{
	"wetin":  true,
	"dey":    true,
	"na":     true,
	"abeg":   true,
	"pikin":  true,
	"oga":    true,
	"una":    true,
	"comot":  true,
	"sabi":   true,
	"wahala": true,
	"wey":    true,
	"belle":  true,
	"sef":    true,
	"abi":    true,
}

// DetectLanguage resolves the reply language. An explicit english or pidgin
// request wins; auto (or empty) falls back to a Pidgin marker heuristic.
func DetectLanguage(text string, requested types.Language) types.Language {
	switch requested {
	case types.LanguageEnglish, types.LanguagePidgin:
		return requested
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if pidginMarkers[w] {
			return types.LanguagePidgin
		}
	}
	return types.LanguageEnglish
}
