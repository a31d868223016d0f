package workflow

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeriveQuery turns a media file path into a search query: the extension is
// dropped, separator runs collapse to single spaces, and the result is
// title-cased. Returns "" when nothing usable remains.
func DeriveQuery(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	query := strings.TrimSpace(cleaned.String())
	if query == "" {
		return ""
	}
	return cases.Title(language.Und).String(query)
}
