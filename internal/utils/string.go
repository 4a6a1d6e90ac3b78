package utils

import (
	"regexp"
	"strings"
)

// PreviewMaxLength caps the derived list-view preview of an email body.
const PreviewMaxLength = 200

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// GeneratePreview derives the preview shown in list views from an email body:
// HTML tags stripped, whitespace collapsed, truncated to PreviewMaxLength.
// The preview is computed once at creation and never edited independently.
func GeneratePreview(body string) string {
	if body == "" {
		return ""
	}

	plain := htmlTagRegex.ReplaceAllString(body, "")
	plain = whitespaceRegex.ReplaceAllString(plain, " ")
	plain = strings.TrimSpace(plain)

	runes := []rune(plain)
	if len(runes) > PreviewMaxLength {
		return string(runes[:PreviewMaxLength])
	}
	return plain
}
