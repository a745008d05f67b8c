package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// GitHub text length limits
	// https://docs.github.com/en/rest/pulls/pulls?apiVersion=2022-11-28
	MaxPRTitleLength       = 256   // Pull request title
	MaxPRDescriptionLength = 65536 // Pull request body (64KB)
	MaxCommentLength       = 65536 // Comment body (64KB)

	// TruncateSuffix marks truncated text
	TruncateSuffix = "... [truncated]"
)

// TruncateText truncates text to the given maximum rune length
func TruncateText(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	availableLength := maxLength - utf8.RuneCountInString(TruncateSuffix)
	if availableLength <= 0 {
		runes := []rune(text)
		return string(runes[:maxLength])
	}

	runes := []rune(text)
	return string(runes[:availableLength]) + TruncateSuffix
}

// SanitizeBody escapes control characters so the payload stays valid in API
// request bodies. Newlines and tabs are kept. The output contains no control
// characters, so applying SanitizeBody to already-sanitized text is a no-op;
// bodies never get double-escaped on rerun.
func SanitizeBody(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			b.WriteString(fmt.Sprintf("\\u%04x", r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
