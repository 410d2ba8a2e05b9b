package vault

import (
	"strings"

	"github.com/wasilibs/go-re2"
	"golang.org/x/text/unicode/norm"
)

// maxFilenameLen keeps names safely under common filesystem limits.
const maxFilenameLen = 200

var (
	forbiddenChars = re2.MustCompile(`[<>:"/\\|?*]`)
	controlChars   = re2.MustCompile(`[\x00-\x1f\x7f]`)
	whitespaceRuns = re2.MustCompile(`\s+`)
)

// sanitizeFilename turns an arbitrary topic into a safe filename segment:
// NFKC normalization, forbidden and control characters stripped, whitespace
// collapsed to underscores, length capped.
func sanitizeFilename(s string) string {
	s = norm.NFKC.String(s)
	s = forbiddenChars.ReplaceAllString(s, "")
	s = controlChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "._")

	if len(s) > maxFilenameLen {
		s = s[:maxFilenameLen]
		s = strings.TrimRight(s, "._")
	}
	if s == "" {
		s = "untitled"
	}
	return s
}
