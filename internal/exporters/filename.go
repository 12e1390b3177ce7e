package exporters

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Line breaks, tabs and runs of spaces collapse to one space
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

const maxTitleLength = 200

// sanitizeTitle turns a book title into a filename stem that is safe on
// common filesystems and does not read as a tag or link in note apps.
// It returns "" when nothing usable is left.
func sanitizeTitle(title string) string {
	title = invalidFilenameChars.ReplaceAllString(title, "_")
	title = whitespaceRuns.ReplaceAllString(title, " ")
	title = strings.ReplaceAll(title, "#", "")
	title = strings.ReplaceAll(title, "[", "(")
	title = strings.ReplaceAll(title, "]", ")")
	title = strings.TrimSpace(title)

	if len(title) > maxTitleLength {
		// Cut on a rune boundary.
		cut := maxTitleLength
		for cut > 0 && !isRuneStart(title[cut]) {
			cut--
		}
		title = strings.TrimSpace(title[:cut])
	}
	if strings.Trim(title, "_ ") == "" {
		return ""
	}
	return title
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
