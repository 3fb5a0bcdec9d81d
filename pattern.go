package godedupcleaner

import (
	"regexp"
	"strings"
)

// patternMatcher derives a filename's base identity: the part of the name
// that survives stripping the configured copy-suffix pattern. Two files that
// share a base identity are provisional duplicates by name alone, without
// any content I/O.
type patternMatcher struct {
	re *regexp.Regexp
}

func newPatternMatcher(re *regexp.Regexp) *patternMatcher {
	return &patternMatcher{re: re}
}

// baseIdentity returns the filename with the matched suffix and extension
// removed. When the pattern does not match (or would leave nothing), only
// the extension is stripped, so "img_copy.jpg" keys as "img_copy" and is not
// grouped with "img.jpg" by name.
func (m *patternMatcher) baseIdentity(fileName string) string {
	if loc := m.re.FindStringIndex(fileName); loc != nil && loc[0] > 0 {
		return fileName[:loc[0]]
	}

	if dot := strings.LastIndex(fileName, "."); dot > 0 {
		return fileName[:dot]
	}
	return fileName
}
