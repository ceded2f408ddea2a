package session

import (
	"regexp"
	"strings"
	"unicode"
)

// Free-text answer checking for the recall quiz. This lives beside the
// queue rather than in the scheduler: matching only decides which quality
// signal reaches the core, it never touches scheduling state.

var (
	alternativeSplit = regexp.MustCompile(`\s*/\s*`)
	parenthetical    = regexp.MustCompile(`\(.*\)`)
)

// stripSpaces removes every whitespace rune.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// MatchTranslation reports whether a typed answer matches an item's
// translation. Matching is forgiving the way the quiz surface always was:
// case-folded, slash-separated alternatives each count, and a trailing
// parenthetical qualifier on an alternative may be omitted.
func MatchTranslation(answer, translation string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return false
	}

	for _, alt := range alternativeSplit.Split(strings.ToLower(translation), -1) {
		alt = strings.TrimSpace(alt)
		if a == alt {
			return true
		}
		if a == strings.TrimSpace(parenthetical.ReplaceAllString(alt, "")) {
			return true
		}
	}

	return false
}

// MatchSource reports whether a typed answer matches an item's source
// form. Korean spacing is unreliable on mobile keyboards, so a spaceless
// rendition of the key also counts.
func MatchSource(answer, source string) bool {
	a := strings.TrimSpace(answer)
	if a == "" {
		return false
	}

	if a == source {
		return true
	}
	return a == stripSpaces(source)
}
