package session

import (
	"regexp"
	"strings"

	"github.com/hakseup/topik-api/internal/domain"
)

// ClozeBlank is the placeholder substituted for the hidden word.
const ClozeBlank = "______"

// verbSuffix is the dictionary-form ending of Korean verbs and
// adjectives. Words carrying it usually appear conjugated inside example
// sentences, so cloze building falls back to matching the stem plus any
// hangul continuation.
const verbSuffix = "다"

// conjugatedForm finds the conjugated appearance of a dictionary-form
// word inside a sentence: the stem (word minus the final 다) followed by
// any run of hangul. Returns false when the word is not a verb form or
// the stem never appears.
func conjugatedForm(sentence, word string) (string, bool) {
	runes := []rune(word)
	if len(runes) <= 2 || !strings.HasSuffix(word, verbSuffix) {
		return "", false
	}

	stem := string(runes[:len(runes)-1])
	re := regexp.MustCompile(regexp.QuoteMeta(stem) + "[가-힣]*")
	match := re.FindString(sentence)
	if match == "" {
		return "", false
	}
	return match, true
}

// EligibleForCloze reports whether an item can be turned into a cloze
// question: it needs an example sentence pair that actually contains the
// key, either verbatim or in conjugated form.
func EligibleForCloze(item domain.Item) bool {
	if !item.HasExample() || item.Key == "" {
		return false
	}

	if strings.Contains(item.ExampleSource, item.Key) {
		return true
	}
	_, ok := conjugatedForm(item.ExampleSource, item.Key)
	return ok
}

// BuildCloze blanks the key out of the sentence. The verbatim form wins
// when present; otherwise the conjugated form is blanked.
func BuildCloze(sentence, word string) string {
	if strings.Contains(sentence, word) {
		return strings.Replace(sentence, word, ClozeBlank, 1)
	}

	if match, ok := conjugatedForm(sentence, word); ok {
		return strings.Replace(sentence, match, ClozeBlank, 1)
	}

	return sentence
}

// ExpectedAnswers lists the accepted fills for a cloze built from the
// sentence: always the dictionary form, plus the conjugated form when the
// sentence uses one.
func ExpectedAnswers(sentence, word string) []string {
	answers := []string{word}

	if match, ok := conjugatedForm(sentence, word); ok && match != word {
		answers = append(answers, match)
	}

	return answers
}

// MatchCloze reports whether a typed answer fills the blank: any expected
// form, compared exactly after trimming.
func MatchCloze(answer, sentence, word string) bool {
	a := strings.TrimSpace(answer)
	if a == "" {
		return false
	}

	for _, expected := range ExpectedAnswers(sentence, word) {
		if a == expected {
			return true
		}
	}
	return false
}
