package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTranslation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		answer      string
		translation string
		want        bool
	}{
		{
			name:        "exact match",
			answer:      "to go",
			translation: "to go",
			want:        true,
		},
		{
			name:        "case folded",
			answer:      "To Go",
			translation: "to go",
			want:        true,
		},
		{
			name:        "surrounding whitespace ignored",
			answer:      "  to go  ",
			translation: "to go",
			want:        true,
		},
		{
			name:        "first slash alternative",
			answer:      "to go",
			translation: "to go / to leave",
			want:        true,
		},
		{
			name:        "second slash alternative",
			answer:      "to leave",
			translation: "to go / to leave",
			want:        true,
		},
		{
			name:        "slash without spaces",
			answer:      "to leave",
			translation: "to go/to leave",
			want:        true,
		},
		{
			name:        "parenthetical qualifier may be omitted",
			answer:      "to wear",
			translation: "to wear (clothes)",
			want:        true,
		},
		{
			name:        "full form with parenthetical still accepted",
			answer:      "to wear (clothes)",
			translation: "to wear (clothes)",
			want:        true,
		},
		{
			name:        "wrong word rejected",
			answer:      "to come",
			translation: "to go / to leave",
			want:        false,
		},
		{
			name:        "empty answer rejected",
			answer:      "   ",
			translation: "to go",
			want:        false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchTranslation(tc.answer, tc.translation))
		})
	}
}

func TestMatchSource(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		answer string
		source string
		want   bool
	}{
		{
			name:   "exact match",
			answer: "공부하다",
			source: "공부하다",
			want:   true,
		},
		{
			name:   "spaceless form of spaced source",
			answer: "공부를하다",
			source: "공부를 하다",
			want:   true,
		},
		{
			name:   "spaced source verbatim",
			answer: "공부를 하다",
			source: "공부를 하다",
			want:   true,
		},
		{
			name:   "wrong word rejected",
			answer: "먹다",
			source: "공부하다",
			want:   false,
		},
		{
			name:   "empty answer rejected",
			answer: "",
			source: "공부하다",
			want:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchSource(tc.answer, tc.source))
		})
	}
}
