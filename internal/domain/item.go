package domain

import (
	"errors"
)

// Item-specific validation errors
var (
	// ErrItemKeyEmpty is returned when an item has no key.
	ErrItemKeyEmpty = errors.New("item key cannot be empty")

	// ErrItemTranslationEmpty is returned when an item has no translation.
	ErrItemTranslationEmpty = errors.New("item translation cannot be empty")

	// ErrItemLevelInvalid is returned when an item's level is not a positive integer.
	ErrItemLevelInvalid = errors.New("item level must be a positive integer")
)

// Item represents a single vocabulary entry loaded from static content.
// The Key is the item's canonical form and doubles as the mastery record
// identifier, so it must be unique within a level. Items are immutable:
// the core never mutates them after load (the level tag is attached by the
// content loader as part of construction).
//
// JSON field names match the static level files shipped with the app
// (topik<level>.json), which is why they are abbreviated.
type Item struct {
	Key                string `json:"kr"`
	Translation        string `json:"en"`
	PartOfSpeech       string `json:"pos,omitempty"`
	ExampleSource      string `json:"ex_kr,omitempty"`
	ExampleTranslation string `json:"ex_en,omitempty"`
	Category           string `json:"category,omitempty"`
	Level              int    `json:"level,omitempty"`
}

// Validate checks if the Item has valid data.
// Returns an error if any field fails validation.
func (i *Item) Validate() error {
	if i.Key == "" {
		return ErrItemKeyEmpty
	}

	if i.Translation == "" {
		return ErrItemTranslationEmpty
	}

	if i.Level < 0 {
		return ErrItemLevelInvalid
	}

	return nil
}

// HasExample reports whether the item carries a usable example sentence pair.
func (i *Item) HasExample() bool {
	return i.ExampleSource != "" && i.ExampleTranslation != ""
}
