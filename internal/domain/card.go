package domain

import "time"

// Card is a single front/back flashcard together with its review state.
// The review fields are only ever replaced wholesale by the scheduler;
// nothing else mutates them.
type Card struct {
	ID     string `json:"id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
	DeckID string `json:"deckId"`

	EaseFactor     float64    `json:"easeFactor"`
	Interval       int        `json:"interval"`
	Repetitions    int        `json:"repetitions"`
	NextReviewDate time.Time  `json:"nextReviewDate"`
	LastReviewDate *time.Time `json:"lastReviewDate,omitempty"`
}

// NewCard returns an unreviewed card due immediately.
// EaseFactor starts at the SM-2 default of 2.5.
func NewCard(id, front, back, deckID string, now time.Time) Card {
	return Card{
		ID:             id,
		Front:          front,
		Back:           back,
		DeckID:         deckID,
		EaseFactor:     2.5,
		Interval:       0,
		Repetitions:    0,
		NextReviewDate: now,
	}
}

// Deck is static catalogue metadata. Card counts are derived on read,
// never stored.
type Deck struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsPremium   bool   `json:"isPremium"`
	Category    string `json:"category"`
}
