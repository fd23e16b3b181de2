// Package study selects due cards and walks a user through one review
// session as a small state machine.
package study

import (
	"time"

	"github.com/eamonbrady/revise/internal/domain"
)

// DueCards filters the collection to cards of the deck whose next review
// date has passed. Ordering follows the collection's own order; no sort is
// applied. The result is re-derived on every call.
func DueCards(cards []domain.Card, deckID string, now time.Time) []domain.Card {
	var due []domain.Card
	for _, c := range cards {
		if c.DeckID == deckID && !c.NextReviewDate.After(now) {
			due = append(due, c)
		}
	}
	return due
}

// NewCards filters to never-reviewed cards of the deck, regardless of date.
// Used for display counts only, not for session ordering.
func NewCards(cards []domain.Card, deckID string) []domain.Card {
	var fresh []domain.Card
	for _, c := range cards {
		if c.DeckID == deckID && c.Repetitions == 0 {
			fresh = append(fresh, c)
		}
	}
	return fresh
}

// DeckStats are the per-deck display counts.
type DeckStats struct {
	Total int `json:"total"`
	Due   int `json:"due"`
	New   int `json:"new"`
}

// StatsFor computes the display counts for one deck.
func StatsFor(cards []domain.Card, deckID string, now time.Time) DeckStats {
	var stats DeckStats
	for _, c := range cards {
		if c.DeckID != deckID {
			continue
		}
		stats.Total++
		if !c.NextReviewDate.After(now) {
			stats.Due++
		}
		if c.Repetitions == 0 {
			stats.New++
		}
	}
	return stats
}
