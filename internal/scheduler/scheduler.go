// Package scheduler implements the SM-2 style review scheduling algorithm.
// It is a pure computation: given a card's review state and a grade it
// produces the replacement review state, performing no I/O.
package scheduler

import (
	"math"
	"time"

	"github.com/eamonbrady/revise/internal/domain"
)

// Params holds the tunable constants of the algorithm.
type Params struct {
	MinEaseFactor  float64 // floor for the ease factor
	HardPenalty    float64 // subtracted from ease on a "hard" grade
	EasyBonus      float64 // added to ease on an "easy" grade
	FirstInterval  int     // days after the first successful review
	SecondInterval int     // days after the second consecutive success
}

// DefaultParams returns the standard SM-2 constants.
func DefaultParams() *Params {
	return &Params{
		MinEaseFactor:  1.3,
		HardPenalty:    0.15,
		EasyBonus:      0.15,
		FirstInterval:  1,
		SecondInterval: 6,
	}
}

// Review computes the card state after grading it at the given instant.
// It returns a copy with all mutable review fields replaced; the input card
// is not modified. The caller must reject invalid grades before calling.
//
// A grade of "again" resets repetitions to 0 and the interval to 1 day,
// leaving the ease factor untouched. Any other grade adjusts the ease
// factor, increments the repetition count and grows the interval: 1 day for
// the first success, 6 for the second, then round(interval * easeFactor)
// using the pre-review interval.
func (p *Params) Review(card domain.Card, grade domain.Grade, now time.Time) domain.Card {
	ease := card.EaseFactor
	interval := card.Interval
	reps := card.Repetitions

	if grade == domain.GradeAgain {
		reps = 0
		interval = 1
	} else {
		switch grade {
		case domain.GradeHard:
			ease = math.Max(p.MinEaseFactor, ease-p.HardPenalty)
		case domain.GradeGood:
			ease = math.Max(p.MinEaseFactor, ease)
		case domain.GradeEasy:
			ease += p.EasyBonus
		}

		reps++

		switch reps {
		case 1:
			interval = p.FirstInterval
		case 2:
			interval = p.SecondInterval
		default:
			interval = int(math.Round(float64(card.Interval) * ease))
		}
	}

	reviewed := now
	next := card
	next.EaseFactor = ease
	next.Interval = interval
	next.Repetitions = reps
	// Calendar-day addition, preserving time-of-day across DST changes.
	next.NextReviewDate = now.AddDate(0, 0, interval)
	next.LastReviewDate = &reviewed
	return next
}
