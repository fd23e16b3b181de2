// Package progress maintains the daily study ledger: streaks, lifetime
// totals and the daily goal counter, keyed by calendar day.
package progress

import (
	"time"

	"github.com/eamonbrady/revise/internal/domain"
)

// DefaultDailyGoal is the number of cards a fresh installation aims for
// per day.
const DefaultDailyGoal = 20

// New returns the ledger for a fresh installation: all counters zero and
// the default daily goal.
func New() domain.Progress {
	return domain.Progress{DailyGoal: DefaultDailyGoal}
}

// RecordReview folds one graded review at the given instant into the ledger
// and returns the updated copy. It is pure: the input is never mutated.
//
// The streak comparison uses the calendar day of the previous lastStudyDate,
// captured before lastStudyDate is replaced. That ordering is what limits
// the streak to at most one increment per calendar day: after the first
// review of a day lastStudyDate already falls on today, so later reviews hit
// the same-day branch.
func RecordReview(old domain.Progress, now time.Time) domain.Progress {
	p := old

	var lastStudy *time.Time
	if old.LastStudyDate != nil {
		t := *old.LastStudyDate
		lastStudy = &t
	}

	if lastStudy == nil || !sameDay(*lastStudy, now) {
		p.TodayCardsReviewed = 0
	}

	p.TodayCardsReviewed++
	p.TotalCardsReviewed++

	yesterday := now.AddDate(0, 0, -1)
	switch {
	case lastStudy != nil && sameDay(*lastStudy, now):
		// Not the day's first review; the streak already counted today.
	case lastStudy != nil && sameDay(*lastStudy, yesterday):
		p.CurrentStreak++
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
	default:
		// Gap of two or more days, or never studied before.
		p.CurrentStreak = 1
		if p.LongestStreak < 1 {
			p.LongestStreak = 1
		}
	}

	studied := now
	p.LastStudyDate = &studied
	return p
}

// AddStudyTime credits seconds of study time to the lifetime total.
func AddStudyTime(old domain.Progress, seconds int) domain.Progress {
	p := old
	if seconds > 0 {
		p.TotalStudyTime += seconds
	}
	return p
}

// GoalPercent reports today's progress towards the daily goal as a
// percentage capped at 100.
func GoalPercent(p domain.Progress) int {
	if p.DailyGoal <= 0 {
		return 0
	}
	pct := p.TodayCardsReviewed * 100 / p.DailyGoal
	if pct > 100 {
		pct = 100
	}
	return pct
}

// sameDay compares two instants by calendar date only, so day boundaries
// stay correct across daylight-saving transitions.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
