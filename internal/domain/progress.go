package domain

import "time"

// Progress is the installation-wide study ledger: streaks, lifetime totals
// and the daily goal counter. There is exactly one per installation.
type Progress struct {
	CurrentStreak      int        `json:"currentStreak"`
	LongestStreak      int        `json:"longestStreak"`
	TotalCardsReviewed int        `json:"totalCardsReviewed"`
	TotalStudyTime     int        `json:"totalStudyTime"` // seconds
	DailyGoal          int        `json:"dailyGoal"`
	TodayCardsReviewed int        `json:"todayCardsReviewed"`
	LastStudyDate      *time.Time `json:"lastStudyDate,omitempty"`
}

// StudySession is one completed (or abandoned) study pass, recorded for the
// session log.
type StudySession struct {
	Date          time.Time `json:"date"`
	CardsReviewed int       `json:"cardsReviewed"`
	TimeSpent     int       `json:"timeSpent"` // seconds
	DeckID        string    `json:"deckId"`
}
