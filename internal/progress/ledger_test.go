package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eamonbrady/revise/internal/domain"
)

func at(day int, hour int) time.Time {
	return time.Date(2026, 6, day, hour, 0, 0, 0, time.UTC)
}

func studiedAt(p domain.Progress, t time.Time) domain.Progress {
	p.LastStudyDate = &t
	return p
}

func TestNewDefaults(t *testing.T) {
	p := New()
	assert.Equal(t, DefaultDailyGoal, p.DailyGoal)
	assert.Zero(t, p.CurrentStreak)
	assert.Zero(t, p.TotalCardsReviewed)
	assert.Nil(t, p.LastStudyDate)
}

func TestRecordReviewFirstEver(t *testing.T) {
	now := at(10, 9)
	p := RecordReview(New(), now)

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.LongestStreak)
	assert.Equal(t, 1, p.TotalCardsReviewed)
	assert.Equal(t, 1, p.TodayCardsReviewed)
	require.NotNil(t, p.LastStudyDate)
	assert.True(t, p.LastStudyDate.Equal(now))
}

func TestRecordReviewSameDayIsIdempotentForStreak(t *testing.T) {
	p := RecordReview(New(), at(10, 9))
	p = RecordReview(p, at(10, 12))
	p = RecordReview(p, at(10, 23))

	// Counters grow with every call, the streak only on the day's first.
	assert.Equal(t, 3, p.TotalCardsReviewed)
	assert.Equal(t, 3, p.TodayCardsReviewed)
	assert.Equal(t, 1, p.CurrentStreak)
}

func TestRecordReviewConsecutiveDayExtendsStreak(t *testing.T) {
	p := domain.Progress{CurrentStreak: 3, LongestStreak: 3, DailyGoal: 20}
	p = studiedAt(p, at(9, 22))

	p = RecordReview(p, at(10, 7))

	assert.Equal(t, 4, p.CurrentStreak)
	assert.Equal(t, 4, p.LongestStreak)
}

func TestRecordReviewGapResetsStreak(t *testing.T) {
	p := domain.Progress{CurrentStreak: 7, LongestStreak: 9, DailyGoal: 20}
	p = studiedAt(p, at(5, 12))

	p = RecordReview(p, at(10, 12))

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 9, p.LongestStreak, "longest streak never decreases")
}

func TestRecordReviewDayRolloverResetsTodayCount(t *testing.T) {
	p := RecordReview(New(), at(10, 9))
	p = RecordReview(p, at(10, 10))
	assert.Equal(t, 2, p.TodayCardsReviewed)

	p = RecordReview(p, at(11, 8))
	assert.Equal(t, 1, p.TodayCardsReviewed)
	assert.Equal(t, 3, p.TotalCardsReviewed)
	assert.Equal(t, 2, p.CurrentStreak)
}

func TestRecordReviewComparesCalendarDaysNotDurations(t *testing.T) {
	// 23:30 to 00:30 is one hour apart but a day boundary; the streak must
	// extend even though far less than 24 hours passed.
	p := RecordReview(New(), time.Date(2026, 6, 10, 23, 30, 0, 0, time.UTC))
	p = RecordReview(p, time.Date(2026, 6, 11, 0, 30, 0, 0, time.UTC))

	assert.Equal(t, 2, p.CurrentStreak)
}

func TestRecordReviewLongestStreakMonotone(t *testing.T) {
	p := New()
	longest := 0
	// Alternating runs of study days and gaps.
	days := []int{1, 2, 3, 7, 8, 9, 10, 20, 21}
	for _, d := range days {
		p = RecordReview(p, at(d, 9))
		require.GreaterOrEqual(t, p.LongestStreak, longest)
		require.GreaterOrEqual(t, p.LongestStreak, p.CurrentStreak)
		longest = p.LongestStreak
	}
	assert.Equal(t, 4, p.LongestStreak)
	assert.Equal(t, 2, p.CurrentStreak)
}

func TestRecordReviewDoesNotMutateInput(t *testing.T) {
	orig := RecordReview(New(), at(10, 9))
	snapshot := orig
	_ = RecordReview(orig, at(11, 9))

	assert.Equal(t, snapshot, orig)
}

func TestAddStudyTime(t *testing.T) {
	p := AddStudyTime(New(), 90)
	assert.Equal(t, 90, p.TotalStudyTime)

	p = AddStudyTime(p, 0)
	p = AddStudyTime(p, -5)
	assert.Equal(t, 90, p.TotalStudyTime)
}

func TestGoalPercent(t *testing.T) {
	p := domain.Progress{DailyGoal: 20, TodayCardsReviewed: 5}
	assert.Equal(t, 25, GoalPercent(p))

	p.TodayCardsReviewed = 50
	assert.Equal(t, 100, GoalPercent(p), "capped at 100")

	p.DailyGoal = 0
	assert.Equal(t, 0, GoalPercent(p))
}
