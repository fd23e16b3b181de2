package study

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eamonbrady/revise/internal/domain"
	"github.com/eamonbrady/revise/internal/progress"
	"github.com/eamonbrady/revise/internal/store"
)

// fakeStore implements Store in memory and can be told to fail commits.
type fakeStore struct {
	cards    []domain.Card
	progress domain.Progress
	sessions []domain.StudySession

	failCommit error
	commits    int
}

func newFakeStore(cards ...domain.Card) *fakeStore {
	return &fakeStore{cards: cards, progress: progress.New()}
}

func (f *fakeStore) Cards() []domain.Card      { return f.cards }
func (f *fakeStore) Progress() domain.Progress { return f.progress }

func (f *fakeStore) CommitReview(card domain.Card, prog domain.Progress) error {
	if f.failCommit != nil {
		return f.failCommit
	}
	for i, c := range f.cards {
		if c.ID == card.ID {
			f.cards[i] = card
			f.progress = prog
			f.commits++
			return nil
		}
	}
	return store.ErrCardNotFound
}

func (f *fakeStore) LogSession(sess domain.StudySession, prog domain.Progress) error {
	f.sessions = append(f.sessions, sess)
	f.progress = prog
	return nil
}

func dueCard(id string, now time.Time) domain.Card {
	return domain.NewCard(id, "front "+id, "back "+id, "deck-1", now.Add(-time.Hour))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSessionEmptyDueSetCompletesImmediately(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	st := newFakeStore()

	sess := NewSession(st, "deck-1", nil, fixedClock(now))

	assert.Equal(t, Complete, sess.State())
	_, ok := sess.Current()
	assert.False(t, ok)
	assert.Empty(t, st.sessions, "nothing due is not a studied session")
}

func TestSessionWalkTwoCards(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	st := newFakeStore(dueCard("a", now), dueCard("b", now))
	sess := NewSession(st, "deck-1", nil, fixedClock(now))

	require.Equal(t, AwaitingReveal, sess.State())
	card, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "a", card.ID)

	require.NoError(t, sess.Reveal())
	assert.Equal(t, Revealed, sess.State())

	res, err := sess.Grade(domain.GradeGood)
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, "a", res.Card.ID)
	assert.Equal(t, 1, res.Card.Repetitions)
	assert.Equal(t, 1, res.Progress.TotalCardsReviewed)
	assert.Equal(t, AwaitingReveal, sess.State())

	card, ok = sess.Current()
	require.True(t, ok)
	assert.Equal(t, "b", card.ID)

	require.NoError(t, sess.Reveal())
	res, err = sess.Grade(domain.GradeEasy)
	require.NoError(t, err)
	assert.True(t, res.Done)
	assert.Equal(t, Complete, sess.State())
	assert.Equal(t, 2, res.Progress.TotalCardsReviewed)

	require.Len(t, st.sessions, 1)
	assert.Equal(t, 2, st.sessions[0].CardsReviewed)
	assert.Equal(t, "deck-1", st.sessions[0].DeckID)
}

func TestSessionGradeRequiresReveal(t *testing.T) {
	now := time.Now()
	st := newFakeStore(dueCard("a", now))
	sess := NewSession(st, "deck-1", nil, fixedClock(now))

	_, err := sess.Grade(domain.GradeGood)
	assert.ErrorIs(t, err, ErrNotRevealed)
	assert.Equal(t, AwaitingReveal, sess.State())
	assert.Zero(t, st.commits)
}

func TestSessionRepeatedRevealIsNoop(t *testing.T) {
	now := time.Now()
	st := newFakeStore(dueCard("a", now))
	sess := NewSession(st, "deck-1", nil, fixedClock(now))

	require.NoError(t, sess.Reveal())
	require.NoError(t, sess.Reveal())
	assert.Equal(t, Revealed, sess.State())
}

func TestSessionRejectsInvalidGrade(t *testing.T) {
	now := time.Now()
	st := newFakeStore(dueCard("a", now))
	sess := NewSession(st, "deck-1", nil, fixedClock(now))
	require.NoError(t, sess.Reveal())

	_, err := sess.Grade(domain.Grade("perfect"))
	assert.ErrorIs(t, err, ErrInvalidGrade)
	assert.Zero(t, st.commits, "scheduler must not run for invalid grades")
}

func TestSessionCommitFailureDoesNotAdvance(t *testing.T) {
	now := time.Now()
	st := newFakeStore(dueCard("a", now), dueCard("b", now))
	sess := NewSession(st, "deck-1", nil, fixedClock(now))
	require.NoError(t, sess.Reveal())

	boom := errors.New("disk full")
	st.failCommit = boom
	_, err := sess.Grade(domain.GradeGood)
	assert.ErrorIs(t, err, boom)

	// Still on the first card, still revealed; the same grade can retry.
	assert.Equal(t, Revealed, sess.State())
	card, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "a", card.ID)
	assert.Equal(t, 0, st.progress.TotalCardsReviewed)

	st.failCommit = nil
	res, err := sess.Grade(domain.GradeGood)
	require.NoError(t, err)
	assert.Equal(t, "a", res.Card.ID)
	assert.Equal(t, AwaitingReveal, sess.State())
}

func TestSessionGradeMissingCardSurfacesNotFound(t *testing.T) {
	now := time.Now()
	st := newFakeStore(dueCard("a", now))
	sess := NewSession(st, "deck-1", nil, fixedClock(now))
	require.NoError(t, sess.Reveal())

	// The card vanishes from the backing collection mid-session.
	st.cards = nil

	_, err := sess.Grade(domain.GradeGood)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
	assert.Equal(t, Revealed, sess.State())
}

func TestSessionAbandon(t *testing.T) {
	now := time.Now()
	st := newFakeStore(dueCard("a", now), dueCard("b", now))
	sess := NewSession(st, "deck-1", nil, fixedClock(now))

	require.NoError(t, sess.Abandon())
	assert.Equal(t, Complete, sess.State())
	assert.Empty(t, st.sessions, "abandon does no extra bookkeeping")

	assert.ErrorIs(t, sess.Abandon(), ErrSessionComplete)
	assert.ErrorIs(t, sess.Reveal(), ErrSessionComplete)
	_, err := sess.Grade(domain.GradeGood)
	assert.ErrorIs(t, err, ErrSessionComplete)
}

func TestSessionLogsStudyTimeOnCompletion(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	current := start
	clock := func() time.Time { return current }

	st := newFakeStore(dueCard("a", start))
	sess := NewSession(st, "deck-1", nil, clock)

	current = start.Add(90 * time.Second)
	require.NoError(t, sess.Reveal())
	res, err := sess.Grade(domain.GradeGood)
	require.NoError(t, err)
	require.True(t, res.Done)

	require.Len(t, st.sessions, 1)
	assert.Equal(t, 90, st.sessions[0].TimeSpent)
	assert.Equal(t, 90, st.progress.TotalStudyTime)
}
