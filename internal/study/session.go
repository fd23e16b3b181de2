package study

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eamonbrady/revise/internal/domain"
	"github.com/eamonbrady/revise/internal/progress"
	"github.com/eamonbrady/revise/internal/scheduler"
)

// State is the session's position in the reveal/grade cycle.
type State int

const (
	// AwaitingReveal shows the card front only.
	AwaitingReveal State = iota
	// Revealed shows front and back; grading is allowed.
	Revealed
	// Complete is terminal: the due sequence is exhausted, was empty at
	// start, or the session was abandoned.
	Complete
)

func (s State) String() string {
	switch s {
	case AwaitingReveal:
		return "awaiting_reveal"
	case Revealed:
		return "revealed"
	case Complete:
		return "complete"
	}
	return "unknown"
}

var (
	// ErrInvalidGrade rejects grades outside again/hard/good/easy before
	// they reach the scheduler.
	ErrInvalidGrade = errors.New("invalid grade")

	// ErrNotRevealed means Grade was called before Reveal.
	ErrNotRevealed = errors.New("card not yet revealed")

	// ErrSessionComplete means the session already reached its terminal
	// state.
	ErrSessionComplete = errors.New("session complete")
)

// Store is the narrow persistence capability the session controller needs.
// *store.Store satisfies it; tests substitute fakes.
type Store interface {
	Cards() []domain.Card
	Progress() domain.Progress
	CommitReview(card domain.Card, prog domain.Progress) error
	LogSession(sess domain.StudySession, prog domain.Progress) error
}

// Result is what one successful grade hands back to the caller: the updated
// entities, so the UI applies them directly instead of refetching.
type Result struct {
	Card     domain.Card     `json:"card"`
	Progress domain.Progress `json:"progress"`
	Done     bool            `json:"done"`
}

// Session walks an ordered due set for one deck. It is not safe for
// concurrent use; the caller serializes access.
type Session struct {
	id        uuid.UUID
	deckID    string
	store     Store
	params    *scheduler.Params
	clock     func() time.Time
	queue     []domain.Card
	pos       int
	state     State
	startedAt time.Time
	reviewed  int
}

// NewSession selects the deck's due cards and starts a session over them.
// An empty due set is not an error: the session starts in Complete and the
// caller reports "nothing due". A nil params or clock falls back to
// defaults.
func NewSession(st Store, deckID string, params *scheduler.Params, clock func() time.Time) *Session {
	if params == nil {
		params = scheduler.DefaultParams()
	}
	if clock == nil {
		clock = time.Now
	}

	now := clock()
	s := &Session{
		id:        uuid.New(),
		deckID:    deckID,
		store:     st,
		params:    params,
		clock:     clock,
		queue:     DueCards(st.Cards(), deckID, now),
		startedAt: now,
	}
	if len(s.queue) == 0 {
		s.state = Complete
	}
	return s
}

// ID is the session's identity, useful for logging.
func (s *Session) ID() uuid.UUID { return s.id }

// DeckID is the deck this session studies.
func (s *Session) DeckID() string { return s.deckID }

// State returns the current FSM state.
func (s *Session) State() State { return s.state }

// Position returns the zero-based cursor and the due-set length.
func (s *Session) Position() (int, int) { return s.pos, len(s.queue) }

// Current returns the card under the cursor, or false once the session is
// complete.
func (s *Session) Current() (domain.Card, bool) {
	if s.state == Complete {
		return domain.Card{}, false
	}
	return s.queue[s.pos], true
}

// Reveal flips the current card. Calling it while already revealed is a
// no-op.
func (s *Session) Reveal() error {
	if s.state == Complete {
		return ErrSessionComplete
	}
	s.state = Revealed
	return nil
}

// Grade applies the grade to the revealed card: the scheduler computes the
// replacement review state, the ledger folds in the review, and both are
// committed as one transaction. On commit failure nothing advances and the
// in-memory state keeps its pre-grade values, so the same grade can be
// retried.
func (s *Session) Grade(g domain.Grade) (Result, error) {
	switch s.state {
	case Complete:
		return Result{}, ErrSessionComplete
	case AwaitingReveal:
		return Result{}, ErrNotRevealed
	}
	if !g.Valid() {
		return Result{}, ErrInvalidGrade
	}

	now := s.clock()
	updated := s.params.Review(s.queue[s.pos], g, now)
	prog := progress.RecordReview(s.store.Progress(), now)

	if err := s.store.CommitReview(updated, prog); err != nil {
		return Result{}, err
	}

	s.reviewed++
	s.pos++
	if s.pos >= len(s.queue) {
		s.state = Complete
		s.logSession(now)
	} else {
		s.state = AwaitingReveal
	}

	return Result{
		Card:     updated,
		Progress: s.store.Progress(),
		Done:     s.state == Complete,
	}, nil
}

// Abandon ends the session early. Reviews already graded stay committed;
// no further bookkeeping happens.
func (s *Session) Abandon() error {
	if s.state == Complete {
		return ErrSessionComplete
	}
	s.state = Complete
	return nil
}

// logSession records the finished pass and credits its duration to the
// lifetime study time. The reviews themselves are already committed, so a
// logging failure is reported but does not fail the grade.
func (s *Session) logSession(now time.Time) {
	secs := int(now.Sub(s.startedAt).Seconds())
	prog := progress.AddStudyTime(s.store.Progress(), secs)
	sess := domain.StudySession{
		Date:          now,
		CardsReviewed: s.reviewed,
		TimeSpent:     secs,
		DeckID:        s.deckID,
	}
	if err := s.store.LogSession(sess, prog); err != nil {
		slog.Warn("Failed to log study session", "session_id", s.id, "error", err)
	}
}
