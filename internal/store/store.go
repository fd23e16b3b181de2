package store

import (
	"encoding/json"
	"fmt"

	"github.com/eamonbrady/revise/internal/domain"
	"github.com/eamonbrady/revise/internal/progress"
)

// Logical storage keys. These are the persisted schema; dates inside the
// blobs are ISO-8601 strings and absent fields default safely on load.
const (
	keyCards    = "flashcards"
	keyProgress = "user_progress"
	keySessions = "study_sessions"
)

// Store is the typed persistence layer. It holds the card collection,
// progress ledger and session log in memory and writes them through the KV
// on every commit. It is single-writer: callers serialize access.
type Store struct {
	kv       KV
	cards    []domain.Card
	progress domain.Progress
	sessions []domain.StudySession
}

// Open loads all entities from the KV. Missing keys yield empty defaults,
// so a fresh database starts with no cards and a zeroed ledger.
func Open(kv KV) (*Store, error) {
	s := &Store{kv: kv, progress: progress.New()}

	if err := loadJSON(kv, keyCards, &s.cards); err != nil {
		return nil, err
	}
	if err := loadJSON(kv, keyProgress, &s.progress); err != nil {
		return nil, err
	}
	if s.progress.DailyGoal <= 0 {
		s.progress.DailyGoal = progress.DefaultDailyGoal
	}
	if err := loadJSON(kv, keySessions, &s.sessions); err != nil {
		return nil, err
	}
	return s, nil
}

func loadJSON(kv KV, key string, v interface{}) error {
	blob, err := kv.Load(key)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(blob, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) saveJSON(key string, v interface{}) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Save(key, blob); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Cards returns a copy of the card collection in insertion order.
func (s *Store) Cards() []domain.Card {
	out := make([]domain.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// CardByID returns the card with the given id, if present.
func (s *Store) CardByID(id string) (domain.Card, bool) {
	for _, c := range s.cards {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Card{}, false
}

// Progress returns the current ledger.
func (s *Store) Progress() domain.Progress {
	return s.progress
}

// Sessions returns a copy of the session log, oldest first.
func (s *Store) Sessions() []domain.StudySession {
	out := make([]domain.StudySession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// InitializeCards seeds the collection on first run. It is a no-op when
// cards already exist.
func (s *Store) InitializeCards(seed []domain.Card) error {
	if len(s.cards) > 0 {
		return nil
	}
	s.cards = append(s.cards, seed...)
	if err := s.saveJSON(keyCards, s.cards); err != nil {
		s.cards = nil
		return err
	}
	return nil
}

// AddCards inserts cards whose ids are not yet in the collection and
// reports how many were added. Existing cards are left untouched; the
// collection never shrinks.
func (s *Store) AddCards(cards []domain.Card) (int, error) {
	known := make(map[string]bool, len(s.cards))
	for _, c := range s.cards {
		known[c.ID] = true
	}

	before := len(s.cards)
	for _, c := range cards {
		if known[c.ID] {
			continue
		}
		known[c.ID] = true
		s.cards = append(s.cards, c)
	}
	added := len(s.cards) - before
	if added == 0 {
		return 0, nil
	}

	if err := s.saveJSON(keyCards, s.cards); err != nil {
		s.cards = s.cards[:before]
		return 0, err
	}
	return added, nil
}

// SetDailyGoal updates the user-configurable daily card goal and persists
// the ledger.
func (s *Store) SetDailyGoal(goal int) error {
	if goal <= 0 {
		return fmt.Errorf("daily goal must be positive, got %d", goal)
	}
	if s.progress.DailyGoal == goal {
		return nil
	}
	prev := s.progress
	s.progress.DailyGoal = goal
	if err := s.saveJSON(keyProgress, s.progress); err != nil {
		s.progress = prev
		return err
	}
	return nil
}

// CommitReview applies one graded review as a single transaction: the
// updated card replaces its entry in the collection, the ledger is replaced,
// and both are persisted. On any failure the in-memory state is restored to
// its pre-commit values so the caller can retry the same grade.
func (s *Store) CommitReview(card domain.Card, prog domain.Progress) error {
	idx := -1
	for i, c := range s.cards {
		if c.ID == card.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("commit review %s: %w", card.ID, ErrCardNotFound)
	}

	prevCard := s.cards[idx]
	prevProg := s.progress
	s.cards[idx] = card
	s.progress = prog

	if err := s.saveJSON(keyCards, s.cards); err != nil {
		s.cards[idx] = prevCard
		s.progress = prevProg
		return err
	}
	if err := s.saveJSON(keyProgress, s.progress); err != nil {
		s.cards[idx] = prevCard
		s.progress = prevProg
		// Best effort: rewrite the card blob so both keys stay consistent.
		_ = s.saveJSON(keyCards, s.cards)
		return err
	}
	return nil
}

// LogSession appends a finished study pass to the session log and replaces
// the ledger (the caller has already credited the study time). Failures
// restore the previous in-memory state.
func (s *Store) LogSession(sess domain.StudySession, prog domain.Progress) error {
	prevProg := s.progress
	s.sessions = append(s.sessions, sess)
	s.progress = prog

	if err := s.saveJSON(keySessions, s.sessions); err != nil {
		s.sessions = s.sessions[:len(s.sessions)-1]
		s.progress = prevProg
		return err
	}
	if err := s.saveJSON(keyProgress, s.progress); err != nil {
		s.sessions = s.sessions[:len(s.sessions)-1]
		s.progress = prevProg
		_ = s.saveJSON(keySessions, s.sessions)
		return err
	}
	return nil
}
