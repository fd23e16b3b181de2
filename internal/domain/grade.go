package domain

import "fmt"

// Grade is the user's self-reported recall quality for a card.
type Grade string

const (
	GradeAgain Grade = "again"
	GradeHard  Grade = "hard"
	GradeGood  Grade = "good"
	GradeEasy  Grade = "easy"
)

// Valid reports whether g is one of the four recognised grades.
func (g Grade) Valid() bool {
	switch g {
	case GradeAgain, GradeHard, GradeGood, GradeEasy:
		return true
	}
	return false
}

// ParseGrade converts user input into a Grade, rejecting anything outside
// the four recognised values before it can reach the scheduler.
func ParseGrade(s string) (Grade, error) {
	g := Grade(s)
	if !g.Valid() {
		return "", fmt.Errorf("invalid grade %q", s)
	}
	return g, nil
}
