package content

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedCards int
		expectedFront string
		expectedBack  string
	}{
		{
			name:          "Simple card",
			input:         "Q: What is the capital of France?\nA: Paris",
			expectedCards: 1,
			expectedFront: "What is the capital of France?",
			expectedBack:  "Paris",
		},
		{
			name: "Multiline answer",
			input: `
Q: What are the primary colors?
A: Red
Blue
Yellow
`,
			expectedCards: 1,
			expectedFront: "What are the primary colors?",
			expectedBack:  "Red\nBlue\nYellow",
		},
		{
			name: "Two cards",
			input: `
Q: First question
A: First answer

Q: Second question
A: Second answer
`,
			expectedCards: 2,
		},
		{
			name: "Separator closes a card",
			input: `
Q: One
A: Answer one
---
Q: Two
A: Answer two
`,
			expectedCards: 2,
		},
		{
			name:          "Answer without question is dropped",
			input:         "A: Orphaned answer",
			expectedCards: 0,
		},
		{
			name:          "Question without answer still counts",
			input:         "Q: Unanswered",
			expectedCards: 1,
			expectedFront: "Unanswered",
			expectedBack:  "",
		},
		{
			name:          "Empty input",
			input:         "",
			expectedCards: 0,
		},
		{
			name:          "Prose outside cards is ignored",
			input:         "# Notes\nSome commentary.\n\nQ: Real card\nA: Real answer",
			expectedCards: 1,
			expectedFront: "Real card",
			expectedBack:  "Real answer",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Parse returned an unexpected error: %v", err)
			}
			if len(cards) != tc.expectedCards {
				t.Fatalf("Expected %d cards, but got %d", tc.expectedCards, len(cards))
			}
			if tc.expectedCards == 0 || tc.expectedFront == "" {
				return
			}
			if cards[0].Front != tc.expectedFront {
				t.Errorf("Expected front '%s', but got '%s'", tc.expectedFront, cards[0].Front)
			}
			if cards[0].Back != tc.expectedBack {
				t.Errorf("Expected back '%s', but got '%s'", tc.expectedBack, cards[0].Back)
			}
		})
	}
}

func TestParseTwoCardsContents(t *testing.T) {
	input := "Q: First\nA: One\n---\nQ: Second\nA: Two"
	cards, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned an unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, but got %d", len(cards))
	}
	if cards[1].Front != "Second" || cards[1].Back != "Two" {
		t.Errorf("Expected second card Second/Two, but got '%s'/'%s'", cards[1].Front, cards[1].Back)
	}
}
