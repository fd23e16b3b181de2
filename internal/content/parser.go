package content

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
)

// RawCard is a front/back pair parsed from a markdown source, before it is
// given an identity or a deck.
type RawCard struct {
	Front string
	Back  string
}

type parseState int

const (
	seeking parseState = iota
	readingFront
	readingBack
)

// ParseFile reads a markdown file and extracts all cards.
func ParseFile(path string) ([]RawCard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse extracts cards from an io.Reader. A card starts at a "Q:" line, its
// answer at the following "A:" line; either may continue over multiple
// lines. A "---" separator or the next "Q:" closes the card. Cards without
// a question are dropped.
func Parse(r io.Reader) ([]RawCard, error) {
	scanner := bufio.NewScanner(r)
	var cards []RawCard
	var current RawCard
	var block []string
	state := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch state {
		case readingFront:
			current.Front = content
		case readingBack:
			current.Back = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if current.Front != "" {
			cards = append(cards, current)
		}
		current = RawCard{}
		state = seeking
	}

	stripPrefix := func(line, prefix string) string {
		content := line[len(prefix):]
		return strings.TrimPrefix(content, " ")
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "---":
			finishCard()
		case strings.HasPrefix(line, frontPrefix):
			// A new question always starts a new card.
			if state != seeking {
				finishCard()
			} else {
				flushBlock()
			}
			state = readingFront
			block = append(block, stripPrefix(line, frontPrefix))
		case strings.HasPrefix(line, backPrefix):
			flushBlock()
			state = readingBack
			block = append(block, stripPrefix(line, backPrefix))
		default:
			if state != seeking {
				block = append(block, line)
			}
		}
	}

	finishCard() // Finish the very last card in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}
