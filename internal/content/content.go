// Package content supplies the static deck catalogue and seed cards, and
// imports additional cards from markdown sources.
package content

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eamonbrady/revise/internal/domain"
)

// SeedCard is a front/back pair shipped with the catalogue.
type SeedCard struct {
	Front string `koanf:"front" validate:"required"`
	Back  string `koanf:"back"  validate:"required"`
}

// DeckSpec is one deck in the catalogue file: display metadata, its seed
// cards, and optional markdown card sources (local directories or git
// repository URLs).
type DeckSpec struct {
	ID          string     `koanf:"id"   validate:"required"`
	Name        string     `koanf:"name" validate:"required"`
	Description string     `koanf:"description"`
	Icon        string     `koanf:"icon"`
	Color       string     `koanf:"color"`
	Premium     bool       `koanf:"premium"`
	Category    string     `koanf:"category"`
	Cards       []SeedCard `koanf:"cards" validate:"dive"`
	Sources     []string   `koanf:"sources"`
}

// Catalog is the parsed deck catalogue.
type Catalog struct {
	Decks []DeckSpec `koanf:"decks" validate:"required,dive"`
}

// Load reads and validates the catalogue from a YAML file.
func Load(path string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read catalogue %s: %w", path, err)
	}

	var cat Catalog
	if err := k.Unmarshal("", &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue %s: %w", path, err)
	}

	if err := validator.New().Struct(&cat); err != nil {
		return nil, fmt.Errorf("invalid catalogue %s: %w", path, err)
	}
	return &cat, nil
}

// DeckList returns the catalogue's decks as domain metadata.
func (c *Catalog) DeckList() []domain.Deck {
	decks := make([]domain.Deck, 0, len(c.Decks))
	for _, d := range c.Decks {
		decks = append(decks, domain.Deck{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Icon:        d.Icon,
			Color:       d.Color,
			IsPremium:   d.Premium,
			Category:    d.Category,
		})
	}
	return decks
}

// DeckByID looks a deck up in the catalogue.
func (c *Catalog) DeckByID(id string) (domain.Deck, bool) {
	for _, d := range c.DeckList() {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Deck{}, false
}

// SeedCards builds the initial card collection from the catalogue's seed
// lists. Identities are content hashes, so re-seeding the same catalogue is
// stable.
func (c *Catalog) SeedCards(now time.Time) []domain.Card {
	var cards []domain.Card
	for _, d := range c.Decks {
		for _, sc := range d.Cards {
			id := CardID(sc.Front, sc.Back, d.ID)
			cards = append(cards, domain.NewCard(id, sc.Front, sc.Back, d.ID, now))
		}
	}
	return cards
}
