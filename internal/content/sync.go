package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eamonbrady/revise/internal/domain"
)

// CardAdder is the insert-only capability sync needs from the store. Cards
// are never deleted: sources only grow the collection.
type CardAdder interface {
	AddCards(cards []domain.Card) (int, error)
}

// SyncSources reconciles every deck's markdown sources into the collection.
// Git sources are cloned or pulled under cacheDir first. Per-source failures
// are logged and skipped so one broken source doesn't block the rest.
func SyncSources(adder CardAdder, cat *Catalog, cacheDir string, now time.Time) {
	slog.Info("Starting card source sync")

	for _, deck := range cat.Decks {
		for _, source := range deck.Sources {
			dir := source
			if isGitURL(source) {
				localPath, err := gitURLToLocalPath(cacheDir, source)
				if err != nil {
					slog.Error("Cannot determine local path for git source", "url", source, "error", err)
					continue
				}
				if err := syncRepo(source, localPath); err != nil {
					slog.Error("Failed to sync git source", "url", source, "error", err)
					continue
				}
				dir = localPath
			}

			cards, err := cardsFromDir(dir, deck.ID, now)
			if err != nil {
				slog.Error("Failed to read card source", "deck", deck.ID, "source", source, "error", err)
				continue
			}

			added, err := adder.AddCards(cards)
			if err != nil {
				slog.Error("Failed to store imported cards", "deck", deck.ID, "source", source, "error", err)
				continue
			}
			if added > 0 {
				slog.Info("Imported new cards", "deck", deck.ID, "source", source, "added", added)
			}
		}
	}

	slog.Info("Card source sync complete")
}

// cardsFromDir walks a directory tree and parses every markdown file into
// cards for the deck.
func cardsFromDir(dir, deckID string, now time.Time) ([]domain.Card, error) {
	var cards []domain.Card
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		raw, parseErr := ParseFile(path)
		if parseErr != nil {
			return fmt.Errorf("parsing %s: %w", path, parseErr)
		}
		for _, rc := range raw {
			id := CardID(rc.Front, rc.Back, deckID)
			cards = append(cards, domain.NewCard(id, rc.Front, rc.Back, deckID, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func isGitURL(source string) bool {
	return strings.HasSuffix(source, ".git") || strings.HasPrefix(source, "git@")
}

// gitURLToLocalPath maps a repository URL to a stable checkout directory
// under cacheDir.
func gitURLToLocalPath(cacheDir, rawURL string) (string, error) {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		name = u.Path
	}
	name = strings.TrimSuffix(filepath.Base(name), ".git")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("cannot derive directory name from %q", rawURL)
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache dir %s: %w", cacheDir, err)
	}
	return filepath.Join(cacheDir, name), nil
}
