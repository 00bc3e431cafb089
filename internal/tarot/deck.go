package tarot

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/cards.json
var deckFS embed.FS

const (
	deckPath = "data/cards.json"

	// DeckSize is the full catalog: 22 major plus 56 minor arcana.
	DeckSize  = 78
	majorSize = 22
	minorSize = 56
)

var (
	deckOnce sync.Once
	deck     []Card
	deckErr  error
)

// Deck returns the embedded 78-card catalog. The catalog is decoded on first
// use and shared read-only afterwards; callers must not mutate the slice.
func Deck() ([]Card, error) {
	deckOnce.Do(func() {
		deck, deckErr = loadDeck()
	})
	return deck, deckErr
}

func loadDeck() ([]Card, error) {
	raw, err := deckFS.ReadFile(deckPath)
	if err != nil {
		return nil, fmt.Errorf("tarot: read deck: %w", err)
	}
	var cards []Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("tarot: decode deck: %w", err)
	}
	if err := validateDeck(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func validateDeck(cards []Card) error {
	if len(cards) != DeckSize {
		return fmt.Errorf("tarot: deck has %d cards, want %d", len(cards), DeckSize)
	}
	var major, minor int
	for i, c := range cards {
		if c.Name == "" || c.Meaning == "" || c.Image == "" {
			return fmt.Errorf("tarot: card %d is incomplete", i)
		}
		switch c.Arcana {
		case ArcanaMajor:
			major++
		case ArcanaMinor:
			minor++
		}
	}
	if major != majorSize || minor != minorSize {
		return fmt.Errorf("tarot: deck split %d/%d, want %d/%d", major, minor, majorSize, minorSize)
	}
	return nil
}
