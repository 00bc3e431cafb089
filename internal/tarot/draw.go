package tarot

import (
	"fmt"
	"math/rand"
)

// RNG is the randomness source for card draws. math/rand satisfies it; tests
// substitute a scripted sequence.
type RNG interface {
	Intn(n int) int
}

// Position labels a slot of a three-card spread.
type Position string

const (
	PositionPast    Position = "Past"
	PositionPresent Position = "Present"
	PositionFuture  Position = "Future"
)

// SpreadSize is the number of cards in a reading.
const SpreadSize = 3

// Drawn pairs a card with its spread position.
type Drawn struct {
	Position Position
	Card     Card
}

// DefaultRNG returns a draw source backed by math/rand.
func DefaultRNG() RNG {
	return rand.New(rand.NewSource(rand.Int63()))
}

// Draw3 draws three distinct cards and assigns them Past, Present and Future
// in draw order. Distinctness is by catalog index, so the same card never
// appears twice in one spread; duplicate indexes are redrawn.
func Draw3(rng RNG) ([SpreadSize]Drawn, error) {
	var spread [SpreadSize]Drawn
	cards, err := Deck()
	if err != nil {
		return spread, err
	}
	positions := [SpreadSize]Position{PositionPast, PositionPresent, PositionFuture}
	var picked [SpreadSize]int
	for i := 0; i < SpreadSize; i++ {
		idx := rng.Intn(len(cards))
		for taken(picked[:i], idx) {
			idx = rng.Intn(len(cards))
		}
		picked[i] = idx
		spread[i] = Drawn{Position: positions[i], Card: cards[idx]}
	}
	return spread, nil
}

func taken(picked []int, idx int) bool {
	for _, p := range picked {
		if p == idx {
			return true
		}
	}
	return false
}

// Describe renders a card for prompt text: name plus its meaning.
func (d Drawn) Describe() string {
	return fmt.Sprintf("%s: %s", d.Card.Name, d.Card.Meaning)
}
