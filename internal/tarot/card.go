package tarot

import (
	"encoding/json"
	"fmt"
)

// Arcana is the group a card belongs to.
type Arcana string

const (
	ArcanaMajor Arcana = "major"
	ArcanaMinor Arcana = "minor"
)

// UnmarshalJSON decodes the arcana group exhaustively; an unrecognized value
// is a decode error, not a silent fall-through.
func (a *Arcana) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch Arcana(raw) {
	case ArcanaMajor, ArcanaMinor:
		*a = Arcana(raw)
		return nil
	}
	return fmt.Errorf("tarot: unknown arcana %q", raw)
}

// Card is a single entry of the fixed 78-card catalog. Cards are loaded once
// at process start and never mutated. Image holds the artwork filename inside
// the published image set.
type Card struct {
	Arcana  Arcana `json:"arcana"`
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
	Image   string `json:"image"`
}

// imageBaseURL is where the card artwork set is published.
const imageBaseURL = "https://raw.githubusercontent.com/pamnard/TaroBot/master/img/"

// ImageURL returns the full artwork URL for the card.
func (c Card) ImageURL() string {
	return imageBaseURL + c.Image
}

// ClosingImageURL is the artwork attached to the final summary of a spread.
func ClosingImageURL() string {
	return imageBaseURL + "end.jpg"
}
