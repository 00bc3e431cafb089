package tarot

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDeckShape(t *testing.T) {
	cards, err := Deck()
	if err != nil {
		t.Fatalf("Deck() error: %v", err)
	}
	if len(cards) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(cards), DeckSize)
	}

	var major, minor int
	seen := make(map[string]bool, DeckSize)
	for i, c := range cards {
		if c.Name == "" || c.Meaning == "" || c.Image == "" {
			t.Errorf("card %d incomplete: %+v", i, c)
		}
		if seen[c.Name] {
			t.Errorf("duplicate card name %q", c.Name)
		}
		seen[c.Name] = true
		switch c.Arcana {
		case ArcanaMajor:
			major++
		case ArcanaMinor:
			minor++
		}
	}
	if major != 22 || minor != 56 {
		t.Errorf("arcana split = %d/%d, want 22/56", major, minor)
	}
}

func TestDeckIsStableAcrossCalls(t *testing.T) {
	a, err := Deck()
	if err != nil {
		t.Fatalf("Deck() error: %v", err)
	}
	b, err := Deck()
	if err != nil {
		t.Fatalf("Deck() second call error: %v", err)
	}
	if &a[0] != &b[0] {
		t.Error("Deck() returned different backing arrays")
	}
}

func TestCardImageURL(t *testing.T) {
	c := Card{Image: "ar00.jpg"}
	url := c.ImageURL()
	if !strings.HasPrefix(url, "https://") || !strings.HasSuffix(url, "/ar00.jpg") {
		t.Errorf("unexpected image URL %q", url)
	}
}

func TestArcanaDecodeRejectsUnknown(t *testing.T) {
	var c Card
	err := json.Unmarshal([]byte(`{"arcana":"court","name":"x","meaning":"y","image":"z.jpg"}`), &c)
	if err == nil {
		t.Fatal("expected decode error for unknown arcana")
	}
}
