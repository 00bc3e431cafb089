package tarot

import "testing"

// scriptedRNG replays a fixed index sequence.
type scriptedRNG struct {
	seq []int
	pos int
}

func (r *scriptedRNG) Intn(n int) int {
	if r.pos >= len(r.seq) {
		r.pos = 0
	}
	v := r.seq[r.pos] % n
	r.pos++
	return v
}

func TestDraw3PositionsInOrder(t *testing.T) {
	spread, err := Draw3(&scriptedRNG{seq: []int{0, 1, 2}})
	if err != nil {
		t.Fatalf("Draw3 error: %v", err)
	}
	want := [SpreadSize]Position{PositionPast, PositionPresent, PositionFuture}
	for i, d := range spread {
		if d.Position != want[i] {
			t.Errorf("slot %d position = %q, want %q", i, d.Position, want[i])
		}
	}
}

func TestDraw3RedrawsDuplicates(t *testing.T) {
	// 5 repeats twice and must be skipped on the second and third draws.
	spread, err := Draw3(&scriptedRNG{seq: []int{5, 5, 12, 5, 12, 40}})
	if err != nil {
		t.Fatalf("Draw3 error: %v", err)
	}
	names := map[string]bool{}
	for _, d := range spread {
		if names[d.Card.Name] {
			t.Fatalf("card %q drawn twice", d.Card.Name)
		}
		names[d.Card.Name] = true
	}
}

func TestDraw3DistinctWithDefaultRNG(t *testing.T) {
	rng := DefaultRNG()
	for i := 0; i < 50; i++ {
		spread, err := Draw3(rng)
		if err != nil {
			t.Fatalf("Draw3 error: %v", err)
		}
		seen := map[string]bool{}
		for _, d := range spread {
			if seen[d.Card.Name] {
				t.Fatalf("iteration %d: card %q drawn twice", i, d.Card.Name)
			}
			seen[d.Card.Name] = true
		}
	}
}

func TestDescribeIncludesNameAndMeaning(t *testing.T) {
	d := Drawn{Position: PositionPast, Card: Card{Name: "The Fool", Meaning: "a leap"}}
	got := d.Describe()
	if got != "The Fool: a leap" {
		t.Errorf("Describe() = %q", got)
	}
}
