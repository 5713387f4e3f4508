package deck

import (
	"errors"
	"sort"
	"testing"

	"github.com/lox/blackout/internal/randutil"
)

func TestNewDeckSizeAndUniqueness(t *testing.T) {
	for _, n := range []int{1, 2, 6} {
		cards := New(n, BlackjackValue)
		if len(cards) != 52*n {
			t.Fatalf("New(%d) produced %d cards, want %d", n, len(cards), 52*n)
		}

		ids := make(map[string]bool, len(cards))
		type key struct {
			suit Suit
			rank Rank
		}
		counts := make(map[key]int)
		for _, c := range cards {
			if ids[c.ID] {
				t.Fatalf("duplicate card id %q in %d-deck shoe", c.ID, n)
			}
			ids[c.ID] = true
			counts[key{c.Suit, c.Rank}]++
		}
		if len(counts) != 52 {
			t.Errorf("expected 52 distinct suit/rank pairs, got %d", len(counts))
		}
		for k, v := range counts {
			if v != n {
				t.Errorf("%s%s appears %d times, want %d", k.rank, k.suit.Symbol(), v, n)
			}
		}
	}
}

func TestUnitInvariant(t *testing.T) {
	for _, c := range New(1, BorderlandValue) {
		want := Sips
		if c.Rank == Ace {
			want = Shot
		}
		if c.Unit != want {
			t.Errorf("%s has unit %s, want %s", c, c.Unit, want)
		}
	}
}

func TestValuers(t *testing.T) {
	tests := []struct {
		name  string
		value Valuer
		want  map[Rank]int
	}{
		{"borderland", BorderlandValue, map[Rank]int{Ace: 1, Seven: 7, Ten: 10, Jack: 10, King: 10}},
		{"blackjack", BlackjackValue, map[Rank]int{Ace: 11, Two: 2, Ten: 10, Queen: 10, King: 10}},
		{"ninety-nine", NinetyNineValue, map[Rank]int{Ace: 1, Four: 4, Jack: 11, Queen: 12, King: 13}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for rank, want := range tt.want {
				if got := tt.value(rank); got != want {
					t.Errorf("%s: value(%s) = %d, want %d", tt.name, rank, got, want)
				}
			}
		})
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	original := New(2, BlackjackValue)
	shuffled := Shuffled(original, randutil.New(99))

	if len(shuffled) != len(original) {
		t.Fatalf("length changed: %d != %d", len(shuffled), len(original))
	}

	a := ids(original)
	b := ids(shuffled)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("multiset differs at %d: %s != %s", i, a[i], b[i])
		}
	}

	if original[0].ID != "clubs-A-0" {
		t.Errorf("Shuffled mutated its input: first card %s", original[0].ID)
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	a := Shuffled(New(1, BorderlandValue), randutil.New(7))
	b := Shuffled(New(1, BorderlandValue), randutil.New(7))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded shuffles diverged at %d", i)
		}
	}
}

func TestShuffleWithExhaustedSequenceIsIdentity(t *testing.T) {
	cards := New(1, BorderlandValue)
	shuffled := Shuffled(cards, randutil.NewSequence())
	for i := range cards {
		if cards[i] != shuffled[i] {
			t.Fatalf("expected identity permutation, differs at %d", i)
		}
	}
}

func TestDeckDraw(t *testing.T) {
	d := NewDeck(MustParseCards("AS KD 2C", BorderlandValue))

	first, err := d.Draw()
	if err != nil || first.Rank != Ace || first.Suit != Spades {
		t.Fatalf("Draw() = %v, %v; want A♠", first, err)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}

	if _, err := d.DrawN(3); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("DrawN over length should fail with ErrEmptyDeck, got %v", err)
	}
	if d.Len() != 2 {
		t.Errorf("failed DrawN consumed cards")
	}

	rest, err := d.DrawN(2)
	if err != nil || len(rest) != 2 {
		t.Fatalf("DrawN(2) = %v, %v", rest, err)
	}
	if !d.IsEmpty() {
		t.Error("deck should be empty")
	}
	if _, err := d.Draw(); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("Draw() on empty deck = %v, want ErrEmptyDeck", err)
	}
	if _, ok := d.Peek(); ok {
		t.Error("Peek() on empty deck should report false")
	}
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "mixed", input: "AS 10h td, kc 2D", want: []string{"A♠", "10♥", "10♦", "K♣", "2♦"}},
		{name: "empty string", input: "", want: []string{}},
		{name: "invalid rank", input: "1S", wantErr: true},
		{name: "invalid suit", input: "AX", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input, BorderlandValue)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseCards() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].String() != tt.want[i] {
					t.Errorf("card %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func ids(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
