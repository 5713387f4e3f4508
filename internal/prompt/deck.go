package prompt

import "github.com/lox/blackout/internal/randutil"

// Deck cycles through a shuffled copy of a game's prompts, reshuffling each
// time it wraps around.
type Deck struct {
	lines []string
	pos   int
	src   randutil.Source
}

// NewDeck shuffles lines into a new deck
func NewDeck(lines []string, src randutil.Source) *Deck {
	d := &Deck{lines: append([]string(nil), lines...), src: src}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	for i := len(d.lines) - 1; i > 0; i-- {
		j := d.src.IntN(i + 1)
		d.lines[i], d.lines[j] = d.lines[j], d.lines[i]
	}
	d.pos = 0
}

// Current is the prompt on top
func (d *Deck) Current() string {
	if len(d.lines) == 0 {
		return ""
	}
	return d.lines[d.pos]
}

// Next moves to the following prompt and returns it
func (d *Deck) Next() string {
	if len(d.lines) == 0 {
		return ""
	}
	d.pos++
	if d.pos >= len(d.lines) {
		d.shuffle()
	}
	return d.lines[d.pos]
}

// Position returns the 1-based index of the current prompt and the deck size
func (d *Deck) Position() (int, int) {
	return d.pos + 1, len(d.lines)
}
