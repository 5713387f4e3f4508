// Package prompt holds the text-prompt party games: prompt packs loaded from
// TOML and a shuffled deck that cycles through them.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Kind identifies a prompt game
type Kind string

const (
	NeverHaveIEver Kind = "never-have-i-ever"
	TruthOrDare    Kind = "truth-or-dare"
	WouldYouRather Kind = "would-you-rather"
	MostLikelyTo   Kind = "most-likely-to"
	ItsA10But      Kind = "its-a-10-but"
	SevenSeconds   Kind = "seven-seconds"
)

// Kinds lists every prompt game in hub order
var Kinds = []Kind{NeverHaveIEver, TruthOrDare, WouldYouRather, MostLikelyTo, ItsA10But, SevenSeconds}

// ParseKind resolves a kind name
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("prompt: unknown game %q", s)
}

// Game is one prompt game in a pack. Truth or dare keeps truths and dares
// apart; every other kind uses Prompts.
type Game struct {
	Kind        Kind     `toml:"kind"`
	Title       string   `toml:"title"`
	Description string   `toml:"description,omitempty"`
	Prompts     []string `toml:"prompts,omitempty"`
	Truths      []string `toml:"truths,omitempty"`
	Dares       []string `toml:"dares,omitempty"`
}

// Lines flattens the game into the prompts shown to players
func (g Game) Lines() []string {
	if g.Kind != TruthOrDare {
		return append([]string(nil), g.Prompts...)
	}
	out := make([]string, 0, len(g.Truths)+len(g.Dares))
	for _, t := range g.Truths {
		out = append(out, "TRUTH: "+t)
	}
	for _, d := range g.Dares {
		out = append(out, "DARE: "+d)
	}
	return out
}

// Pack is a set of prompt games
type Pack struct {
	Name  string `toml:"name"`
	Games []Game `toml:"game"`
}

// Game looks up a game by kind
func (p *Pack) Game(k Kind) (Game, bool) {
	for _, g := range p.Games {
		if g.Kind == k {
			return g, true
		}
	}
	return Game{}, false
}

//go:embed default.toml
var defaultPack []byte

// Default returns the built-in pack
func Default() *Pack {
	p, err := Load(bytes.NewReader(defaultPack))
	if err != nil {
		panic(fmt.Sprintf("prompt: embedded pack: %v", err))
	}
	return p
}

// Load decodes a TOML pack. Unknown keys and kinds are rejected.
func Load(r io.Reader) (*Pack, error) {
	var p Pack
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("prompt: decode pack: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("prompt: unknown keys in pack: %v", undecoded)
	}
	for i, g := range p.Games {
		if _, err := ParseKind(string(g.Kind)); err != nil {
			return nil, fmt.Errorf("prompt: game %d: %w", i, err)
		}
		if len(g.Lines()) == 0 {
			return nil, fmt.Errorf("prompt: game %q has no prompts", g.Kind)
		}
	}
	return &p, nil
}

// Encode writes the pack as TOML
func Encode(w io.Writer, p *Pack) error {
	if p == nil {
		return fmt.Errorf("prompt: pack is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(p)
}
