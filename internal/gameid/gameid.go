// Package gameid mints session identifiers: a UUIDv7 rendered as 26 lowercase
// Crockford base32 characters, so IDs sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const encodedLen = 26

// Generator mints IDs, optionally from a fixed randomness source
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto randomness.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new ID
func (g *Generator) Generate() (string, error) {
	var (
		u   uuid.UUID
		err error
	)
	if g.rand != nil {
		u, err = uuid.NewV7FromReader(g.rand)
	} else {
		u, err = uuid.NewV7()
	}
	if err != nil {
		return "", fmt.Errorf("gameid: %w", err)
	}
	return Encode(u), nil
}

// Generate creates a new ID from crypto randomness. It panics if the system
// randomness source fails.
func Generate() string {
	id, err := NewGenerator(nil).Generate()
	if err != nil {
		panic(err)
	}
	return id
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are left padded
// with two zero bits so the first character is always 0-7.
func Encode(u uuid.UUID) string {
	var sb strings.Builder
	sb.Grow(encodedLen)
	for i := range encodedLen {
		var v byte
		for k := range 5 {
			v <<= 1
			b := i*5 + k - 2
			if b >= 0 {
				v |= (u[b/8] >> (7 - b%8)) & 1
			}
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Decode parses an ID back into its UUID
func Decode(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if err := Validate(id); err != nil {
		return u, err
	}
	for i := range encodedLen {
		v := byte(strings.IndexByte(alphabet, id[i]))
		for k := range 5 {
			b := i*5 + k - 2
			if b < 0 {
				continue
			}
			if v&(1<<(4-k)) != 0 {
				u[b/8] |= 1 << (7 - b%8)
			}
		}
	}
	return u, nil
}

// Time returns the creation time embedded in an ID
func Time(id string) (time.Time, error) {
	u, err := Decode(id)
	if err != nil {
		return time.Time{}, err
	}
	if u.Version() != 7 {
		return time.Time{}, fmt.Errorf("gameid: %s is not a UUIDv7", id)
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec), nil
}

// Validate checks if an ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != encodedLen {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", encodedLen, len(id))
	}

	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}
