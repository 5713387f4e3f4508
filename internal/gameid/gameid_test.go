package gameid

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerate(t *testing.T) {
	id := Generate()

	if len(id) != 26 {
		t.Errorf("expected 26 characters, got %d", len(id))
	}

	if err := Validate(id); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)

	for range 100 {
		id := Generate()
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	var ids []string
	for range 10 {
		ids = append(ids, Generate())
		time.Sleep(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []uuid.UUID{
		uuid.Nil,
		uuid.Max,
		uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057"),
	}

	for _, u := range tests {
		id := Encode(u)
		if err := Validate(id); err != nil {
			t.Fatalf("Encode(%s)=%q is invalid: %v", u, id, err)
		}
		got, err := Decode(id)
		if err != nil {
			t.Fatalf("Decode(%q): %v", id, err)
		}
		if got != u {
			t.Errorf("round trip %s -> %q -> %s", u, id, got)
		}
	}

	if got := Encode(uuid.Nil); got != strings.Repeat("0", 26) {
		t.Errorf("Encode(Nil)=%q", got)
	}
	if got := Encode(uuid.Max); got[0] != '7' {
		t.Errorf("Encode(Max) starts with %c, want 7", got[0])
	}
}

func TestTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := Generate()

	ts, err := Time(id)
	if err != nil {
		t.Fatalf("Time(%q): %v", id, err)
	}
	if ts.Before(before) || ts.After(time.Now().Add(time.Second)) {
		t.Errorf("embedded time %v is not now", ts)
	}

	if _, err := Time(Encode(uuid.Nil)); err == nil {
		t.Error("expected an error for a non-v7 ID")
	}
}

func TestGeneratorWithReader(t *testing.T) {
	gen := NewGenerator(bytes.NewReader(bytes.Repeat([]byte{0xab}, 64)))

	id, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	u, err := Decode(id)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if u.Version() != 7 {
		t.Errorf("version %d, want 7", u.Version())
	}

	empty := NewGenerator(bytes.NewReader(nil))
	if _, err := empty.Generate(); err == nil {
		t.Error("expected an error from an exhausted reader")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase not allowed", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	if len(alphabet) != 32 {
		t.Errorf("alphabet should have 32 characters, got %d", len(alphabet))
	}

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		if seen[char] {
			t.Errorf("duplicate character in alphabet: %c", char)
		}
		seen[char] = true
	}

	for _, char := range "ilou" {
		if strings.ContainsRune(alphabet, char) {
			t.Errorf("alphabet should not contain %c", char)
		}
	}
}
