package ids

import (
	"errors"
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
	"testing"
)

func seeded(seed byte) *RandomGenerator {
	var s [32]byte
	s[0] = seed
	return NewWithReader(rand.NewChaCha8(s))
}

func TestNextIDTemplate(t *testing.T) {
	g := seeded(1)

	tests := []struct {
		name     string
		template string
		pattern  string
	}{
		{"default", "", `^[0-9A-F]{4}-7[0-9A-F]{2}5-[0-9A-F]{3}6-4[0-9A-F]{3}-6[0-9A-F]{4}-[0-9A-F]{4}$`},
		{"nibbles", "nnn", `^[0-9A-F]{3}$`},
		{"fixed text is kept", "b-SbS-nnb-ENUM/8-w", `^[0-9A-F]{2}-S[0-9A-F]{2}S-[0-9A-F]{4}-ENUM/8-[0-9A-F]{4}$`},
		{"no placeholders", "ENUM", `^ENUM$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.NextID(tt.template)
			if !regexp.MustCompile(tt.pattern).MatchString(got) {
				t.Errorf("NextID(%q) = %q, want match for %s", tt.template, got, tt.pattern)
			}
		})
	}
}

func TestNextIDIsUpperCase(t *testing.T) {
	g := New()
	for i := 0; i < 50; i++ {
		id := g.NextID("")
		if id != strings.ToUpper(id) {
			t.Fatalf("NextID() = %q, not upper-cased", id)
		}
	}
}

func TestSequenceAscends(t *testing.T) {
	sizes := []int{0, 1, 3, 100, widePrefixThreshold, widePrefixThreshold + 1}

	for _, n := range sizes {
		seq := seeded(7).Sequence(n, "w")
		if seq.Remaining() != n {
			t.Fatalf("Remaining() = %d, want %d", seq.Remaining(), n)
		}

		got := make([]string, 0, n)
		for seq.Remaining() > 0 {
			got = append(got, seq.Next())
		}

		if !sort.StringsAreSorted(got) {
			t.Errorf("sequence of %d is not ascending", n)
		}
		seen := make(map[string]bool, n)
		for _, id := range got {
			if seen[id] {
				t.Fatalf("sequence of %d repeated %q", n, id)
			}
			seen[id] = true
		}
		if next := seq.Next(); next != "" {
			t.Errorf("exhausted sequence returned %q", next)
		}
	}
}

func TestSequencePrefixWidth(t *testing.T) {
	short := seeded(3).Sequence(2, "w").Next()
	if !regexp.MustCompile(`^[0-9A-F]{4}-[0-9A-F]{4}$`).MatchString(short) {
		t.Errorf("short sequence id = %q", short)
	}

	wide := seeded(3).Sequence(widePrefixThreshold+1, "w").Next()
	if !regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{4}$`).MatchString(wide) {
		t.Errorf("wide sequence id = %q", wide)
	}
}

func TestSeededGeneratorIsReproducible(t *testing.T) {
	a := seeded(42).NextID("")
	b := seeded(42).NextID("")
	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestFailingSourcePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic from failing source")
		}
	}()
	NewWithReader(failingReader{}).NextID("w")
}
