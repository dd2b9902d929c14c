package testutil

import (
	"testing"

	"github.com/arthur-debert/nanoenum/types"
)

func TestLoadFleet(t *testing.T) {
	engine, fleet := LoadFleet(t)

	if engine == nil {
		t.Fatal("engine should not be nil")
	}
	if len(fleet.ByName) != 3 {
		t.Fatalf("expected 3 enumerations, got %d", len(fleet.ByName))
	}

	for name, enum := range fleet.ByName {
		got, ok := engine.Lookup(name)
		if !ok || got != enum {
			t.Errorf("%s is not registered on the engine", name)
		}
		if enum.Cause() != types.CauseJSON {
			t.Errorf("%s cause = %q, want %q", name, enum.Cause(), types.CauseJSON)
		}
		AssertIDsAscending(t, enum)
	}

	if fleet.Galaxy.Policy() != types.Binary || fleet.Galaxy.StartOffset() != 2 {
		t.Errorf("Galaxy = %s/%d, want BINARY/2", fleet.Galaxy.Policy(), fleet.Galaxy.StartOffset())
	}
	if fleet.Rank.Policy() != types.Series || fleet.Rank.StartOffset() != 1 {
		t.Errorf("Rank = %s/%d, want SERIES/1", fleet.Rank.Policy(), fleet.Rank.StartOffset())
	}
	if fleet.Alert.Policy() != types.Auto {
		t.Errorf("Alert policy = %s, want AUTO", fleet.Alert.Policy())
	}

	t.Logf("Loaded %d enumerations", len(fleet.ByName))
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewSeededGenerator(9).Sequence(3, "")
	b := NewSeededGenerator(9).Sequence(3, "")
	for a.Remaining() > 0 {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("seeded sequences diverged: %s != %s", x, y)
		}
	}
}
