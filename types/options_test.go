package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"", Auto, false},
		{"auto", Auto, false},
		{"BINARY", Binary, false},
		{" series ", Series, false},
		{"COUNT", Series, false},
		{"SERIEL", Series, false},
		{"fibonacci", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidPolicy) {
				t.Errorf("error %v is not ErrInvalidPolicy", err)
			}
			if got != tt.want {
				t.Errorf("ParsePolicy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPolicyAcceptsIndices(t *testing.T) {
	if !Auto.AcceptsIndices() || !Policy("").AcceptsIndices() {
		t.Error("Auto must keep supplied indices")
	}
	if Binary.AcceptsIndices() || Series.AcceptsIndices() {
		t.Error("Binary and Series compute their own indices")
	}
}

func TestOptionsMerge(t *testing.T) {
	base := DefaultOptions()

	got := base.Merge(Options{IndexPolicy: Binary, StartOffset: 2})
	want := Options{Cause: CauseDefault, IndexPolicy: Binary, StartOffset: 2, IDTemplate: DefaultIDTemplate}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	if base.IndexPolicy != Auto {
		t.Error("Merge() modified the receiver")
	}

	shifted := Options{IndexPolicy: Series, StartOffset: 5}
	if got := shifted.Merge(Options{StartOffset: 0}); got.StartOffset != 5 {
		t.Errorf("zero StartOffset applied without OffsetSet: %d", got.StartOffset)
	}
	if got := shifted.Merge(Options{StartOffset: 0, OffsetSet: true}); got.StartOffset != 0 {
		t.Errorf("StartOffset = %d, want explicit 0", got.StartOffset)
	}
}

func TestOptionsMergeMap(t *testing.T) {
	base := Options{Cause: CauseDefault, IndexPolicy: Series, StartOffset: 5}

	t.Run("explicit zero offset wins", func(t *testing.T) {
		got, err := base.MergeMap(map[string]any{KeyStartOffset: 0, KeyCause: "type"})
		if err != nil {
			t.Fatalf("MergeMap() error = %v", err)
		}
		if got.StartOffset != 0 || got.Cause != "type" || got.IndexPolicy != Series {
			t.Errorf("MergeMap() = %+v", got)
		}
	})

	t.Run("decoded json numbers", func(t *testing.T) {
		got, err := base.MergeMap(map[string]any{KeyStartOffset: float64(3), KeyIndexPolicy: "binary"})
		if err != nil {
			t.Fatalf("MergeMap() error = %v", err)
		}
		if got.StartOffset != 3 || got.IndexPolicy != Binary {
			t.Errorf("MergeMap() = %+v", got)
		}

		got, err = base.MergeMap(map[string]any{KeyStartOffset: json.Number("7")})
		if err != nil || got.StartOffset != 7 {
			t.Errorf("MergeMap(json.Number) = %+v, %v", got, err)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name string
			m    map[string]any
			want error
		}{
			{"cause not a string", map[string]any{KeyCause: 1}, ErrInvalidOption},
			{"fractional offset", map[string]any{KeyStartOffset: 1.5}, ErrInvalidOption},
			{"unknown policy", map[string]any{KeyIndexPolicy: "random"}, ErrInvalidPolicy},
			{"template not a string", map[string]any{KeyIDTemplate: true}, ErrInvalidOption},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := base.MergeMap(tt.m)
				if !errors.Is(err, tt.want) {
					t.Errorf("MergeMap() error = %v, want %v", err, tt.want)
				}
			})
		}
	})
}
