package shape

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanoenum/types"
)

func explicit(pairs ...any) []types.Entry {
	out := []types.Entry{}
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, types.Entry{Name: pairs[i].(string), Index: pairs[i+1].(int), Explicit: true})
	}
	return out
}

func TestNormalizeShapeEquivalence(t *testing.T) {
	want := explicit("Enterprise", 3, "Yamato", 5, "Odyssey", 7)

	shapes := []struct {
		name  string
		shape Shape
	}{
		{"MapOf", NewMap().Set("Enterprise", 3).Set("Yamato", 5).Set("Odyssey", 7)},
		{"PairList", PairList{{"Enterprise", 3}, {"Yamato", 5}, {"Odyssey", 7}}},
		{"IndexObject", IndexObject{"Odyssey": 7, "Enterprise": 3, "Yamato": 5}},
		{"IndexIDObject", IndexIDObject{{"Enterprise", 3, ""}, {"Yamato", 5, ""}, {"Odyssey", 7, ""}}},
	}

	for _, tt := range shapes {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(want, Normalize(tt.shape)); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("positional shapes", func(t *testing.T) {
		want := []types.Entry{
			{Name: "Enterprise", Index: 0},
			{Name: "Yamato", Index: 1},
			{Name: "Odyssey", Index: 2},
		}
		for _, s := range []Shape{
			StringList{"Enterprise", "Yamato", "Odyssey"},
			NewSet("Enterprise", "Yamato", "Odyssey", "Yamato"),
		} {
			if diff := cmp.Diff(want, Normalize(s)); diff != "" {
				t.Errorf("Normalize(%T) mismatch (-want +got):\n%s", s, diff)
			}
		}
	})

	t.Run("all six shapes agree on names and indices", func(t *testing.T) {
		names := []string{"Enterprise", "Yamato", "Odyssey"}
		all := []Shape{
			StringList(names),
			NewSet(names...),
			NewMap().Set("Enterprise", 0).Set("Yamato", 1).Set("Odyssey", 2),
			PairList{{"Enterprise", 0}, {"Yamato", 1}, {"Odyssey", 2}},
			IndexObject{"Enterprise": 0, "Yamato": 1, "Odyssey": 2},
			IndexIDObject{{"Enterprise", 0, ""}, {"Yamato", 1, ""}, {"Odyssey", 2, ""}},
		}
		ignoreExplicit := cmp.FilterPath(func(p cmp.Path) bool {
			return p.Last().String() == ".Explicit"
		}, cmp.Ignore())
		reference := Normalize(all[0])
		for _, s := range all[1:] {
			if diff := cmp.Diff(reference, Normalize(s), ignoreExplicit); diff != "" {
				t.Errorf("Normalize(%T) differs from StringList (-want +got):\n%s", s, diff)
			}
		}
	})
}

func TestNormalizeDropsInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  []types.Entry
	}{
		{
			name:  "leading digit and space are dropped, positions kept",
			shape: StringList{"Alpha", "1st", " Beta", "Gamma"},
			want:  []types.Entry{{Name: "Alpha", Index: 0}, {Name: "Gamma", Index: 3}},
		},
		{
			name:  "negative index dropped",
			shape: PairList{{"Alpha", -1}, {"Beta", 2}},
			want:  explicit("Beta", 2),
		},
		{
			name:  "empty name dropped",
			shape: IndexObject{"": 1, "Beta": 2},
			want:  explicit("Beta", 2),
		},
		{
			name:  "everything dropped yields empty list",
			shape: PairList{{"9lives", 1}, {"\tTab", 2}},
			want:  []types.Entry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.shape)
			if got == nil {
				t.Fatal("Normalize() returned nil")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse(t *testing.T) {
	pairs := explicit("Enterprise", 3, "Yamato", 5, "Odyssey", 7)
	names := []types.Entry{
		{Name: "Enterprise", Index: 0},
		{Name: "Yamato", Index: 1},
		{Name: "Odyssey", Index: 2},
	}

	tests := []struct {
		name  string
		label []any
		want  []types.Entry
	}{
		{"string slice", []any{[]string{"Enterprise", "Yamato", "Odyssey"}}, names},
		{"any slice of strings", []any{[]any{"Enterprise", "Yamato", "Odyssey"}}, names},
		{"set", []any{NewSet("Enterprise", "Yamato", "Odyssey")}, names},
		{"map of struct{}", []any{map[string]struct{}{"Enterprise": {}, "Odyssey": {}, "Yamato": {}}},
			[]types.Entry{{Name: "Enterprise", Index: 0}, {Name: "Odyssey", Index: 1}, {Name: "Yamato", Index: 2}}},
		{"ordered map", []any{NewMap().Set("Enterprise", 3).Set("Yamato", 5).Set("Odyssey", 7)}, pairs},
		{"pair rows", []any{[][]any{{"Enterprise", 3}, {"Yamato", 5}, {"Odyssey", 7}}}, pairs},
		{"typed pairs", []any{[]Pair{{"Enterprise", 3}, {"Yamato", 5}, {"Odyssey", 7}}}, pairs},
		{"map of int", []any{map[string]int{"Enterprise": 3, "Yamato": 5, "Odyssey": 7}}, pairs},
		{"map of numeric strings", []any{map[string]any{"Enterprise": "3", "Yamato": 5, "Odyssey": float64(7)}}, pairs},
		{"one extra nesting level is stripped", []any{[]any{[]any{[]any{"Enterprise", 3}, []any{"Yamato", 5}, []any{"Odyssey", 7}}}}, pairs},
		{"wrapped name list", []any{[]any{[]string{"Enterprise", "Yamato", "Odyssey"}}}, names},
		{"single-element rows", []any{[]any{[]any{"Enterprise"}, []any{"Yamato"}, []any{"Odyssey"}}}, names},
		{"wrapped object", []any{[]any{map[string]any{"Enterprise": 3, "Yamato": 5, "Odyssey": 7}}}, pairs},
		{"empty list", []any{[]any{}}, []types.Entry{}},
		{"digit string after a name is a name", []any{[]any{[]any{"Alpha", "1"}}}, []types.Entry{{Name: "Alpha", Index: 0}}},
		{"later pair rows accept digit strings", []any{[][]any{{"Alpha", 1}, {"Beta", "2"}}}, explicit("Alpha", 1, "Beta", 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.label...)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, Normalize(s)); diff != "" {
				t.Errorf("Parse() entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToIndexBounds(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{3, 3, true},
		{-1, 0, false},
		{uint(7), 7, true},
		{uint(math.MaxUint), 0, false},
		{uint64(math.MaxUint64), 0, false},
		{float32(16), 16, true},
		{float32(1 << 30), 0, false},
		{float32(2.5), 0, false},
		{float64(1 << 30), 1 << 30, true},
		{float64(1 << 60), 0, false},
		{"12", 12, true},
		{"-12", 0, false},
		{"1e3", 0, false},
	}

	for _, tt := range tests {
		got, ok := toIndex(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("toIndex(%T %v) = %d, %v, want %d, %v", tt.in, tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseSerializedMembers(t *testing.T) {
	var label any
	raw := `[{"Enterprise":[4,"0A11-AAAA"]},{"Yamato":[8,"0B22-BBBB"]},{"Odyssey":[16,"0C33-CCCC"]}]`
	if err := json.Unmarshal([]byte(raw), &label); err != nil {
		t.Fatal(err)
	}

	s, err := Parse(label)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := s.(IndexIDObject); !ok {
		t.Fatalf("Parse() = %T, want IndexIDObject", s)
	}

	want := []types.Entry{
		{Name: "Enterprise", Index: 4, ID: "0A11-AAAA", Explicit: true},
		{Name: "Yamato", Index: 8, ID: "0B22-BBBB", Explicit: true},
		{Name: "Odyssey", Index: 16, ID: "0C33-CCCC", Explicit: true},
	}
	if diff := cmp.Diff(want, Normalize(s)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	t.Run("object form is ordered by index", func(t *testing.T) {
		s, err := Parse(map[string]any{
			"Yamato":     []any{8, "B"},
			"Enterprise": []any{4, "A"},
			"Broken":     []any{"x", "C"},
		})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		want := []types.Entry{
			{Name: "Enterprise", Index: 4, ID: "A", Explicit: true},
			{Name: "Yamato", Index: 8, ID: "B", Explicit: true},
		}
		if diff := cmp.Diff(want, Normalize(s)); diff != "" {
			t.Errorf("entries mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestParseTypeConflict(t *testing.T) {
	tests := []struct {
		name  string
		label []any
	}{
		{"nothing", nil},
		{"lone strings", []any{"Enterprise", "Yamato"}},
		{"single lone string", []any{"Enterprise"}},
		{"two containers", []any{[]string{"a"}, []string{"b"}}},
		{"map with non-string keys", []any{map[any]int{"Enterprise": 3}}},
		{"list of functions", []any{[]any{func() int { return 4 }, func() int { return 8 }}}},
		{"list of numbers", []any{[]int{4, 8, 16}}},
		{"nested twice", []any{[]any{[]any{[]any{[]any{"a", 1}}}}}},
		{"several name lists", []any{[]any{[]any{"a", "b", "c"}, []any{"d", "e", "f"}}}},
		{"nil", []any{nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.label...)
			if !errors.Is(err, ErrTypeConflict) {
				t.Errorf("Parse() error = %v, want ErrTypeConflict", err)
			}
		})
	}
}

func TestSetAndMapHelpers(t *testing.T) {
	s := NewSet("a", "b")
	if s.Add("a") {
		t.Error("Add() of a present name reported a change")
	}
	if !s.Add("c") || s.Len() != 3 || !s.Has("c") {
		t.Errorf("set = %v", s.Items())
	}

	m := NewMap().Set("x", 1).Set("y", 2).Set("x", 9)
	if diff := cmp.Diff([]string{"x", "y"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("x"); v != 9 {
		t.Errorf("Get(x) = %d, want 9", v)
	}
}
