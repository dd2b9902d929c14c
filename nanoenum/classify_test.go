package nanoenum

import (
	"testing"

	"github.com/arthur-debert/nanoenum/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		indices []int
		want    Classification
	}{
		{[]int{1, 2, 4, 8, 16}, Classification{types.Binary, 0}},
		{[]int{4, 8, 16, 32, 64}, Classification{types.Binary, 2}},
		{[]int{0, 1, 2, 4, 8, 16}, Classification{types.Binary, 0}},
		{[]int{1024, 2048}, Classification{types.Binary, 10}},
		{[]int{0, 1, 2, 3, 4, 5, 6}, Classification{types.Series, 0}},
		{[]int{5, 6, 7, 8, 9, 10}, Classification{types.Series, 5}},
		{[]int{3, 4, 5}, Classification{types.Series, 3}},
		{[]int{0, 2, 3, 40}, Classification{types.Auto, 0}},
		{[]int{-3, 4, 2, 3, 5}, Classification{types.Auto, 0}},
		{[]int{-1, 0, 1}, Classification{types.Auto, 0}},
		{[]int{4, 6, 8, 10, 12, 14}, Classification{types.Auto, 0}},
		{[]int{0, 1, 2, 1, 3}, Classification{types.Auto, 0}},
		{[]int{8, 4, 2}, Classification{types.Auto, 0}},
		// Both binary and stepping
		{[]int{0, 1, 2}, Classification{types.Auto, 0}},
		{[]int{1, 2}, Classification{types.Auto, 0}},
		{[]int{0}, Classification{types.Auto, 0}},
		// A lone non-power of two is a series starting at itself
		{[]int{7}, Classification{types.Series, 7}},
		{nil, Classification{types.Auto, 0}},
	}

	for _, tt := range tests {
		got := Classify(tt.indices)
		if got != tt.want {
			t.Errorf("Classify(%v) = %+v, want %+v", tt.indices, got, tt.want)
		}
	}
}

func TestClassifyExhaustiveOffsets(t *testing.T) {
	for offset := 0; offset < 200; offset++ {
		series := []int{offset, offset + 1, offset + 2, offset + 3}
		got := Classify(series)
		if got.Policy != types.Series || got.StartOffset != offset {
			t.Errorf("Classify(%v) = %+v, want SERIES/%d", series, got, offset)
		}
	}

	for exp := 0; exp <= maxExponent-3; exp++ {
		binary := []int{1 << exp, 1 << (exp + 1), 1 << (exp + 2), 1 << (exp + 3)}
		got := Classify(binary)
		if got.Policy != types.Binary || got.StartOffset != exp {
			t.Errorf("Classify(%v) = %+v, want BINARY/%d", binary, got, exp)
		}
	}
}
