package nanoenum

import (
	"math/bits"

	"github.com/arthur-debert/nanoenum/internal/validation"
	"github.com/arthur-debert/nanoenum/types"
)

const maxExponent = validation.MaxExponent

// Classification is the index policy inferred from a sequence of indices
type Classification struct {
	Policy      types.Policy
	StartOffset int
}

// Classify infers the index policy of indices in a single pass.
//
// A strictly increasing run of single bits that is not also a run of
// consecutive integers is BINARY, offset by the exponent of its first bit.
// A strictly increasing run of consecutive integers that is not also binary
// is SERIES, offset by its first value. Everything else, including any
// sequence holding a negative value, is AUTO with offset 0.
// [0 1 2] is both binary and stepping, so it stays AUTO.
func Classify(indices []int) Classification {
	auto := Classification{Policy: types.Auto}
	if len(indices) == 0 || indices[0] < 0 {
		return auto
	}

	first := indices[0]
	increasing, stepping, binary := true, true, true

	// Zero is binary-compatible: the next bit expected is 1
	exponent := 0
	if first > 0 {
		exponent = bits.TrailingZeros(uint(first))
		binary = first == 1<<exponent
	}
	shift := exponent

	for i := 1; i < len(indices); i++ {
		prev, cur := indices[i-1], indices[i]
		if cur <= prev {
			increasing = false
			break
		}
		if cur-prev != 1 {
			stepping = false
		}
		if binary {
			if prev != 0 {
				shift++
			}
			binary = shift <= maxExponent && cur == 1<<shift
		}
	}

	switch {
	case increasing && binary && !stepping:
		return Classification{Policy: types.Binary, StartOffset: exponent}
	case increasing && !binary && stepping:
		return Classification{Policy: types.Series, StartOffset: first}
	}
	return auto
}
