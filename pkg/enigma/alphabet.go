package enigma

import (
	"slices"
	"unicode/utf8"
)

// maxDenseSpan bounds the code point range served by the dense reverse table.
// Wider alphabets fall back to a sorted table searched by binary search.
const maxDenseSpan = 1 << 12

// Alphabet is an ordered set of distinct symbols. The K-th symbol has index K.
// It is immutable once built and may be shared by any number of permutations,
// rotors and machines.
type Alphabet struct {
	symbols []rune

	// Dense reverse table: dense[r-lo] holds index+1, 0 meaning absent.
	lo    rune
	dense []int32

	// Sparse reverse table, sorted by symbol. Used when dense is nil.
	sorted []symbolIndex
}

type symbolIndex struct {
	r rune
	i int
}

// NewAlphabet returns the alphabet made of the symbols of s, in order.
func NewAlphabet(s string) (*Alphabet, error) {
	if s == "" {
		return nil, newError("NewAlphabet").detail("alphabet is empty").cause(ErrConfigurationInvalid)
	}
	if !utf8.ValidString(s) {
		return nil, newError("NewAlphabet").detail("alphabet is not valid UTF-8").cause(ErrInvalidSymbol)
	}

	symbols := []rune(s)
	lo, hi := symbols[0], symbols[0]
	for _, r := range symbols {
		lo = min(lo, r)
		hi = max(hi, r)
	}

	a := &Alphabet{symbols: symbols, lo: lo}
	if int(hi-lo) < maxDenseSpan {
		a.dense = make([]int32, hi-lo+1)
		for i, r := range symbols {
			if a.dense[r-lo] != 0 {
				return nil, newError("NewAlphabet").symbol(r).cause(ErrDuplicateSymbol)
			}
			a.dense[r-lo] = int32(i + 1)
		}
		return a, nil
	}

	a.sorted = make([]symbolIndex, len(symbols))
	for i, r := range symbols {
		a.sorted[i] = symbolIndex{r: r, i: i}
	}
	slices.SortFunc(a.sorted, func(x, y symbolIndex) int { return int(x.r - y.r) })
	for i := 1; i < len(a.sorted); i++ {
		if a.sorted[i].r == a.sorted[i-1].r {
			return nil, newError("NewAlphabet").symbol(a.sorted[i].r).cause(ErrDuplicateSymbol)
		}
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error. Intended for
// package-level alphabets built from literals.
func MustAlphabet(s string) *Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Size returns the number of symbols.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Contains reports whether r is one of the alphabet's symbols.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.lookup(r)
	return ok
}

// Index returns the index of r.
func (a *Alphabet) Index(r rune) (int, error) {
	i, ok := a.lookup(r)
	if !ok {
		return 0, newError("Index").symbol(r).cause(ErrInvalidSymbol)
	}
	return i, nil
}

// Symbol returns the symbol at index i, where 0 <= i < Size().
func (a *Alphabet) Symbol(i int) (rune, error) {
	if i < 0 || i >= len(a.symbols) {
		return 0, newError("Symbol").detail("index %d not in [0,%d)", i, len(a.symbols)).cause(ErrIndexOutOfRange)
	}
	return a.symbols[i], nil
}

// String returns the symbols in index order.
func (a *Alphabet) String() string {
	return string(a.symbols)
}

func (a *Alphabet) lookup(r rune) (int, bool) {
	if a.dense != nil {
		off := r - a.lo
		if off < 0 || int(off) >= len(a.dense) || a.dense[off] == 0 {
			return 0, false
		}
		return int(a.dense[off]) - 1, true
	}
	pos, ok := slices.BinarySearchFunc(a.sorted, r, func(e symbolIndex, t rune) int { return int(e.r - t) })
	if !ok {
		return 0, false
	}
	return a.sorted[pos].i, true
}

// symbolAt is Symbol without the range check, for indices the engine
// has already wrapped.
func (a *Alphabet) symbolAt(i int) rune {
	return a.symbols[i]
}
