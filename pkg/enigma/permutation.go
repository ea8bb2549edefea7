package enigma

import (
	"strings"
	"unicode"
)

// Permutation is a bijection over the index space of an Alphabet, described
// in cycle notation. Symbols that appear in no cycle map to themselves.
type Permutation struct {
	alphabet *Alphabet
	forward  []int
	inverse  []int
	fixed    int
}

// NewPermutation parses cycles, a string of the form "(cccc) (cc) ...", where
// every c is a symbol of a. Each symbol maps to its successor within its
// cycle and the last symbol of a cycle maps to the first. Whitespace between
// cycles is ignored.
func NewPermutation(cycles string, a *Alphabet) (*Permutation, error) {
	n := a.Size()
	p := &Permutation{
		alphabet: a,
		forward:  make([]int, n),
		inverse:  make([]int, n),
	}
	for i := 0; i < n; i++ {
		p.forward[i] = i
		p.inverse[i] = i
	}

	seen := make([]bool, n)
	var cycle []int
	open := false
	for _, r := range cycles {
		switch {
		case r == '(':
			if open {
				return nil, newError("NewPermutation").subject(cycles).detail("nested '('").cause(ErrMalformedCycle)
			}
			open = true
			cycle = cycle[:0]
		case r == ')':
			if !open {
				return nil, newError("NewPermutation").subject(cycles).detail("unmatched ')'").cause(ErrMalformedCycle)
			}
			open = false
			p.addCycle(cycle)
		case !open && unicode.IsSpace(r):
			// Separator between cycles.
		case !open:
			return nil, newError("NewPermutation").subject(cycles).detail("%q outside a cycle", r).cause(ErrMalformedCycle)
		default:
			i, ok := a.lookup(r)
			if !ok {
				return nil, newError("NewPermutation").subject(cycles).detail("%q not in alphabet", r).cause(ErrMalformedCycle)
			}
			if seen[i] {
				return nil, newError("NewPermutation").subject(cycles).detail("%q appears twice", r).cause(ErrMalformedCycle)
			}
			seen[i] = true
			cycle = append(cycle, i)
		}
	}
	if open {
		return nil, newError("NewPermutation").subject(cycles).detail("unterminated cycle").cause(ErrMalformedCycle)
	}

	for i, v := range p.forward {
		if i == v {
			p.fixed++
		}
	}
	return p, nil
}

// Identity returns the permutation that maps every symbol of a to itself.
func Identity(a *Alphabet) *Permutation {
	p, _ := NewPermutation("", a)
	return p
}

// addCycle adds c0->c1->...->cm->c0 to the permutation.
func (p *Permutation) addCycle(cycle []int) {
	for k, from := range cycle {
		to := cycle[(k+1)%len(cycle)]
		p.forward[from] = to
		p.inverse[to] = from
	}
}

// Size returns the size of the alphabet permuted.
func (p *Permutation) Size() int {
	return len(p.forward)
}

// Alphabet returns the alphabet the permutation was built over.
func (p *Permutation) Alphabet() *Alphabet {
	return p.alphabet
}

// wrap returns i modulo Size(), always in [0, Size()).
func (p *Permutation) wrap(i int) int {
	r := i % len(p.forward)
	if r < 0 {
		r += len(p.forward)
	}
	return r
}

// Permute applies the permutation to index i modulo Size().
func (p *Permutation) Permute(i int) int {
	return p.forward[p.wrap(i)]
}

// Invert applies the inverse permutation to index i modulo Size().
func (p *Permutation) Invert(i int) int {
	return p.inverse[p.wrap(i)]
}

// PermuteSymbol applies the permutation to symbol r.
func (p *Permutation) PermuteSymbol(r rune) (rune, error) {
	i, ok := p.alphabet.lookup(r)
	if !ok {
		return 0, newError("PermuteSymbol").symbol(r).cause(ErrInvalidSymbol)
	}
	return p.alphabet.symbolAt(p.forward[i]), nil
}

// InvertSymbol applies the inverse permutation to symbol r.
func (p *Permutation) InvertSymbol(r rune) (rune, error) {
	i, ok := p.alphabet.lookup(r)
	if !ok {
		return 0, newError("InvertSymbol").symbol(r).cause(ErrInvalidSymbol)
	}
	return p.alphabet.symbolAt(p.inverse[i]), nil
}

// IsDerangement reports whether no symbol maps to itself.
func (p *Permutation) IsDerangement() bool {
	return p.fixed == 0
}

// FixedPoints returns the number of symbols that map to themselves.
func (p *Permutation) FixedPoints() int {
	return p.fixed
}

// IsInvolution reports whether the permutation is its own inverse, i.e. it is
// made only of swaps and fixed points.
func (p *Permutation) IsInvolution() bool {
	for i, v := range p.forward {
		if p.forward[v] != i {
			return false
		}
	}
	return true
}

// String returns the permutation in canonical cycle notation: each cycle
// starts at its lowest index, cycles are ordered by that index and fixed
// points are omitted.
func (p *Permutation) String() string {
	var b strings.Builder
	visited := make([]bool, len(p.forward))
	for start := range p.forward {
		if visited[start] || p.forward[start] == start {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('(')
		for i := start; !visited[i]; i = p.forward[i] {
			visited[i] = true
			b.WriteRune(p.alphabet.symbolAt(i))
		}
		b.WriteByte(')')
	}
	return b.String()
}
