package enigma

import (
	"errors"
	"fmt"
	"testing"
)

// checkPerm verifies that p maps every symbol of from to the symbol at the
// same position in to, in both the symbol and the index domain.
func checkPerm(t *testing.T, p *Permutation, from, to string) {
	t.Helper()
	if p.Size() != len(from) {
		t.Fatalf("Size() = %d, want %d", p.Size(), len(from))
	}
	a := p.Alphabet()
	for i := 0; i < len(from); i++ {
		c, e := rune(from[i]), rune(to[i])
		if got, err := p.PermuteSymbol(c); err != nil || got != e {
			t.Errorf("PermuteSymbol(%q) = %q, %v, want %q", c, got, err, e)
		}
		if got, err := p.InvertSymbol(e); err != nil || got != c {
			t.Errorf("InvertSymbol(%q) = %q, %v, want %q", e, got, err, c)
		}
		ci, _ := a.Index(c)
		ei, _ := a.Index(e)
		if got := p.Permute(ci); got != ei {
			t.Errorf("Permute(%d) = %d, want %d", ci, got, ei)
		}
		if got := p.Invert(ei); got != ci {
			t.Errorf("Invert(%d) = %d, want %d", ei, got, ci)
		}
	}
}

func TestPermutationIdentity(t *testing.T) {
	p := newTestPermutation(t, "", MustAlphabet(upper))
	checkPerm(t, p, upper, upper)
	if p.IsDerangement() {
		t.Error("identity IsDerangement() = true")
	}
	if p.FixedPoints() != 26 {
		t.Errorf("FixedPoints() = %d, want 26", p.FixedPoints())
	}
	if s := p.String(); s != "" {
		t.Errorf("String() = %q, want empty", s)
	}
	if q := Identity(p.Alphabet()); q.String() != "" || q.Size() != 26 {
		t.Errorf("Identity() = %q size %d", q.String(), q.Size())
	}
}

func TestPermutationSmallAlphabet(t *testing.T) {
	a := MustAlphabet("ABCD")
	p := newTestPermutation(t, "(BACD)", a)

	checkPerm(t, p, "ABCD", "CADB")

	if got, _ := p.InvertSymbol('A'); got != 'B' {
		t.Errorf("InvertSymbol('A') = %q, want 'B'", got)
	}
	if got, _ := p.InvertSymbol('B'); got != 'D' {
		t.Errorf("InvertSymbol('B') = %q, want 'D'", got)
	}
	if got, _ := p.PermuteSymbol('A'); got != 'C' {
		t.Errorf("PermuteSymbol('A') = %q, want 'C'", got)
	}
	if got, _ := p.PermuteSymbol('D'); got != 'B' {
		t.Errorf("PermuteSymbol('D') = %q, want 'B'", got)
	}
	if got := p.Invert(2); got != 0 {
		t.Errorf("Invert(2) = %d, want 0", got)
	}
	if got := p.Invert(1); got != 3 {
		t.Errorf("Invert(1) = %d, want 3", got)
	}
	if got := p.Permute(3); got != 1 {
		t.Errorf("Permute(3) = %d, want 1", got)
	}
	if got := p.Permute(2); got != 3 {
		t.Errorf("Permute(2) = %d, want 3", got)
	}
	if !p.IsDerangement() {
		t.Error("IsDerangement() = false")
	}

	g := newTestPermutation(t, "(BACD)", MustAlphabet(upper))
	if g.Size() != 26 {
		t.Errorf("Size() = %d, want 26", g.Size())
	}
}

func TestPermutationWrapsIndices(t *testing.T) {
	p := newTestPermutation(t, "(BACD)", MustAlphabet("ABCD"))
	for _, i := range []int{-8, -4, 0, 4, 8, 400} {
		if got := p.Permute(i); got != p.Permute(0) {
			t.Errorf("Permute(%d) = %d, want %d", i, got, p.Permute(0))
		}
	}
	if got := p.Permute(-1); got != p.Permute(3) {
		t.Errorf("Permute(-1) = %d, want %d", got, p.Permute(3))
	}
	if got := p.Invert(6); got != p.Invert(2) {
		t.Errorf("Invert(6) = %d, want %d", got, p.Invert(2))
	}
}

func TestPermutationWhitespaceAndAdjacency(t *testing.T) {
	a := MustAlphabet(upper)
	spaced := newTestPermutation(t, "  (AB)   (CDE)\n\t(F) ", a)
	packed := newTestPermutation(t, "(AB)(CDE)(F)()", a)
	for i := 0; i < a.Size(); i++ {
		if spaced.Permute(i) != packed.Permute(i) || spaced.Invert(i) != packed.Invert(i) {
			t.Fatalf("index %d differs: %d/%d vs %d/%d", i,
				spaced.Permute(i), spaced.Invert(i), packed.Permute(i), packed.Invert(i))
		}
	}
	if s := packed.String(); s != "(AB) (CDE)" {
		t.Errorf("String() = %q, want %q", s, "(AB) (CDE)")
	}
}

func TestPermutationMalformed(t *testing.T) {
	a := MustAlphabet("ABCD")
	tests := []string{
		"(AB",
		"AB)",
		"(AB))",
		"((AB)",
		"(AE)",
		"(A B)",
		"A(BC)",
		"(AB) x",
		"(AB)(BC)",
		"(AA)",
	}

	for _, cycles := range tests {
		t.Run(cycles, func(t *testing.T) {
			_, err := NewPermutation(cycles, a)
			if !errors.Is(err, ErrMalformedCycle) {
				t.Errorf("NewPermutation(%q) error = %v, want ErrMalformedCycle", cycles, err)
			}
		})
	}
}

func TestPermutationSymbolErrors(t *testing.T) {
	p := newTestPermutation(t, "(AB)", MustAlphabet("ABCD"))
	if _, err := p.PermuteSymbol('Z'); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("PermuteSymbol('Z') error = %v, want ErrInvalidSymbol", err)
	}
	if _, err := p.InvertSymbol('Z'); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("InvertSymbol('Z') error = %v, want ErrInvalidSymbol", err)
	}
}

func TestPermutationDerangementAndInvolution(t *testing.T) {
	a := MustAlphabet(upper)
	tests := []struct {
		cycles      string
		derangement bool
		involution  bool
	}{
		{"", false, true},
		{"(AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP) (RX) (SZ) (TV)", true, true},
		{"(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ)", false, false},
		{"(ABCDEFGHIJKLMNOPQRSTUVWXYZ)", true, false},
		{"(AB) (CD)", false, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.cycles), func(t *testing.T) {
			p := newTestPermutation(t, tt.cycles, a)
			if got := p.IsDerangement(); got != tt.derangement {
				t.Errorf("IsDerangement() = %v, want %v", got, tt.derangement)
			}
			if got := p.IsInvolution(); got != tt.involution {
				t.Errorf("IsInvolution() = %v, want %v", got, tt.involution)
			}
			if tt.derangement != (p.FixedPoints() == 0) {
				t.Errorf("FixedPoints() = %d inconsistent with derangement %v", p.FixedPoints(), tt.derangement)
			}
		})
	}
}

func TestPermutationInverseLaw(t *testing.T) {
	a := MustAlphabet(upper)
	for _, def := range historicalRotors {
		p := newTestPermutation(t, def.cycles, a)
		for i := 0; i < a.Size(); i++ {
			if got := p.Invert(p.Permute(i)); got != i {
				t.Errorf("%s: Invert(Permute(%d)) = %d", def.name, i, got)
			}
			if got := p.Permute(p.Invert(i)); got != i {
				t.Errorf("%s: Permute(Invert(%d)) = %d", def.name, i, got)
			}
		}
		// Canonical notation parses back to the same permutation.
		q := newTestPermutation(t, p.String(), a)
		for i := 0; i < a.Size(); i++ {
			if p.Permute(i) != q.Permute(i) {
				t.Errorf("%s: String() %q does not round trip at %d", def.name, p.String(), i)
			}
		}
	}
}
