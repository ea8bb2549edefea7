package enigma

import (
	"fmt"
	"strings"
)

// Kind identifies a rotor variant.
type Kind int

const (
	// KindReflector never rotates and turns the signal back through the stack.
	KindReflector Kind = iota
	// KindFixed never rotates and has no ratchet.
	KindFixed
	// KindMoving advances under a pawl and may engage its left neighbour at a notch.
	KindMoving
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindReflector:
		return "reflector"
	case KindFixed:
		return "fixed"
	case KindMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// Code returns the single-letter code used by the text configuration format.
func (k Kind) Code() byte {
	switch k {
	case KindReflector:
		return 'R'
	case KindFixed:
		return 'N'
	default:
		return 'M'
	}
}

// ParseKind accepts either a configuration code (M, N, R) or a kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "r", "reflector":
		return KindReflector, nil
	case "n", "fixed":
		return KindFixed, nil
	case "m", "moving":
		return KindMoving, nil
	default:
		return 0, newError("ParseKind").subject(s).cause(ErrConfigurationInvalid)
	}
}

// Rotor is a wheel with fixed wiring and a rotational offset (its setting).
// The set of variants is closed: *Reflector, *FixedRotor and *MovingRotor.
//
// Rotors are not safe for concurrent use. A rotor inserted into a Machine is
// mutated by it, so two machines must not share rotor values concurrently.
type Rotor interface {
	// Name identifies the rotor within an inventory.
	Name() string
	Kind() Kind
	Alphabet() *Alphabet
	// Permutation returns the wiring at setting 0.
	Permutation() *Permutation
	// Setting returns the current offset in [0, Size()).
	Setting() int
	// Set changes the offset to posn.
	Set(posn int) error
	// SetSymbol changes the offset to the index of r.
	SetSymbol(r rune) error
	// Window returns the symbol showing at the current setting.
	Window() rune
	// Rotates reports whether the rotor can advance.
	Rotates() bool
	// AtNotch reports whether the rotor sits at one of its notches.
	AtNotch() bool
	// Advance moves the rotor one position. It panics on a non-rotating rotor.
	Advance()
	// ConvertForward maps contact c through the wiring right to left.
	ConvertForward(c int) int
	// ConvertBackward maps contact c through the inverse wiring left to right.
	ConvertBackward(c int) int

	sealed()
}

// wheel holds the state shared by every rotor variant.
type wheel struct {
	name    string
	perm    *Permutation
	setting int
}

func (w *wheel) Name() string              { return w.name }
func (w *wheel) Alphabet() *Alphabet       { return w.perm.alphabet }
func (w *wheel) Permutation() *Permutation { return w.perm }
func (w *wheel) Setting() int              { return w.setting }
func (w *wheel) Window() rune              { return w.perm.alphabet.symbolAt(w.setting) }
func (w *wheel) Rotates() bool             { return false }
func (w *wheel) AtNotch() bool             { return false }
func (w *wheel) sealed()                   {}

func (w *wheel) Set(posn int) error {
	if posn < 0 || posn >= w.perm.Size() {
		return newError("Set").subject(w.name).detail("setting %d not in [0,%d)", posn, w.perm.Size()).cause(ErrIndexOutOfRange)
	}
	w.setting = posn
	return nil
}

func (w *wheel) SetSymbol(r rune) error {
	i, ok := w.perm.alphabet.lookup(r)
	if !ok {
		return newError("SetSymbol").subject(w.name).detail("%q not in alphabet", r).cause(ErrInvalidSymbol)
	}
	w.setting = i
	return nil
}

func (w *wheel) Advance() {
	panic(fmt.Sprintf("enigma: Advance called on non-rotating rotor %q", w.name))
}

func (w *wheel) ConvertForward(c int) int {
	n := w.perm.Size()
	return w.perm.wrap(w.perm.Permute(c+w.setting) - w.setting + n)
}

func (w *wheel) ConvertBackward(c int) int {
	n := w.perm.Size()
	return w.perm.wrap(w.perm.Invert(c+w.setting) - w.setting + n)
}

// MovingRotor is a rotor with a ratchet; it advances under a pawl and carries
// one or more notches.
type MovingRotor struct {
	wheel
	notches []bool
	labels  string
}

// NewMovingRotor returns a moving rotor named name with wiring perm at
// setting 0 and notches at the positions of the symbols in notches.
func NewMovingRotor(name string, perm *Permutation, notches string) (*MovingRotor, error) {
	r := &MovingRotor{
		wheel:   wheel{name: name, perm: perm},
		notches: make([]bool, perm.Size()),
		labels:  notches,
	}
	for _, sym := range notches {
		i, ok := perm.alphabet.lookup(sym)
		if !ok {
			return nil, newError("NewMovingRotor").subject(name).detail("notch %q not in alphabet", sym).cause(ErrInvalidSymbol)
		}
		r.notches[i] = true
	}
	return r, nil
}

// Kind returns KindMoving.
func (r *MovingRotor) Kind() Kind { return KindMoving }

// Rotates returns true.
func (r *MovingRotor) Rotates() bool { return true }

// AtNotch reports whether the current setting is one of the notches.
func (r *MovingRotor) AtNotch() bool { return r.notches[r.setting] }

// Notches returns the notch symbols as given at construction.
func (r *MovingRotor) Notches() string { return r.labels }

// Advance moves the rotor one position, wrapping at the alphabet size.
func (r *MovingRotor) Advance() {
	r.setting = r.perm.wrap(r.setting + 1)
}

// FixedRotor is a rotor that has no ratchet and never advances.
type FixedRotor struct {
	wheel
}

// NewFixedRotor returns a non-moving rotor named name with wiring perm.
func NewFixedRotor(name string, perm *Permutation) *FixedRotor {
	return &FixedRotor{wheel: wheel{name: name, perm: perm}}
}

// Kind returns KindFixed.
func (r *FixedRotor) Kind() Kind { return KindFixed }

// Reflector is the non-moving rotor in slot 0. Its setting is always 0.
type Reflector struct {
	wheel
}

// NewReflector returns a reflector named name with wiring perm. A historically
// faithful reflector is a derangement; that is left to configuration checks.
func NewReflector(name string, perm *Permutation) *Reflector {
	return &Reflector{wheel: wheel{name: name, perm: perm}}
}

// Kind returns KindReflector.
func (r *Reflector) Kind() Kind { return KindReflector }

// Set accepts only position 0.
func (r *Reflector) Set(posn int) error {
	if posn != 0 {
		return newError("Set").subject(r.name).detail("reflector cannot be set to %d", posn).cause(ErrConfigurationInvalid)
	}
	return nil
}

// SetSymbol accepts only the first symbol of the alphabet.
func (r *Reflector) SetSymbol(sym rune) error {
	i, ok := r.perm.alphabet.lookup(sym)
	if !ok {
		return newError("SetSymbol").subject(r.name).detail("%q not in alphabet", sym).cause(ErrInvalidSymbol)
	}
	return r.Set(i)
}

// NewRotor builds the variant named by kind. notches is only used for
// KindMoving and must be empty for the other kinds.
func NewRotor(name string, kind Kind, perm *Permutation, notches string) (Rotor, error) {
	switch kind {
	case KindMoving:
		r, err := NewMovingRotor(name, perm, notches)
		if err != nil {
			return nil, err
		}
		return r, nil
	case KindFixed, KindReflector:
		if notches != "" {
			return nil, newError("NewRotor").subject(name).detail("%s rotor cannot have notches", kind).cause(ErrConfigurationInvalid)
		}
		if kind == KindFixed {
			return NewFixedRotor(name, perm), nil
		}
		return NewReflector(name, perm), nil
	default:
		return nil, newError("NewRotor").subject(name).detail("unknown kind %d", int(kind)).cause(ErrConfigurationInvalid)
	}
}

var (
	_ Rotor = (*MovingRotor)(nil)
	_ Rotor = (*FixedRotor)(nil)
	_ Rotor = (*Reflector)(nil)
)
