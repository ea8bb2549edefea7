package enigma

import (
	"strings"
	"unicode"
)

// WhitespacePolicy selects what ConvertMessage does with whitespace. In every
// policy whitespace is never enciphered and never moves the rotors.
type WhitespacePolicy int

const (
	// DropWhitespace omits whitespace from the output.
	DropWhitespace WhitespacePolicy = iota
	// KeepWhitespace copies whitespace to the output unchanged.
	KeepWhitespace
)

// Trace records the path of one symbol through the machine.
type Trace struct {
	Positions string // window symbols after stepping
	Input     rune
	Plugged   rune // input after the plugboard
	Output    rune
	Step      Step
}

// Tracer receives a Trace for every symbol a machine converts.
type Tracer interface {
	TraceSymbol(t Trace)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(t Trace)

// TraceSymbol calls f(t).
func (f TracerFunc) TraceSymbol(t Trace) { f(t) }

// ConvertOptions controls ConvertMessage. The zero value drops whitespace and
// traces nothing.
type ConvertOptions struct {
	Whitespace WhitespacePolicy
	Tracer     Tracer
}

// Convert steps the machine and returns the encoding of contact c (an index,
// taken modulo the alphabet size). Encoding and decoding are the same
// operation. It panics if no rotors are inserted.
func (m *Machine) Convert(c int) int {
	out, _, _ := m.convert(c)
	return out
}

func (m *Machine) convert(c int) (out, plugged int, step Step) {
	if !m.Configured() {
		panic("enigma: Convert called before InsertRotors")
	}
	step = m.advance()
	plugged = m.plugboard.Permute(c)
	out = m.applyRotors(plugged)
	out = m.plugboard.Permute(out)
	return out, plugged, step
}

// applyRotors sends contact c from the fast rotor to the reflector and back.
func (m *Machine) applyRotors(c int) int {
	for k := len(m.slots) - 1; k >= 0; k-- {
		c = m.slots[k].ConvertForward(c)
	}
	for k := 1; k < len(m.slots); k++ {
		c = m.slots[k].ConvertBackward(c)
	}
	return c
}

// ConvertSymbol steps the machine and returns the encoding of r.
func (m *Machine) ConvertSymbol(r rune) (rune, error) {
	if !m.Configured() {
		return 0, newError("ConvertSymbol").cause(ErrNotConfigured)
	}
	i, ok := m.alphabet.lookup(r)
	if !ok {
		return 0, newError("ConvertSymbol").symbol(r).cause(ErrInvalidSymbol)
	}
	return m.alphabet.symbolAt(m.Convert(i)), nil
}

// ConvertMessage returns the encoding of msg, one keypress per non-whitespace
// symbol. Rotor positions carry over between calls.
//
// The message is checked before any rotor moves: if it holds a symbol that
// is neither whitespace nor in the alphabet, ConvertMessage returns
// ErrInvalidSymbol and the machine is unchanged.
func (m *Machine) ConvertMessage(msg string, opts ConvertOptions) (string, error) {
	if !m.Configured() {
		return "", newError("ConvertMessage").cause(ErrNotConfigured)
	}
	for _, r := range msg {
		if !unicode.IsSpace(r) && !m.alphabet.Contains(r) {
			return "", newError("ConvertMessage").symbol(r).cause(ErrInvalidSymbol)
		}
	}

	var b strings.Builder
	b.Grow(len(msg))
	for _, r := range msg {
		if unicode.IsSpace(r) {
			if opts.Whitespace == KeepWhitespace {
				b.WriteRune(r)
			}
			continue
		}
		in, _ := m.alphabet.lookup(r)
		out, plugged, step := m.convert(in)
		sym := m.alphabet.symbolAt(out)
		b.WriteRune(sym)
		if opts.Tracer != nil {
			opts.Tracer.TraceSymbol(Trace{
				Positions: m.Positions(),
				Input:     r,
				Plugged:   m.alphabet.symbolAt(plugged),
				Output:    sym,
				Step:      step,
			})
		}
	}
	return b.String(), nil
}
