package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
)

// The classic text format is a stream of whitespace separated tokens:
//
//	ALPHABET
//	SLOTS PAWLS
//	NAME TYPE[NOTCHES] (CYCLE) (CYCLE) ...
//
// TYPE is M for a moving rotor, N for a fixed rotor and R for a reflector.
// A rotor's cycles may continue over several lines.

type token struct {
	text string
	line int
}

func tokenize(r io.Reader) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		for _, f := range strings.Fields(sc.Text()) {
			toks = append(toks, token{text: f, line: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	return toks, nil
}

type textParser struct {
	toks []token
	pos  int
	last int // line of the most recent token
}

func (p *textParser) done() bool { return p.pos >= len(p.toks) }

func (p *textParser) peek() (token, bool) {
	if p.done() {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *textParser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
		p.last = t.line
	}
	return t, ok
}

func (p *textParser) errorf(line int, format string, args ...any) error {
	if line == 0 {
		line = max(p.last, 1)
	}
	return &ParseError{Line: line, Err: fmt.Errorf("%w: "+format, append([]any{ErrSyntax}, args...)...)}
}

func (p *textParser) integer(what string) (int, error) {
	t, ok := p.next()
	if !ok {
		return 0, p.errorf(0, "configuration truncated, missing %s", what)
	}
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, p.errorf(t.line, "%s %q is not an integer", what, t.text)
	}
	return n, nil
}

func (p *textParser) rotor() (RotorDescription, error) {
	name, _ := p.next()
	if strings.ContainsAny(name.text, "()") {
		return RotorDescription{}, p.errorf(name.line, "expected a rotor name, found %q", name.text)
	}

	typ, ok := p.next()
	if !ok {
		return RotorDescription{}, p.errorf(name.line, "rotor %s has no type", name.text)
	}
	var kind enigma.Kind
	switch typ.text[0] {
	case 'M':
		kind = enigma.KindMoving
	case 'N':
		kind = enigma.KindFixed
	case 'R':
		kind = enigma.KindReflector
	default:
		return RotorDescription{}, p.errorf(typ.line, "rotor %s has unknown type %q", name.text, typ.text)
	}

	var cycles []string
	for {
		t, ok := p.peek()
		if !ok || !strings.HasPrefix(t.text, "(") {
			break
		}
		p.next()
		cycles = append(cycles, t.text)
	}

	return RotorDescription{
		Name:    name.text,
		Kind:    kind.String(),
		Notches: typ.text[1:],
		Wiring:  strings.Join(cycles, " "),
		Line:    name.line,
	}, nil
}

func parseText(r io.Reader) (*Description, error) {
	toks, err := tokenize(r)
	if err != nil {
		return nil, err
	}
	p := &textParser{toks: toks}

	alphabet, ok := p.next()
	if !ok {
		return nil, p.errorf(0, "configuration is empty")
	}
	d := &Description{Alphabet: alphabet.text}
	if d.Slots, err = p.integer("number of rotor slots"); err != nil {
		return nil, err
	}
	if d.Pawls, err = p.integer("number of pawls"); err != nil {
		return nil, err
	}
	for !p.done() {
		rd, err := p.rotor()
		if err != nil {
			return nil, err
		}
		d.Rotors = append(d.Rotors, rd)
	}
	return d, nil
}

// WriteText writes d in the classic text format, one rotor per line.
func (d *Description) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n", d.Alphabet, d.Slots, d.Pawls)
	for _, rd := range d.Rotors {
		code := "M"
		if kind, err := enigma.ParseKind(rd.Kind); err == nil {
			code = string(kind.Code())
		}
		fmt.Fprintf(bw, "%s %s%s", rd.Name, code, rd.Notches)
		if rd.Wiring != "" {
			fmt.Fprintf(bw, " %s", rd.Wiring)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
