package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/dd0wney/cluso-enigma/pkg/validation"
)

// ErrSyntax reports a configuration or setting line that cannot be tokenized
// into the expected shape.
var ErrSyntax = errors.New("syntax error")

// Format selects a configuration file format.
type Format int

const (
	// FormatText is the classic whitespace separated format.
	FormatText Format = iota
	// FormatYAML is the YAML document format.
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "text"
}

// FormatFor picks the format from a file extension. Anything but .yaml and
// .yml is read as text.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// ParseError locates a configuration error on an input line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RotorDescription describes one wheel of the inventory.
type RotorDescription struct {
	Name    string `yaml:"name" validate:"required"`
	Kind    string `yaml:"kind" validate:"required,rotorkind"`
	Notches string `yaml:"notches,omitempty"`
	Wiring  string `yaml:"wiring" validate:"cycles"`

	// Line is the text configuration line the rotor started on, 0 for YAML.
	Line int `yaml:"-"`
}

// Description is a format-neutral machine description.
type Description struct {
	Alphabet string             `yaml:"alphabet" validate:"alphabet"`
	Slots    int                `yaml:"slots" validate:"gtfield=Pawls"`
	Pawls    int                `yaml:"pawls" validate:"min=1"`
	Rotors   []RotorDescription `yaml:"rotors" validate:"required,min=1,dive"`
}

// Validate checks the rules a description must meet before Build. Every
// violation is reported, not just the first.
func (d *Description) Validate() error {
	cv := validation.NewConfigValidator("machine").
		Alphabet("alphabet", d.Alphabet).
		Positive("pawls", d.Pawls).
		GreaterThan("slots", d.Slots, "pawls", d.Pawls)

	seen := make(map[string]bool, len(d.Rotors))
	for i, rd := range d.Rotors {
		field := fmt.Sprintf("rotors[%d]", i)
		cv.Required(field+".name", rd.Name)
		cv.Cycles(field+".wiring", rd.Wiring)
		cv.Custom(field+".name", func() error {
			if rd.Name != "" && seen[rd.Name] {
				return fmt.Errorf("rotor %q listed twice", rd.Name)
			}
			seen[rd.Name] = true
			return nil
		})

		kind, err := enigma.ParseKind(rd.Kind)
		cv.Custom(field+".kind", func() error { return err })
		cv.When(err == nil && kind == enigma.KindMoving, func(v *validation.ConfigValidator) {
			v.Required(field+".notches", rd.Notches)
		})
		cv.When(err == nil && kind != enigma.KindMoving, func(v *validation.ConfigValidator) {
			v.Custom(field+".notches", func() error {
				if rd.Notches != "" {
					return fmt.Errorf("%s rotor cannot have notches", kind)
				}
				return nil
			})
		})
	}

	if err := cv.Validate(); err != nil {
		return fmt.Errorf("%w: %w", enigma.ErrConfigurationInvalid, err)
	}
	return nil
}

// Build turns the description into a machine with an empty rotor stack.
// Reflector wiring must leave no symbol fixed.
func (d *Description) Build() (*enigma.Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	a, err := enigma.NewAlphabet(d.Alphabet)
	if err != nil {
		return nil, err
	}

	inventory := make([]enigma.Rotor, 0, len(d.Rotors))
	for _, rd := range d.Rotors {
		r, err := buildRotor(rd, a)
		if err != nil {
			if rd.Line > 0 {
				return nil, &ParseError{Line: rd.Line, Err: err}
			}
			return nil, err
		}
		inventory = append(inventory, r)
	}
	return enigma.NewMachine(a, d.Slots, d.Pawls, inventory)
}

func buildRotor(rd RotorDescription, a *enigma.Alphabet) (enigma.Rotor, error) {
	kind, err := enigma.ParseKind(rd.Kind)
	if err != nil {
		return nil, err
	}
	perm, err := enigma.NewPermutation(rd.Wiring, a)
	if err != nil {
		return nil, fmt.Errorf("rotor %s: %w", rd.Name, err)
	}
	if kind == enigma.KindReflector && !perm.IsDerangement() {
		return nil, fmt.Errorf("rotor %s: reflector wiring has %d fixed points: %w",
			rd.Name, perm.FixedPoints(), enigma.ErrConfigurationInvalid)
	}
	r, err := enigma.NewRotor(rd.Name, kind, perm, rd.Notches)
	if err != nil {
		return nil, fmt.Errorf("rotor %s: %w", rd.Name, err)
	}
	return r, nil
}

// Load reads the description at path, choosing the format by extension.
func Load(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Parse(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse reads and validates a description in the given format.
func Parse(r io.Reader, format Format) (*Description, error) {
	var (
		d   *Description
		err error
	)
	switch format {
	case FormatYAML:
		d, err = parseYAML(r)
	default:
		d, err = parseText(r)
	}
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Rotor returns the description of the rotor called name.
func (d *Description) Rotor(name string) (RotorDescription, bool) {
	for _, rd := range d.Rotors {
		if rd.Name == name {
			return rd, true
		}
	}
	return RotorDescription{}, false
}
