package config

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/dd0wney/cluso-enigma/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"default.conf", FormatText},
		{"machine", FormatText},
		{"m3.yaml", FormatYAML},
		{"dir/M3.YML", FormatYAML},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFor(tt.path), tt.path)
	}
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "text", FormatText.String())
}

func TestParseText_M4(t *testing.T) {
	d, err := Preset("m4")
	require.NoError(t, err)

	assert.Equal(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", d.Alphabet)
	assert.Equal(t, 5, d.Slots)
	assert.Equal(t, 3, d.Pawls)
	require.Len(t, d.Rotors, 12)

	first := d.Rotors[0]
	assert.Equal(t, "I", first.Name)
	assert.Equal(t, "moving", first.Kind)
	assert.Equal(t, "Q", first.Notches)
	assert.Equal(t, "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ)", first.Wiring)
	assert.Equal(t, 3, first.Line)

	vi, ok := d.Rotor("VI")
	require.True(t, ok)
	assert.Equal(t, "ZM", vi.Notches)

	beta, ok := d.Rotor("Beta")
	require.True(t, ok)
	assert.Equal(t, "fixed", beta.Kind)
	assert.Empty(t, beta.Notches)

	_, ok = d.Rotor("IX")
	assert.False(t, ok)
}

func TestParseText_CyclesSpanLines(t *testing.T) {
	input := "ABCD\n2 1\nR R (AB)\n  (CD)\nI MA (ABC)\n(D)\n"
	d, err := Parse(strings.NewReader(input), FormatText)
	require.NoError(t, err)
	require.Len(t, d.Rotors, 2)
	assert.Equal(t, "(AB) (CD)", d.Rotors[0].Wiring)
	assert.Equal(t, "(ABC) (D)", d.Rotors[1].Wiring)
	assert.Equal(t, 5, d.Rotors[1].Line)
}

func TestParseText_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
		line   int // 0 when the error is not positional
	}{
		{"empty", "", ErrSyntax, 1},
		{"slots not a number", "ABC\nx 1\n", ErrSyntax, 2},
		{"missing pawls", "ABC\n3\n", ErrSyntax, 2},
		{"rotor without type", "ABC\n3 1\nR\n", ErrSyntax, 3},
		{"unknown rotor type", "ABC\n3 1\nX Q (AB)\n", ErrSyntax, 3},
		{"cycle where name expected", "ABC\n3 1\n(AB) R\n", ErrSyntax, 3},
		{"reserved symbol in alphabet", "AB*\n3 1\n", enigma.ErrConfigurationInvalid, 0},
		{"pawls not below slots", "ABC\n2 2\n", enigma.ErrConfigurationInvalid, 0},
		{"no pawls", "ABC\n2 0\n", enigma.ErrConfigurationInvalid, 0},
		{"notches on fixed rotor", "ABC\n3 1\nF NA (AB)\n", enigma.ErrConfigurationInvalid, 0},
		{"moving rotor without notches", "ABC\n3 1\nI M (ABC)\n", enigma.ErrConfigurationInvalid, 0},
		{"rotor listed twice", "ABC\n3 1\nI MA (ABC)\nI MB\n", enigma.ErrConfigurationInvalid, 0},
		{"unbalanced wiring", "ABC\n3 1\nI MA (AB\n", enigma.ErrConfigurationInvalid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), FormatText)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var pe *ParseError
			if tt.line == 0 {
				assert.False(t, errors.As(err, &pe), "unexpected ParseError: %v", err)
				return
			}
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestParseText_ValidationReportsEveryProblem(t *testing.T) {
	_, err := Parse(strings.NewReader("AB*\n2 2\n"), FormatText)
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrInvalid)
	assert.Contains(t, err.Error(), "machine.alphabet")
	assert.Contains(t, err.Error(), "machine.slots")
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
		line   int
	}{
		{"reflector with fixed point", "ABC\n2 1\nR R (AB)\nI MA (ABC)\n", enigma.ErrConfigurationInvalid, 3},
		{"wiring symbol outside alphabet", "ABCD\n2 1\nR R (AB) (CD)\nI MA (ABE)\n", enigma.ErrMalformedCycle, 4},
		{"notch outside alphabet", "ABCD\n2 1\nR R (AB) (CD)\nI MZ (ABC)\n", enigma.ErrInvalidSymbol, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(strings.NewReader(tt.input), FormatText)
			require.NoError(t, err)

			_, err = d.Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestBuild_Machine(t *testing.T) {
	d, err := Preset("m4")
	require.NoError(t, err)

	m, err := d.Build()
	require.NoError(t, err)
	assert.Equal(t, 5, m.NumRotors())
	assert.Equal(t, 3, m.NumPawls())
	assert.Len(t, m.Inventory(), 12)
	assert.False(t, m.Configured())
}

func TestParseYAML_M3(t *testing.T) {
	d, err := Preset("m3")
	require.NoError(t, err)

	assert.Equal(t, 4, d.Slots)
	assert.Equal(t, 3, d.Pawls)
	require.Len(t, d.Rotors, 7)

	b, ok := d.Rotor("B")
	require.True(t, ok)
	assert.Equal(t, "reflector", b.Kind)
	assert.Equal(t, 0, b.Line)
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		target  error
		message string
	}{
		{"empty document", "", ErrSyntax, "empty"},
		{"unknown field", "alphabet: ABC\nslot: 3\n", ErrSyntax, "slot"},
		{
			"slots not above pawls",
			"alphabet: ABC\nslots: 1\npawls: 1\nrotors:\n  - {name: R, kind: reflector, wiring: \"(AB)\"}\n",
			enigma.ErrConfigurationInvalid, "slots: must be greater than pawls",
		},
		{
			"bad kind",
			"alphabet: ABC\nslots: 2\npawls: 1\nrotors:\n  - {name: R, kind: spinning, wiring: \"(AB)\"}\n",
			enigma.ErrConfigurationInvalid, `rotors[0].kind: "spinning" is not a rotor kind`,
		},
		{
			"no rotors",
			"alphabet: ABC\nslots: 2\npawls: 1\n",
			enigma.ErrConfigurationInvalid, "rotors: field is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), FormatYAML)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestWriteText_RoundTrip(t *testing.T) {
	d, err := Preset("m4")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WriteText(&buf))

	again, err := Parse(&buf, FormatText)
	require.NoError(t, err)
	assert.Equal(t, d, again)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	d, err := Preset("m3")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WriteYAML(&buf))

	again, err := Parse(&buf, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, d, again)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	d, err := Preset("m3")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WriteYAML(&buf))
	path := dir + "/m3.yml"
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, d, loaded)

	_, err = Load(dir + "/missing.conf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open")
}
