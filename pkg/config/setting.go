package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"golang.org/x/crypto/blake2b"
)

// SettingPrefix starts every setting line.
const SettingPrefix = "*"

// Setting is a parsed setting line:
//
//	* REFLECTOR R1 ... Rk POSITIONS (AB) (CD) ...
//
// with k+1 rotor names for a machine of k+1 slots and one position symbol per
// non-reflector slot. The trailing cycles are plugboard swaps.
type Setting struct {
	Rotors    []string
	Positions string
	Plugs     []string
}

// IsSettingLine reports whether line, ignoring leading whitespace, is a
// setting line rather than a message.
func IsSettingLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), SettingPrefix)
}

// ParseSetting parses line for a machine with numRotors slots. Symbols are
// not checked against an alphabet until Apply.
func ParseSetting(line string, numRotors int) (Setting, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != SettingPrefix {
		return Setting{}, fmt.Errorf("%w: setting line must start with %q", ErrSyntax, SettingPrefix)
	}
	if len(fields) < numRotors+2 {
		return Setting{}, fmt.Errorf("%w: setting line needs %d rotor names and a position string, got %q",
			ErrSyntax, numRotors, line)
	}

	s := Setting{
		Rotors:    append([]string(nil), fields[1:numRotors+1]...),
		Positions: fields[numRotors+1],
	}
	if strings.HasPrefix(s.Positions, "(") {
		return Setting{}, fmt.Errorf("%w: missing position string before plugboard %q", ErrSyntax, s.Positions)
	}

	plugs, err := parseSwaps(strings.Join(fields[numRotors+2:], " "))
	if err != nil {
		return Setting{}, err
	}
	s.Plugs = plugs
	return s, nil
}

// parseSwaps splits "(AB) (CD)(EF)" into two-symbol swaps.
func parseSwaps(text string) ([]string, error) {
	var swaps []string
	rest := text
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			return swaps, nil
		}
		if rest[0] != '(' {
			return nil, fmt.Errorf("%w: plugboard text %q outside a cycle", enigma.ErrMalformedCycle, rest)
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated plugboard cycle %q", enigma.ErrMalformedCycle, rest)
		}
		pair := rest[1:end]
		if utf8.RuneCountInString(pair) != 2 {
			return nil, fmt.Errorf("%w: plugboard cycle (%s) must swap exactly two symbols", enigma.ErrMalformedCycle, pair)
		}
		swaps = append(swaps, pair)
		rest = rest[end+1:]
	}
}

// Plugboard returns the swaps in cycle notation.
func (s Setting) Plugboard() string {
	cycles := make([]string, len(s.Plugs))
	for i, p := range s.Plugs {
		cycles[i] = "(" + p + ")"
	}
	return strings.Join(cycles, " ")
}

// String returns s in setting line form.
func (s Setting) String() string {
	parts := append([]string{SettingPrefix}, s.Rotors...)
	parts = append(parts, s.Positions)
	if len(s.Plugs) > 0 {
		parts = append(parts, s.Plugboard())
	}
	return strings.Join(parts, " ")
}

// Fingerprint returns a short digest of s, so logs can tell keys apart
// without recording them.
func (s Setting) Fingerprint() string {
	sum := blake2b.Sum256([]byte(s.String()))
	return hex.EncodeToString(sum[:8])
}

// Apply inserts the rotors, sets their positions and replaces the
// plugboard. If m was already configured, an error leaves its previous
// rotors, positions and plugboard in place.
func (s Setting) Apply(m *enigma.Machine) error {
	plugboard, err := enigma.NewPermutation(s.Plugboard(), m.Alphabet())
	if err != nil {
		return fmt.Errorf("plugboard: %w", err)
	}

	restore := snapshot(m)
	if err := m.InsertRotors(s.Rotors); err != nil {
		return err
	}
	if err := m.SetRotors(s.Positions); err != nil {
		return errors.Join(err, restore())
	}
	// Cannot fail: plugboard was built over m's alphabet.
	_ = m.SetPlugboard(plugboard)
	return nil
}

// snapshot records m's rotor setup and returns a func that puts it back.
func snapshot(m *enigma.Machine) func() error {
	if !m.Configured() {
		return func() error { return nil }
	}
	names, positions := m.Names(), m.Positions()
	return func() error {
		if err := m.InsertRotors(names); err != nil {
			return err
		}
		return m.SetRotors(positions)
	}
}
