package enigma

import "strings"

// Machine is a rotor cipher machine: an ordered stack of rotor slots plus a
// plugboard. Slot 0 holds the reflector and slot NumRotors()-1 the fast rotor.
//
// A Machine is not safe for concurrent use. Rotors are borrowed from the
// inventory it was built with and their settings change as it converts.
type Machine struct {
	alphabet  *Alphabet
	numRotors int
	numPawls  int

	inventory []Rotor
	byName    map[string]int

	slots     []Rotor
	plugboard *Permutation
}

// NewMachine returns a machine over alphabet a with numRotors slots, of which
// numPawls hold rotating rotors. inventory lists every rotor available for
// insertion; names must be unique.
func NewMachine(a *Alphabet, numRotors, numPawls int, inventory []Rotor) (*Machine, error) {
	if numPawls < 1 || numRotors <= numPawls {
		return nil, newError("NewMachine").detail("need rotors > pawls > 0, got %d rotors and %d pawls", numRotors, numPawls).cause(ErrConfigurationInvalid)
	}

	m := &Machine{
		alphabet:  a,
		numRotors: numRotors,
		numPawls:  numPawls,
		inventory: make([]Rotor, 0, len(inventory)),
		byName:    make(map[string]int, len(inventory)),
		plugboard: Identity(a),
	}
	for _, r := range inventory {
		if r.Alphabet() != a {
			return nil, newError("NewMachine").subject(r.Name()).detail("rotor built over a different alphabet").cause(ErrConfigurationInvalid)
		}
		if _, dup := m.byName[r.Name()]; dup {
			return nil, newError("NewMachine").subject(r.Name()).detail("rotor listed twice").cause(ErrConfigurationInvalid)
		}
		m.byName[r.Name()] = len(m.inventory)
		m.inventory = append(m.inventory, r)
	}
	return m, nil
}

// Alphabet returns the machine's alphabet.
func (m *Machine) Alphabet() *Alphabet { return m.alphabet }

// NumRotors returns the number of rotor slots.
func (m *Machine) NumRotors() int { return m.numRotors }

// NumPawls returns the number of pawls, and thus of rotating rotors.
func (m *Machine) NumPawls() int { return m.numPawls }

// Inventory returns the available rotors in the order given to NewMachine.
func (m *Machine) Inventory() []Rotor {
	out := make([]Rotor, len(m.inventory))
	copy(out, m.inventory)
	return out
}

// Configured reports whether rotors have been inserted.
func (m *Machine) Configured() bool { return len(m.slots) == m.numRotors }

// Rotor returns the rotor in slot k. It panics if k is out of range or no
// rotors are inserted.
func (m *Machine) Rotor(k int) Rotor { return m.slots[k] }

// Plugboard returns the current plugboard permutation.
func (m *Machine) Plugboard() *Permutation { return m.plugboard }

// InsertRotors fills the slots with the rotors named by names, names[0]
// being the reflector. Every inserted rotor is reset to setting 0. On error
// the previous slot assignment is kept.
func (m *Machine) InsertRotors(names []string) error {
	if len(names) != m.numRotors {
		return newError("InsertRotors").detail("%d rotor names for %d slots", len(names), m.numRotors).cause(ErrConfigurationInvalid)
	}

	slots := make([]Rotor, len(names))
	used := make(map[string]bool, len(names))
	rotating := 0
	for k, name := range names {
		idx, ok := m.byName[name]
		if !ok {
			return newError("InsertRotors").subject(name).cause(ErrUnknownRotor)
		}
		if used[name] {
			return newError("InsertRotors").subject(name).detail("rotor inserted twice").cause(ErrConfigurationInvalid)
		}
		used[name] = true

		r := m.inventory[idx]
		isReflector := r.Kind() == KindReflector
		switch {
		case k == 0 && !isReflector:
			return newError("InsertRotors").subject(name).detail("slot 0 must hold a reflector").cause(ErrConfigurationInvalid)
		case k > 0 && isReflector:
			return newError("InsertRotors").subject(name).detail("reflector in slot %d", k).cause(ErrConfigurationInvalid)
		}
		if r.Rotates() {
			rotating++
		}
		slots[k] = r
	}
	if rotating != m.numPawls {
		return newError("InsertRotors").detail("%d rotating rotors for %d pawls", rotating, m.numPawls).cause(ErrConfigurationInvalid)
	}
	if fast := slots[len(slots)-1]; !fast.Rotates() {
		return newError("InsertRotors").subject(fast.Name()).detail("fast slot needs a rotating rotor").cause(ErrConfigurationInvalid)
	}

	for _, r := range slots[1:] {
		// In range for every rotor, cannot fail.
		_ = r.Set(0)
	}
	m.slots = slots
	return nil
}

// SetRotors sets the rotors in slots 1..NumRotors()-1 from the symbols of
// setting, left to right.
func (m *Machine) SetRotors(setting string) error {
	if !m.Configured() {
		return newError("SetRotors").cause(ErrNotConfigured)
	}
	symbols := []rune(setting)
	if len(symbols) != m.numRotors-1 {
		return newError("SetRotors").subject(setting).detail("need %d symbols", m.numRotors-1).cause(ErrConfigurationInvalid)
	}

	positions := make([]int, len(symbols))
	for i, r := range symbols {
		idx, ok := m.alphabet.lookup(r)
		if !ok {
			return newError("SetRotors").subject(setting).detail("%q not in alphabet", r).cause(ErrInvalidSymbol)
		}
		positions[i] = idx
	}
	for i, p := range positions {
		if err := m.slots[i+1].Set(p); err != nil {
			return err
		}
	}
	return nil
}

// SetPlugboard replaces the plugboard. A nil permutation means no plugs.
func (m *Machine) SetPlugboard(p *Permutation) error {
	if p == nil {
		m.plugboard = Identity(m.alphabet)
		return nil
	}
	if p.Alphabet() != m.alphabet {
		return newError("SetPlugboard").detail("plugboard built over a different alphabet").cause(ErrConfigurationInvalid)
	}
	m.plugboard = p
	return nil
}

// Positions returns the symbols showing in the windows of slots
// 1..NumRotors()-1, or "" if no rotors are inserted.
func (m *Machine) Positions() string {
	if !m.Configured() {
		return ""
	}
	var b strings.Builder
	for _, r := range m.slots[1:] {
		b.WriteRune(r.Window())
	}
	return b.String()
}

// Names returns the names of the inserted rotors, slot 0 first.
func (m *Machine) Names() []string {
	names := make([]string, len(m.slots))
	for i, r := range m.slots {
		names[i] = r.Name()
	}
	return names
}
