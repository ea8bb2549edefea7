// Package enigma simulates a rotor cipher machine: a stack of substitution
// rotors whose alignment changes after every keypress, framed by a plugboard.
//
// The package is organized into separate files by concern:
//
//   - alphabet.go: symbol <-> index mapping
//   - permutation.go: cycle-notation permutations and their inverses
//   - rotor.go: the Reflector, FixedRotor and MovingRotor variants
//   - machine.go: slot assignment, rotor settings and plugboard
//   - stepping.go: pawl and ratchet movement, including the double step
//   - convert.go: the signal path and message conversion
//
// The engine performs no I/O and keeps no global state. Diagnostic output is
// requested per call through ConvertOptions.Tracer.
//
// Example usage:
//
//	a := enigma.MustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
//	// ... build rotors with NewPermutation and NewMovingRotor / NewReflector ...
//	m, err := enigma.NewMachine(a, 4, 3, inventory)
//	err = m.InsertRotors([]string{"B", "I", "II", "III"})
//	err = m.SetRotors("AAA")
//	out, err := m.ConvertMessage("AAAAA", enigma.ConvertOptions{}) // "BDZGO"
package enigma
