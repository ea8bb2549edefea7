package enigma

import "testing"

const upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// rotorDef describes a historical wheel in cycle notation.
type rotorDef struct {
	name    string
	kind    Kind
	notches string
	cycles  string
}

var historicalRotors = []rotorDef{
	{"I", KindMoving, "Q", "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ)"},
	{"II", KindMoving, "E", "(BJ) (CDKLHUP) (ESZ) (FIXVYOMW) (GR) (NT)"},
	{"III", KindMoving, "V", "(ABDHPEJT) (CFLVMZOYQIRWUKXSG)"},
	{"IV", KindMoving, "J", "(AEPLIYWCOXMRFZBSTGJQNH) (DV) (KU)"},
	{"V", KindMoving, "Z", "(AVOLDRWFIUQ) (BZKSMNHYC) (EGTJPX)"},
	{"VI", KindMoving, "ZM", "(AJQDVLEOZWIYTS) (BPRK) (CGMNHFUX)"},
	{"VII", KindMoving, "ZM", "(ANOUPFRIMBZTLWKSVEGCJYDHXQ)"},
	{"VIII", KindMoving, "ZM", "(AFLSETWUNDHOZVICQ) (BKJ) (GXY) (MPR)"},
	{"Beta", KindFixed, "", "(ALBEVFCYODJWUGNMQTZSKPR) (HIX)"},
	{"Gamma", KindFixed, "", "(AFNIRLBSQWVXGUZDKMTPCOYJHE)"},
	{"B", KindReflector, "", "(AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP) (RX) (SZ) (TV)"},
	{"C", KindReflector, "", "(AR) (BD) (CO) (EJ) (FN) (GT) (HK) (IV) (LM) (PW) (QZ) (SX) (UY)"},
	{"B-wide", KindReflector, "", "(AY) (BR) (CU) (DH) (EQ) (FS) (GL) (IP) (JX) (KN) (MO) (TZ) (VW)"},
	{"C-wide", KindReflector, "", "(AF) (BV) (CP) (DJ) (EI) (GO) (HY) (KR) (LZ) (MX) (NW) (QT) (SU)"},
}

func newTestPermutation(t testing.TB, cycles string, a *Alphabet) *Permutation {
	t.Helper()
	p, err := NewPermutation(cycles, a)
	if err != nil {
		t.Fatalf("NewPermutation(%q) error = %v", cycles, err)
	}
	return p
}

func newInventory(t testing.TB, a *Alphabet) []Rotor {
	t.Helper()
	inv := make([]Rotor, 0, len(historicalRotors))
	for _, def := range historicalRotors {
		r, err := NewRotor(def.name, def.kind, newTestPermutation(t, def.cycles, a), def.notches)
		if err != nil {
			t.Fatalf("NewRotor(%s) error = %v", def.name, err)
		}
		inv = append(inv, r)
	}
	return inv
}

// newTestMachine builds a machine over the upper-case alphabet and loads it
// with names, setting and plugboard.
func newTestMachine(t testing.TB, numRotors, numPawls int, names []string, setting, plugs string) *Machine {
	t.Helper()
	a := MustAlphabet(upper)
	m, err := NewMachine(a, numRotors, numPawls, newInventory(t, a))
	if err != nil {
		t.Fatalf("NewMachine() error = %v", err)
	}
	if err := m.InsertRotors(names); err != nil {
		t.Fatalf("InsertRotors(%v) error = %v", names, err)
	}
	if err := m.SetRotors(setting); err != nil {
		t.Fatalf("SetRotors(%q) error = %v", setting, err)
	}
	if err := m.SetPlugboard(newTestPermutation(t, plugs, a)); err != nil {
		t.Fatalf("SetPlugboard(%q) error = %v", plugs, err)
	}
	return m
}
