package enigma

// Step describes the rotor movement of one keypress.
type Step struct {
	// Advanced[k] is true if the rotor in slot k moved.
	Advanced []bool
	// DoubleStepped[k] is true if slot k moved because it sat at its own
	// notch while its left neighbour rotates (the double-step anomaly).
	DoubleStepped []bool
}

// DoubleStep reports whether any slot moved through the double-step rule.
func (s Step) DoubleStep() bool {
	for _, d := range s.DoubleStepped {
		if d {
			return true
		}
	}
	return false
}

// advance moves the rotors for one keypress. Notch positions are sampled
// before anything moves, so all advances of a step are simultaneous.
//
// The fast rotor always moves. A rotor in slot j (0 < j < n-1) moves when its
// right neighbour was at a notch, or when it was itself at a notch and its
// left neighbour rotates too. The reflector never moves.
func (m *Machine) advance() Step {
	n := len(m.slots)
	atNotch := make([]bool, n)
	for i, r := range m.slots {
		atNotch[i] = r.AtNotch()
	}

	step := Step{
		Advanced:      make([]bool, n),
		DoubleStepped: make([]bool, n),
	}
	step.Advanced[n-1] = true
	for j := n - 2; j > 0; j-- {
		r := m.slots[j]
		if !r.Rotates() {
			continue
		}
		carried := atNotch[j+1]
		doubled := atNotch[j] && m.slots[j-1].Rotates()
		if carried || doubled {
			step.Advanced[j] = true
			step.DoubleStepped[j] = doubled && !carried
		}
	}

	for j, moved := range step.Advanced {
		if moved {
			m.slots[j].Advance()
		}
	}
	return step
}
