package enigma

import (
	"fmt"
	"io"
	"strings"
)

// Machine is a live Enigma machine: an immutable Settings value plus the
// mutable rotor offsets, which are the only state that changes while
// enciphering. A machine is not safe for concurrent use; the cracker
// gives every worker its own instance.
type Machine struct {
	settings  Settings
	rotors    [MachineRotors]rotor // index 0 is the leftmost slot
	reflector Permutation
	plugboard Permutation

	stripNon bool
	preserve bool
	trace    io.Writer
}

// Settings returns the configuration the machine was built from.
func (m *Machine) Settings() Settings { return m.settings }

// Offsets returns the current rotor offsets, leftmost first.
func (m *Machine) Offsets() [MachineRotors]int {
	var o [MachineRotors]int
	for i := range m.rotors {
		o[i] = m.rotors[i].offset
	}
	return o
}

// Reset returns every rotor to its configured starting position.
func (m *Machine) Reset() {
	for i := range m.rotors {
		m.rotors[i].reset()
	}
}

// Encode enciphers text, resetting the rotors to their starting
// positions first. Letters consume one stepping cycle each; anything
// else passes through unchanged (or is dropped under StripPunctuation)
// without touching rotor state. Output is uppercase unless the machine
// was built with PreserveCasing.
func (m *Machine) Encode(text string) string {
	m.Reset()
	var out strings.Builder
	out.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			m.tracef("Enciphering character: %q\n", r)
			out.WriteByte(m.encipher(byte(r-'A')) + 'A')
		case r >= 'a' && r <= 'z':
			m.tracef("Enciphering character: %q\n", r)
			c := m.encipher(byte(r - 'a'))
			if m.preserve {
				out.WriteByte(c + 'a')
			} else {
				out.WriteByte(c + 'A')
			}
		default:
			if !m.stripNon {
				out.WriteRune(r)
			}
		}
	}
	return out.String()
}

// Decode deciphers text. The machine is reciprocal, so this is Encode
// under another name; the two exist for intent at call sites.
func (m *Machine) Decode(text string) string { return m.Encode(text) }

// Step advances the rotor offsets for one keystroke, following the
// ratchet-and-pawl mechanics:
//
//   - the rightmost rotor always steps;
//   - a rotor steps when the rotor to its right showed a notch before
//     this keystroke;
//   - if the middle rotor itself sits at a notch, its own pawl engages
//     too: it steps and carries the leftmost rotor with it (the
//     double-step anomaly).
//
// All notch tests use pre-step positions, so one keystroke can never
// cascade a rotor twice.
func (m *Machine) step() {
	if m.rotors[2].atNotch() {
		carryLeft := m.rotors[1].atNotch()
		m.rotors[1].advance()
		if carryLeft {
			m.rotors[0].advance()
		}
	} else if m.rotors[1].atNotch() {
		m.rotors[1].advance()
		m.rotors[0].advance()
	}
	m.rotors[2].advance()
}

// encipher runs one letter index through the full signal path: step,
// plugboard, rotors right to left, reflector, rotors left to right
// inverted, plugboard again.
func (m *Machine) encipher(c byte) byte {
	m.step()

	c = m.traceStage("plugboard", c, m.plugboard.fwd[c])
	for i := MachineRotors - 1; i >= 0; i-- {
		m.rotors[i].refresh()
		c = m.traceStage(rotorStage(i), c, m.rotors[i].fwd[c])
	}
	c = m.traceStage("reflector", c, m.reflector.fwd[c])
	for i := 0; i < MachineRotors; i++ {
		c = m.traceStage(rotorStage(i)+" (return)", c, m.rotors[i].inv[c])
	}
	c = m.traceStage("plugboard (return)", c, m.plugboard.fwd[c])
	return c
}

func rotorStage(i int) string {
	return fmt.Sprintf("rotor %d", i+1)
}

func (m *Machine) traceStage(stage string, in, out byte) byte {
	if m.trace != nil {
		fmt.Fprintf(m.trace, "\t%s: %q -> %q\n", stage, rune(in+'A'), rune(out+'A'))
	}
	return out
}

func (m *Machine) tracef(format string, args ...any) {
	if m.trace != nil {
		fmt.Fprintf(m.trace, format, args...)
	}
}
