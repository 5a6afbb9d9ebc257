package enigma

import (
	"fmt"
	"io"
)

// Settings is the immutable description of a machine configuration:
// which rotors sit in which slot (index 0 is the leftmost), their ring
// settings and starting positions (0-based, modulo 26), the reflector
// name and the plugboard pair spec. Together with the transform rules it
// fully determines machine behaviour.
type Settings struct {
	Rotors    [MachineRotors]int
	Reflector string
	Rings     [MachineRotors]int
	Positions [MachineRotors]int
	Plugboard string
}

// DefaultSettings is rotors I/II/III, reflector B, all offsets zero and
// an empty plugboard.
func DefaultSettings() Settings {
	return Settings{Rotors: [MachineRotors]int{1, 2, 3}, Reflector: "B"}
}

// Key renders the settings as a fixed-width canonical string. Equal
// settings produce equal keys, and lexicographic key order is total, so
// the cracker uses it as the deterministic tie-break.
func (s Settings) Key() string {
	return fmt.Sprintf("rotors=%d,%d,%d reflector=%s rings=%02d,%02d,%02d positions=%02d,%02d,%02d plugboard=%s",
		s.Rotors[0], s.Rotors[1], s.Rotors[2], s.Reflector,
		s.Rings[0], s.Rings[1], s.Rings[2],
		s.Positions[0], s.Positions[1], s.Positions[2],
		CanonicalPlugboard(s.Plugboard))
}

// validate is the single validation pass shared by every checked entry
// point. It reports the first offending field.
func (s Settings) validate() error {
	for i, n := range s.Rotors {
		if !KnownRotor(n) {
			return &ConfigError{
				Field:   fmt.Sprintf("rotors[%d]", i),
				Message: fmt.Sprintf("no rotor %d in the catalog (have 1..%d)", n, RotorCount),
				Err:     ErrUnknownRotor,
			}
		}
	}
	if _, ok := canonicalReflector(s.Reflector); !ok {
		return &ConfigError{
			Field:   "reflector",
			Message: fmt.Sprintf("no reflector %q in the catalog", s.Reflector),
			Err:     ErrUnknownReflector,
		}
	}
	for i, r := range s.Rings {
		if r < 0 || r >= AlphabetSize {
			return &ConfigError{
				Field:   fmt.Sprintf("rings[%d]", i),
				Message: fmt.Sprintf("ring setting %d outside [0, %d)", r, AlphabetSize),
				Err:     ErrOffsetRange,
			}
		}
	}
	for i, p := range s.Positions {
		if p < 0 || p >= AlphabetSize {
			return &ConfigError{
				Field:   fmt.Sprintf("positions[%d]", i),
				Message: fmt.Sprintf("position %d outside [0, %d)", p, AlphabetSize),
				Err:     ErrOffsetRange,
			}
		}
	}
	if _, err := parsePlugboard(s.Plugboard); err != nil {
		return &ConfigError{Field: "plugboard", Message: err.Error(), Err: ErrBadPlugboard}
	}
	return nil
}

// Builder accumulates machine settings fluently. Fields left unset keep
// the defaults from DefaultSettings. Finish with Build for the validated
// path or BuildUnchecked for the hot path that skips every check.
type Builder struct {
	s        Settings
	stripNon bool
	preserve bool
	trace    io.Writer
}

// New starts a builder with default settings.
func New() *Builder {
	return &Builder{s: DefaultSettings()}
}

// FromSettings starts a builder from an existing settings value.
func FromSettings(s Settings) *Builder {
	return &Builder{s: s}
}

// Rotors selects the rotors left to right by catalog number (1..8).
// The same rotor may appear in more than one slot; the historical
// machines shipped one of each, but the model does not care.
func (b *Builder) Rotors(first, second, third int) *Builder {
	b.s.Rotors = [MachineRotors]int{first, second, third}
	return b
}

// Reflector selects the reflector by catalog name (case-insensitive on
// the checked path).
func (b *Builder) Reflector(name string) *Builder {
	b.s.Reflector = name
	return b
}

// RingSettings sets the per-rotor ring settings, 0-based.
func (b *Builder) RingSettings(first, second, third int) *Builder {
	b.s.Rings = [MachineRotors]int{first, second, third}
	return b
}

// RingPositions sets the per-rotor starting positions, 0-based.
func (b *Builder) RingPositions(first, second, third int) *Builder {
	b.s.Positions = [MachineRotors]int{first, second, third}
	return b
}

// Plugboard sets the plugboard from a space-delimited pair spec such as
// "AY BF QR". Pairs are bidirectional.
func (b *Builder) Plugboard(spec string) *Builder {
	b.s.Plugboard = spec
	return b
}

// StripPunctuation drops non-alphabetic input instead of passing it
// through. Output formatting only; it never affects rotor state.
func (b *Builder) StripPunctuation() *Builder {
	b.stripNon = true
	return b
}

// PreserveCasing keeps the casing of input letters in the output instead
// of normalizing everything to uppercase.
func (b *Builder) PreserveCasing() *Builder {
	b.preserve = true
	return b
}

// Trace writes a step-by-step account of every letter's path through the
// plugboard, rotors and reflector to w.
func (b *Builder) Trace(w io.Writer) *Builder {
	b.trace = w
	return b
}

// Build validates the accumulated settings and assembles the machine.
// Any violation is reported as a ConfigError naming the offending field;
// no partially built machine is returned.
func (b *Builder) Build() (*Machine, error) {
	if err := b.s.validate(); err != nil {
		return nil, err
	}
	s := b.s
	s.Reflector, _ = canonicalReflector(s.Reflector)
	plug, _ := parsePlugboard(s.Plugboard)
	m := b.assemble(s, plug)
	m.stripNon = b.stripNon
	m.preserve = b.preserve
	m.trace = b.trace
	return m, nil
}

// BuildUnchecked skips validation entirely and always returns a machine.
// This exists for the cracker, which constructs millions of machines
// from settings it already knows are in range. Feeding it settings that
// checked construction would reject may fault mid-transform or silently
// produce wrong output. Formatting options (strip, casing, trace) are a
// safe-path feature and are not carried over.
func (b *Builder) BuildUnchecked() *Machine {
	return b.assemble(b.s, parsePlugboardUnchecked(b.s.Plugboard))
}

func (b *Builder) assemble(s Settings, plug Permutation) *Machine {
	m := &Machine{
		settings:  s,
		reflector: reflectorTable(s.Reflector),
		plugboard: plug,
	}
	for i := 0; i < MachineRotors; i++ {
		m.rotors[i] = newRotor(s.Rotors[i], s.Rings[i]%AlphabetSize, s.Positions[i]%AlphabetSize)
	}
	return m
}
