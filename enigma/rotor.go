package enigma

// rotorSpec is a fixed catalog entry: the historical wiring of a rotor
// and the window positions of its turnover notches.
type rotorSpec struct {
	wiring  string
	notches []byte
}

// The eight rotors issued for the Wehrmacht and Kriegsmarine machines.
// I-V carry a single turnover notch, VI-VIII carry two.
var rotorCatalog = map[int]rotorSpec{
	1: {"EKMFLGDQVZNTOWYHXUSPAIBRCJ", []byte{'Q' - 'A'}},
	2: {"AJDKSIRUXBLHWTMCQGZNPYFVOE", []byte{'E' - 'A'}},
	3: {"BDFHJLCPRTXVZNYEIWGAKMUSQO", []byte{'V' - 'A'}},
	4: {"ESOVPZJAYQUIRHXLNFTGKDCMWB", []byte{'J' - 'A'}},
	5: {"VZBRGITYUPSDNHLXAWMJQOFECK", []byte{'Z' - 'A'}},
	6: {"JPGVOUMFYQBENHZRDKASXLICTW", []byte{'M' - 'A', 'Z' - 'A'}},
	7: {"NZJHGRCXMYSWBOUFAIVLPEKQDT", []byte{'M' - 'A', 'Z' - 'A'}},
	8: {"FKQHTLXOCBJSPDZRAMEWNIUYGV", []byte{'M' - 'A', 'Z' - 'A'}},
}

// RotorCount is the number of rotors in the catalog, numbered 1..RotorCount.
const RotorCount = 8

// MachineRotors is the number of rotor slots in the machine.
const MachineRotors = 3

// KnownRotor reports whether number selects a rotor from the catalog.
func KnownRotor(number int) bool {
	_, ok := rotorCatalog[number]
	return ok
}

// rotor is a live rotor slot in a machine: the ring-adjusted wiring, the
// notch positions, and the mutable rotational offset. The effective
// permutation at the current offset is memoized in fwd/inv and
// recomputed lazily whenever the offset has moved since it was built.
type rotor struct {
	wiring  Permutation // wiring conjugated by the ring setting
	notches uint32      // bitmask over window positions
	start   int
	offset  int

	cachedAt int // offset fwd/inv were computed for; -1 when stale
	fwd      [AlphabetSize]byte
	inv      [AlphabetSize]byte
}

// newRotor assembles a rotor slot from a catalog number, a ring setting
// and a starting position, all 0-based. The caller is responsible for
// validity; an unknown number yields a zero wiring that maps everything
// to A.
func newRotor(number, ring, position int) rotor {
	spec := rotorCatalog[number]
	r := rotor{
		start:    position % AlphabetSize,
		offset:   position % AlphabetSize,
		cachedAt: -1,
	}
	for _, n := range spec.notches {
		r.notches |= 1 << n
	}
	// Conjugate the wiring by the ring setting: the wiring is rotated
	// against the ring, so entry i becomes wiring[i-ring]+ring (mod 26).
	for i := 0; i < AlphabetSize && len(spec.wiring) == AlphabetSize; i++ {
		out := (int(spec.wiring[(i-ring+AlphabetSize)%AlphabetSize]-'A') + ring) % AlphabetSize
		r.wiring.fwd[i] = byte(out)
		r.wiring.inv[out] = byte(i)
	}
	return r
}

// atNotch reports whether the rotor currently shows a notch position in
// the window. Notch positions ride with the rotor body, not the ring, so
// the ring setting plays no part here.
func (r *rotor) atNotch() bool { return r.notches&(1<<r.offset) != 0 }

func (r *rotor) advance() { r.offset = (r.offset + 1) % AlphabetSize }

func (r *rotor) reset() {
	r.offset = r.start
	r.cachedAt = -1
}

// refresh rebuilds the memoized effective permutation if the offset has
// moved. The effective mapping is the ring-adjusted wiring conjugated by
// the current offset.
func (r *rotor) refresh() {
	if r.cachedAt == r.offset {
		return
	}
	o := r.offset
	for i := 0; i < AlphabetSize; i++ {
		r.fwd[i] = byte((int(r.wiring.fwd[(i+o)%AlphabetSize]) + AlphabetSize - o) % AlphabetSize)
		r.inv[i] = byte((int(r.wiring.inv[(i+o)%AlphabetSize]) + AlphabetSize - o) % AlphabetSize)
	}
	r.cachedAt = o
}
