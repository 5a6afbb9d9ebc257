package enigma

import "testing"

func TestPermutationInverseConsistency(t *testing.T) {
	for number := 1; number <= RotorCount; number++ {
		p, err := NewPermutation(rotorCatalog[number].wiring)
		if err != nil {
			t.Fatalf("rotor %d: %v", number, err)
		}
		for i := byte(0); i < AlphabetSize; i++ {
			if p.Inverse(p.Forward(i)) != i {
				t.Fatalf("rotor %d: inverse[forward[%d]] != %d", number, i, i)
			}
		}
	}
}

func TestNewPermutationRejectsBadWirings(t *testing.T) {
	bad := []string{
		"",
		"ABC",
		"EKMFLGDQVZNTOWYHXUSPAIBRCC", // C twice, J missing
		"EKMFLGDQVZNTOWYHXUSPAIBRC?",
	}
	for _, w := range bad {
		if _, err := NewPermutation(w); err == nil {
			t.Errorf("NewPermutation(%q) accepted a bad wiring", w)
		}
	}
}

func TestReflectorsAreDerangedInvolutions(t *testing.T) {
	for _, name := range ReflectorNames() {
		p, err := NewPermutation(reflectorCatalog[name])
		if err != nil {
			t.Fatalf("reflector %s: %v", name, err)
		}
		if !p.IsInvolution() {
			t.Errorf("reflector %s is not an involution", name)
		}
		for i := byte(0); i < AlphabetSize; i++ {
			if p.Forward(i) == i {
				t.Errorf("reflector %s maps %q to itself", name, rune(i+'A'))
			}
		}
	}
}

func TestRingSettingConjugation(t *testing.T) {
	// With ring setting B (1) at position A, rotor I famously maps A to K.
	r := newRotor(1, 1, 0)
	r.refresh()
	if got := r.fwd[0]; got != 'K'-'A' {
		t.Errorf("rotor I ring 1: A -> %q, want K", rune(got+'A'))
	}

	// Ring 0 is the bare wiring.
	r = newRotor(1, 0, 0)
	r.refresh()
	if got := r.fwd[0]; got != 'E'-'A' {
		t.Errorf("rotor I ring 0: A -> %q, want E", rune(got+'A'))
	}
}

func TestEffectiveTableMemoization(t *testing.T) {
	r := newRotor(1, 0, 0)
	r.refresh()
	first := r.fwd
	r.refresh()
	if r.fwd != first {
		t.Fatal("refresh at an unchanged offset rebuilt a different table")
	}
	r.advance()
	r.refresh()
	if r.fwd == first {
		t.Fatal("refresh after advance kept the stale table")
	}
	if r.cachedAt != r.offset {
		t.Fatalf("cachedAt = %d, offset = %d", r.cachedAt, r.offset)
	}
}

func TestPlugboardInvolution(t *testing.T) {
	specs := []string{"", "AB", "BY EW FZ GI QM RV UX", "zx qw"}
	for _, spec := range specs {
		p, err := parsePlugboard(spec)
		if err != nil {
			t.Fatalf("parsePlugboard(%q): %v", spec, err)
		}
		if !p.IsInvolution() {
			t.Errorf("plugboard %q is not an involution", spec)
		}
		for i := byte(0); i < AlphabetSize; i++ {
			if p.Forward(p.Forward(i)) != i {
				t.Errorf("plugboard %q: applying twice moved %q", spec, rune(i+'A'))
			}
		}
	}
}

func TestCanonicalPlugboard(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"YB WE", "BY EW"},
		{"by ew fz", "BY EW FZ"},
		{"ZA MQ", "AZ MQ"},
	}
	for _, tc := range cases {
		if got := CanonicalPlugboard(tc.in); got != tc.want {
			t.Errorf("CanonicalPlugboard(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSettingsKeyDistinguishesConfigurations(t *testing.T) {
	a := DefaultSettings()
	b := DefaultSettings()
	if a.Key() != b.Key() {
		t.Error("equal settings produced different keys")
	}
	b.Positions[2] = 1
	if a.Key() == b.Key() {
		t.Error("different settings produced the same key")
	}
	c := DefaultSettings()
	c.Plugboard = "YB"
	d := DefaultSettings()
	d.Plugboard = "by"
	if c.Key() != d.Key() {
		t.Error("equivalent plugboards produced different keys")
	}
}
