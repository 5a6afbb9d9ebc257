// Package enigma implements the Enigma family of rotor cipher machines:
// permutation wirings, rotors with ring settings and turnover notches,
// plugboard, reflector, and the reciprocal letter transform built from
// them.
package enigma

import "fmt"

// AlphabetSize is the number of symbols the machine operates on.
const AlphabetSize = 26

// Permutation is a bijection over the letters A-Z, stored as paired
// forward and inverse lookup tables of 0-based letter indices.
// Immutable once constructed.
type Permutation struct {
	fwd [AlphabetSize]byte
	inv [AlphabetSize]byte
}

// NewPermutation builds a permutation from a 26-letter wiring string such
// as "EKMFLGDQVZNTOWYHXUSPAIBRCJ", where position i maps the letter i to
// the letter at that position. Every letter A-Z must appear exactly once.
func NewPermutation(letters string) (Permutation, error) {
	var p Permutation
	if len(letters) != AlphabetSize {
		return p, fmt.Errorf("wiring %q: want %d letters, have %d", letters, AlphabetSize, len(letters))
	}
	var seen [AlphabetSize]bool
	for i := 0; i < AlphabetSize; i++ {
		c := letters[i]
		if c < 'A' || c > 'Z' {
			return p, fmt.Errorf("wiring %q: %q is not a letter A-Z", letters, c)
		}
		if seen[c-'A'] {
			return p, fmt.Errorf("wiring %q: letter %q appears twice", letters, c)
		}
		seen[c-'A'] = true
		p.fwd[i] = c - 'A'
		p.inv[c-'A'] = byte(i)
	}
	return p, nil
}

// newPermutationUnchecked builds a permutation without validating the
// wiring. A malformed wiring yields a table that is simply wrong, or one
// that faults on lookup; that is the unchecked contract.
func newPermutationUnchecked(letters string) Permutation {
	var p Permutation
	for i := 0; i < len(letters) && i < AlphabetSize; i++ {
		c := letters[i] - 'A'
		p.fwd[i] = c
		if c < AlphabetSize {
			p.inv[c] = byte(i)
		}
	}
	return p
}

func identityPermutation() Permutation {
	var p Permutation
	for i := byte(0); i < AlphabetSize; i++ {
		p.fwd[i] = i
		p.inv[i] = i
	}
	return p
}

// Forward maps the letter index i through the permutation.
func (p Permutation) Forward(i byte) byte { return p.fwd[i%AlphabetSize] }

// Inverse maps the letter index i back through the permutation.
func (p Permutation) Inverse(i byte) byte { return p.inv[i%AlphabetSize] }

// IsInvolution reports whether the permutation is its own inverse.
func (p Permutation) IsInvolution() bool {
	for i := byte(0); i < AlphabetSize; i++ {
		if p.fwd[p.fwd[i]] != i {
			return false
		}
	}
	return true
}
