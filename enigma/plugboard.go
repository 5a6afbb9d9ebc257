package enigma

import (
	"fmt"
	"sort"
	"strings"
)

// parsePlugboard turns a space-delimited pair spec such as
// "BY EW FZ GI QM RV UX" into an involutive permutation. Every pair must
// be two distinct letters, and no letter may appear in more than one
// pair. Letters not named map to themselves. The empty spec is the
// identity plugboard.
func parsePlugboard(spec string) (Permutation, error) {
	p := identityPermutation()
	var used [AlphabetSize]bool
	for _, pair := range strings.Fields(spec) {
		if len(pair) != 2 {
			return p, fmt.Errorf("plugboard pair %q: want exactly two letters", pair)
		}
		a, b := upperIndex(pair[0]), upperIndex(pair[1])
		if a >= AlphabetSize || b >= AlphabetSize {
			return p, fmt.Errorf("plugboard pair %q: letters must be A-Z", pair)
		}
		if a == b {
			return p, fmt.Errorf("plugboard pair %q: a letter cannot be steckered to itself", pair)
		}
		if used[a] || used[b] {
			return p, fmt.Errorf("plugboard pair %q: letter already used by another pair", pair)
		}
		used[a], used[b] = true, true
		p.fwd[a], p.fwd[b] = b, a
		p.inv[a], p.inv[b] = b, a
	}
	return p, nil
}

// parsePlugboardUnchecked skips validation; a duplicate letter silently
// lets the later pair win, mirroring a physically re-plugged cable.
func parsePlugboardUnchecked(spec string) Permutation {
	p := identityPermutation()
	for _, pair := range strings.Fields(spec) {
		if len(pair) < 2 {
			continue
		}
		a, b := upperIndex(pair[0]), upperIndex(pair[1])
		if a < AlphabetSize && b < AlphabetSize {
			p.fwd[a], p.fwd[b] = b, a
			p.inv[a], p.inv[b] = b, a
		}
	}
	return p
}

// CanonicalPlugboard rewrites a pair spec in canonical form: uppercase,
// each pair with its smaller letter first, pairs sorted. Two specs
// describing the same board always canonicalize identically, which is
// what the cracker's deterministic ordering relies on.
func CanonicalPlugboard(spec string) string {
	pairs := strings.Fields(strings.ToUpper(spec))
	for i, pair := range pairs {
		if len(pair) == 2 && pair[0] > pair[1] {
			pairs[i] = string([]byte{pair[1], pair[0]})
		}
	}
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}

// PlugboardPairs counts the pairs in a spec.
func PlugboardPairs(spec string) int { return len(strings.Fields(spec)) }

func upperIndex(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a'
	}
	return c - 'A'
}
