package cracker

import (
	"sort"

	"github.com/vi013t/enigma/enigma"
)

// Candidate is one point in the configuration space: the machine
// settings, the plaintext they decode the ciphertext to, and the
// oracle's plausibility score for that plaintext.
type Candidate struct {
	Settings  enigma.Settings
	Plaintext string
	Score     float64
}

func (c Candidate) pairs() int { return enigma.PlugboardPairs(c.Settings.Plugboard) }

// ranksBefore is the deterministic total order used everywhere in the
// engine: higher score first, then fewer plugboard pairs (simpler
// configurations win ties), then the lexicographic settings key. Being
// total, it makes every reduction independent of evaluation order.
func (c Candidate) ranksBefore(other Candidate) bool {
	if c.Score != other.Score {
		return c.Score > other.Score
	}
	if a, b := c.pairs(), other.pairs(); a != b {
		return a < b
	}
	return c.Settings.Key() < other.Settings.Key()
}

// shortlist keeps the best max candidates seen so far, sorted by
// ranksBefore. Each worker owns one; merging them is commutative and
// associative, so partition order never shows in the result.
type shortlist struct {
	max int
	set []Candidate
}

func newShortlist(max int) *shortlist {
	if max < 1 {
		max = 1
	}
	return &shortlist{max: max, set: make([]Candidate, 0, max+1)}
}

func (s *shortlist) add(c Candidate) {
	if len(s.set) == s.max && !c.ranksBefore(s.set[len(s.set)-1]) {
		return
	}
	i := sort.Search(len(s.set), func(i int) bool { return c.ranksBefore(s.set[i]) })
	s.set = append(s.set, Candidate{})
	copy(s.set[i+1:], s.set[i:])
	s.set[i] = c
	if len(s.set) > s.max {
		s.set = s.set[:s.max]
	}
}

func (s *shortlist) merge(other *shortlist) {
	for _, c := range other.set {
		s.add(c)
	}
}

func (s *shortlist) best() (Candidate, bool) {
	if len(s.set) == 0 {
		return Candidate{}, false
	}
	return s.set[0], true
}
