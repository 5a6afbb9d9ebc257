package cracker

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vi013t/enigma/analysis"
	"github.com/vi013t/enigma/enigma"
)

const samplePlaintext = "THE WEATHER REPORT FOR THE NORTHERN SECTOR CALLS FOR HEAVY " +
	"FOG OVER THE CHANNEL WITH SCATTERED SHOWERS ALONG THE COAST AND ALL " +
	"CONVOYS ARE ORDERED TO HOLD THEIR CURRENT POSITIONS UNTIL THE FOG " +
	"LIFTS AND VISIBILITY RETURNS TO NORMAL"

func encodeWith(t *testing.T, s enigma.Settings, plaintext string) string {
	t.Helper()
	m, err := enigma.FromSettings(s).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m.Encode(plaintext)
}

func TestCrackDeterministic(t *testing.T) {
	s := enigma.DefaultSettings()
	s.Rotors = [3]int{3, 3, 3}
	s.Positions = [3]int{7, 2, 19}
	ciphertext := encodeWith(t, s, samplePlaintext)

	opts := Options{Rotors: []int{3}, TopK: 5, MoveBudget: 3}
	first, err := New(analysis.NewScorer(), opts).Crack(context.Background(), ciphertext)
	if err != nil {
		t.Fatalf("first Crack: %v", err)
	}
	second, err := New(analysis.NewScorer(), opts).Crack(context.Background(), ciphertext)
	if err != nil {
		t.Fatalf("second Crack: %v", err)
	}
	if first.Settings.Key() != second.Settings.Key() || first.Score != second.Score {
		t.Errorf("runs disagree: %s (%v) vs %s (%v)",
			first.Settings.Key(), first.Score, second.Settings.Key(), second.Score)
	}
}

func TestCrackRecoversSettings(t *testing.T) {
	if testing.Short() {
		t.Skip("full rotor-order search")
	}
	s := enigma.DefaultSettings()
	s.Rotors = [3]int{2, 1, 3}
	s.Positions = [3]int{4, 11, 23}
	ciphertext := encodeWith(t, s, samplePlaintext)

	c := New(analysis.NewScorer(), Options{Rotors: []int{1, 2, 3}, MinScore: 0.7})
	got, err := c.Crack(context.Background(), ciphertext)
	if err != nil {
		t.Fatalf("Crack: %v", err)
	}
	if got.Settings.Rotors != s.Rotors {
		t.Errorf("rotors = %v, want %v", got.Settings.Rotors, s.Rotors)
	}
	if got.Settings.Positions != s.Positions {
		t.Errorf("positions = %v, want %v", got.Settings.Positions, s.Positions)
	}
	if got.Plaintext != samplePlaintext {
		t.Errorf("plaintext = %q, want %q", got.Plaintext, samplePlaintext)
	}
}

func TestClimbPlugboardFindsPair(t *testing.T) {
	s := enigma.DefaultSettings()
	s.Positions = [3]int{9, 0, 14}
	s.Plugboard = "AB"
	ciphertext := encodeWith(t, s, samplePlaintext)

	// Seed the climb with the true rotor configuration but no cables.
	seed := s
	seed.Plugboard = ""
	c := New(analysis.NewScorer(), Options{MoveBudget: 5})
	start, ok := c.evaluate(seed, ciphertext)
	if !ok {
		t.Fatal("seed candidate failed to evaluate")
	}
	refined := c.climbPlugboard(context.Background(), ciphertext, start)
	if refined.Score <= start.Score {
		t.Fatalf("climb did not improve: %v -> %v", start.Score, refined.Score)
	}
	if got := enigma.CanonicalPlugboard(refined.Settings.Plugboard); !strings.Contains(got, "AB") {
		t.Errorf("plugboard %q does not recover pair AB", got)
	}
}

// panicScorer fails its first few calls, standing in for a candidate
// that blows up mid-search.
type panicScorer struct {
	remaining atomic.Int64
	inner     *analysis.Scorer
}

func (p *panicScorer) Score(text string) float64 {
	if p.remaining.Add(-1) >= 0 {
		panic("scorer fault")
	}
	return p.inner.Score(text)
}

func TestCrackSurvivesPanickingCandidates(t *testing.T) {
	s := enigma.DefaultSettings()
	s.Rotors = [3]int{3, 3, 3}
	ciphertext := encodeWith(t, s, samplePlaintext)

	scorer := &panicScorer{inner: analysis.NewScorer()}
	scorer.remaining.Store(50)
	c := New(scorer, Options{Rotors: []int{3}, TopK: 3, MoveBudget: 2})
	if _, err := c.Crack(context.Background(), ciphertext); err != nil {
		t.Fatalf("Crack: %v", err)
	}
}

func TestCrackBelowThreshold(t *testing.T) {
	c := New(analysis.NewScorer(), Options{Rotors: []int{1}, TopK: 2, MoveBudget: 1, MinScore: 2})
	_, err := c.Crack(context.Background(), "QWERTZUIOPASDFGHJKLYXCVBNM")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Crack error = %v, want ErrNotFound", err)
	}
}

func TestCrackHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(analysis.NewScorer(), Options{Rotors: []int{1, 2, 3, 4, 5}})
	if _, err := c.Crack(ctx, "HELLOWORLD"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Crack error = %v, want context.Canceled", err)
	}
}

func TestShortlistOrderAndBound(t *testing.T) {
	s := newShortlist(3)
	base := enigma.DefaultSettings()
	for i, score := range []float64{0.2, 0.9, 0.5, 0.7, 0.1} {
		st := base
		st.Positions[2] = i
		s.add(Candidate{Settings: st, Score: score})
	}
	if len(s.set) != 3 {
		t.Fatalf("shortlist holds %d, want 3", len(s.set))
	}
	want := []float64{0.9, 0.7, 0.5}
	for i, c := range s.set {
		if c.Score != want[i] {
			t.Errorf("set[%d].Score = %v, want %v", i, c.Score, want[i])
		}
	}

	// Merge order must not matter.
	a, b := newShortlist(3), newShortlist(3)
	for i, score := range []float64{0.3, 0.8} {
		st := base
		st.Positions[1] = i
		a.add(Candidate{Settings: st, Score: score})
	}
	for i, score := range []float64{0.6, 0.4} {
		st := base
		st.Positions[0] = i + 1
		b.add(Candidate{Settings: st, Score: score})
	}
	a.merge(b)
	if best, _ := a.best(); best.Score != 0.8 {
		t.Errorf("merged best = %v, want 0.8", best.Score)
	}
}

func TestRanksBeforeTieBreaks(t *testing.T) {
	base := enigma.DefaultSettings()
	plain := Candidate{Settings: base, Score: 0.5}
	cabled := plain
	cabled.Settings.Plugboard = "AB"
	if !plain.ranksBefore(cabled) {
		t.Error("equal scores: fewer plugboard pairs should rank first")
	}
	other := plain
	other.Settings.Positions[2] = 1
	if !plain.ranksBefore(other) {
		t.Error("equal scores and pairs: lower settings key should rank first")
	}
}
