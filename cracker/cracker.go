// Package cracker recovers machine settings from ciphertext alone. It
// runs a staged search: a coarse parallel sweep over rotor orders and
// start positions, then per-candidate refinement of ring settings and
// plugboard pairs, judged throughout by a pluggable scoring oracle.
package cracker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/vi013t/enigma/enigma"
)

// ErrNotFound reports that no candidate reached the MinScore threshold.
var ErrNotFound = errors.New("no plausible settings found")

// maxPlugPairs is the physical cable count of the original plugboard.
const maxPlugPairs = 10

// Scorer rates a candidate plaintext for plausibility, higher is
// better. Implementations must be deterministic and safe for concurrent
// use; analysis.Scorer is the usual choice.
type Scorer interface {
	Score(text string) float64
}

// Options tune the search. The zero value of any field selects a
// sensible default.
type Options struct {
	// Rotors is the catalog subset to draw the three slots from, with
	// repetition allowed. Defaults to rotors 1 through 5.
	Rotors []int

	// Reflector used for every candidate. Defaults to "B".
	Reflector string

	// TopK is how many coarse candidates survive into refinement.
	// Defaults to 10.
	TopK int

	// MoveBudget caps the plugboard hill climb per candidate. Defaults
	// to 20 moves.
	MoveBudget int

	// MinScore is the acceptance threshold for the final answer. Zero
	// accepts anything.
	MinScore float64

	// Workers is the coarse-stage parallelism. Defaults to the CPU
	// count.
	Workers int

	// StopAbove, when positive, lets the coarse stage return as soon as
	// any candidate scores at least this value. It trades the
	// deterministic shortlist for speed, so it is off by default.
	StopAbove float64

	// Logger receives progress events. Defaults to a discard logger.
	Logger *slog.Logger
}

// Cracker is a reusable, concurrency-safe search engine bound to one
// scoring oracle.
type Cracker struct {
	scorer Scorer
	opts   Options
	log    *slog.Logger
}

// New builds a Cracker, filling unset options with defaults.
func New(scorer Scorer, opts Options) *Cracker {
	if len(opts.Rotors) == 0 {
		opts.Rotors = []int{1, 2, 3, 4, 5}
	}
	if opts.Reflector == "" {
		opts.Reflector = "B"
	}
	if opts.TopK < 1 {
		opts.TopK = 10
	}
	if opts.MoveBudget < 1 {
		opts.MoveBudget = 20
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cracker{scorer: scorer, opts: opts, log: log}
}

// Crack searches the configuration space for the settings that decode
// ciphertext into the most plausible plaintext. It returns ErrNotFound
// when nothing reaches MinScore, and the context error when canceled.
// Given equal options and input, the result is reproducible: ties are
// broken by pair count and then by the canonical settings key.
func (c *Cracker) Crack(ctx context.Context, ciphertext string) (Candidate, error) {
	log := c.log.With("run", uuid.NewString())
	orders := rotorOrders(c.opts.Rotors)
	log.Info("coarse search starting",
		"rotor_orders", len(orders),
		"positions", enigma.AlphabetSize*enigma.AlphabetSize*enigma.AlphabetSize,
		"workers", c.opts.Workers)

	short := c.coarseSearch(ctx, ciphertext, orders)
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	coarseBest, ok := short.best()
	if !ok {
		return Candidate{}, ErrNotFound
	}
	log.Info("coarse search done", "best_score", coarseBest.Score, "shortlist", len(short.set))

	refined := c.refineAll(ctx, ciphertext, short.set)
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	best := refined[0]
	for _, cand := range refined[1:] {
		if cand.ranksBefore(best) {
			best = cand
		}
	}
	log.Info("refinement done", "best_score", best.Score, "settings", best.Settings.Key())

	if best.Score < c.opts.MinScore {
		return Candidate{}, ErrNotFound
	}
	return best, nil
}

// rotorOrders enumerates every assignment of the catalog subset to the
// three slots, repetition allowed, in a fixed order.
func rotorOrders(catalog []int) [][enigma.MachineRotors]int {
	orders := make([][enigma.MachineRotors]int, 0, len(catalog)*len(catalog)*len(catalog))
	for _, left := range catalog {
		for _, middle := range catalog {
			for _, right := range catalog {
				orders = append(orders, [enigma.MachineRotors]int{left, middle, right})
			}
		}
	}
	return orders
}

// coarseSearch sweeps every rotor order against all start positions,
// rings at zero and an empty plugboard, keeping the TopK best. Workers
// pull whole rotor orders off a channel and reduce into private
// shortlists, merged after the last worker drains.
func (c *Cracker) coarseSearch(ctx context.Context, ciphertext string, orders [][enigma.MachineRotors]int) *shortlist {
	jobs := make(chan [enigma.MachineRotors]int)
	locals := make(chan *shortlist, c.opts.Workers)
	var stop atomic.Bool

	var wg sync.WaitGroup
	for w := 0; w < c.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := newShortlist(c.opts.TopK)
			for rotors := range jobs {
				if ctx.Err() != nil || stop.Load() {
					continue // drain
				}
				c.sweepPositions(ciphertext, rotors, local, &stop)
			}
			locals <- local
		}()
	}

	go func() {
		defer close(jobs)
		for _, rotors := range orders {
			select {
			case jobs <- rotors:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(locals)
	merged := newShortlist(c.opts.TopK)
	for local := range locals {
		merged.merge(local)
	}
	return merged
}

// sweepPositions scores one rotor order at every start position.
func (c *Cracker) sweepPositions(ciphertext string, rotors [enigma.MachineRotors]int, local *shortlist, stop *atomic.Bool) {
	settings := enigma.Settings{Rotors: rotors, Reflector: c.opts.Reflector}
	for left := 0; left < enigma.AlphabetSize; left++ {
		for middle := 0; middle < enigma.AlphabetSize; middle++ {
			if stop.Load() {
				return
			}
			for right := 0; right < enigma.AlphabetSize; right++ {
				settings.Positions = [enigma.MachineRotors]int{left, middle, right}
				cand, ok := c.evaluate(settings, ciphertext)
				if !ok {
					continue
				}
				local.add(cand)
				if c.opts.StopAbove > 0 && cand.Score >= c.opts.StopAbove {
					stop.Store(true)
					return
				}
			}
		}
	}
}

// evaluate decodes the ciphertext under one configuration and scores
// the result. A panicking configuration or scorer discards only that
// candidate, never the surrounding sweep.
func (c *Cracker) evaluate(settings enigma.Settings, ciphertext string) (cand Candidate, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("candidate discarded", "settings", settings.Key(), "panic", r)
			ok = false
		}
	}()
	machine := enigma.FromSettings(settings).BuildUnchecked()
	plaintext := machine.Decode(ciphertext)
	return Candidate{Settings: settings, Plaintext: plaintext, Score: c.scorer.Score(plaintext)}, true
}

// refineAll runs ring and plugboard refinement on every shortlisted
// candidate, one goroutine each. Results land at fixed indices, so the
// outcome does not depend on completion order.
func (c *Cracker) refineAll(ctx context.Context, ciphertext string, coarse []Candidate) []Candidate {
	refined := make([]Candidate, len(coarse))
	var wg sync.WaitGroup
	for i, cand := range coarse {
		wg.Add(1)
		go func(i int, cand Candidate) {
			defer wg.Done()
			cand = c.sweepRings(ctx, ciphertext, cand)
			refined[i] = c.climbPlugboard(ctx, ciphertext, cand)
		}(i, cand)
	}
	wg.Wait()
	return refined
}

// sweepRings tries every middle and right ring setting for a candidate.
// The window position advances with the ring so the coarse-stage
// alignment of the wiring core is preserved; the leftmost ring only
// rotates the whole key space and stays at zero.
func (c *Cracker) sweepRings(ctx context.Context, ciphertext string, cand Candidate) Candidate {
	base := cand.Settings
	best := cand
	for middle := 0; middle < enigma.AlphabetSize; middle++ {
		if ctx.Err() != nil {
			return best
		}
		for right := 0; right < enigma.AlphabetSize; right++ {
			settings := base
			settings.Rings[1] = middle
			settings.Rings[2] = right
			settings.Positions[1] = (base.Positions[1] + middle) % enigma.AlphabetSize
			settings.Positions[2] = (base.Positions[2] + right) % enigma.AlphabetSize
			if next, ok := c.evaluate(settings, ciphertext); ok && next.ranksBefore(best) {
				best = next
			}
		}
	}
	return best
}

// climbPlugboard greedily grows and prunes the plugboard: each move
// tries removing every present pair and adding every absent one, takes
// the best strict improvement, and stops at a local optimum or when the
// move budget runs out.
func (c *Cracker) climbPlugboard(ctx context.Context, ciphertext string, cand Candidate) Candidate {
	best := cand
	for move := 0; move < c.opts.MoveBudget; move++ {
		if ctx.Err() != nil {
			return best
		}
		next, improved := c.bestPlugboardMove(ciphertext, best)
		if !improved {
			return best
		}
		best = next
	}
	return best
}

func (c *Cracker) bestPlugboardMove(ciphertext string, current Candidate) (Candidate, bool) {
	pairs := strings.Fields(enigma.CanonicalPlugboard(current.Settings.Plugboard))
	var used [enigma.AlphabetSize]bool
	for _, pair := range pairs {
		used[pair[0]-'A'] = true
		used[pair[1]-'A'] = true
	}

	best := current
	improved := false
	try := func(spec string) {
		settings := current.Settings
		settings.Plugboard = spec
		if next, ok := c.evaluate(settings, ciphertext); ok && next.Score > best.Score {
			best = next
			improved = true
		}
	}

	for i := range pairs {
		rest := make([]string, 0, len(pairs)-1)
		rest = append(rest, pairs[:i]...)
		rest = append(rest, pairs[i+1:]...)
		try(strings.Join(rest, " "))
	}
	if len(pairs) < maxPlugPairs {
		for a := 0; a < enigma.AlphabetSize; a++ {
			if used[a] {
				continue
			}
			for b := a + 1; b < enigma.AlphabetSize; b++ {
				if used[b] {
					continue
				}
				pair := string([]byte{byte(a) + 'A', byte(b) + 'A'})
				try(strings.Join(append(append([]string(nil), pairs...), pair), " "))
			}
		}
	}
	return best, improved
}
