package analysis

import (
	"math"
	"math/rand"
	"testing"
)

const english = "IT IS A TRUTH UNIVERSALLY ACKNOWLEDGED THAT A SINGLE MAN IN " +
	"POSSESSION OF A GOOD FORTUNE MUST BE IN WANT OF A WIFE"

const gibberish = "XQJZVKWPYGXBQHZJMVKXWQPZYJGHXBVMKQWZPJYXGHBVQKMZWXPJ"

func TestIndexOfCoincidence(t *testing.T) {
	// A single repeated letter always collides.
	if got := IndexOfCoincidence("AAAAAAA"); got != 1 {
		t.Errorf("IoC(AAAAAAA) = %v, want 1", got)
	}
	// One of each letter never collides.
	if got := IndexOfCoincidence("ABCDEFGHIJKLMNOPQRSTUVWXYZ"); got != 0 {
		t.Errorf("IoC(alphabet) = %v, want 0", got)
	}
	// Too short to measure.
	if got := IndexOfCoincidence("A"); got != 0 {
		t.Errorf("IoC(A) = %v, want 0", got)
	}
	// English sits near 0.0667.
	if got := IndexOfCoincidence(english); math.Abs(got-0.0667) > 0.02 {
		t.Errorf("IoC(english) = %v, want near 0.0667", got)
	}
	// Case and punctuation are ignored.
	if IndexOfCoincidence("Hello, World!") != IndexOfCoincidence("HELLOWORLD") {
		t.Error("IoC is not normalization-invariant")
	}
}

func TestEnglishOutscoresGibberish(t *testing.T) {
	s := NewScorer()
	eng := s.Score(english)
	gib := s.Score(gibberish)
	if eng <= gib {
		t.Errorf("Score(english) = %v not above Score(gibberish) = %v", eng, gib)
	}
	if eng < 0 || eng > 1 || gib < 0 || gib > 1 {
		t.Errorf("scores out of [0,1]: %v, %v", eng, gib)
	}
}

func TestScoreDeterministic(t *testing.T) {
	// Equal input must always sum to the identical float64; the cracker's
	// reproducibility rides on it. Hammer many texts because any
	// order-dependent accumulation only shows up on some inputs.
	s := NewScorer()
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 25; trial++ {
		raw := make([]byte, 300)
		for i := range raw {
			raw[i] = byte('A' + rng.Intn(26))
		}
		text := string(raw)
		score := s.Score(text)
		bigram := BigramScore(text)
		for i := 0; i < 40; i++ {
			if got := s.Score(text); got != score {
				t.Fatalf("trial %d iter %d: Score = %v, want %v", trial, i, got, score)
			}
			if got := BigramScore(text); got != bigram {
				t.Fatalf("trial %d iter %d: BigramScore = %v, want %v", trial, i, got, bigram)
			}
		}
	}
	if s.Score(english) != s.Score(english) {
		t.Error("Score is not deterministic")
	}
}

func TestMonogramScoreBounds(t *testing.T) {
	if got := MonogramScore(""); got != 0 {
		t.Errorf("MonogramScore(empty) = %v, want 0", got)
	}
	eng := MonogramScore(english)
	skew := MonogramScore("ZZZZZZZZZZ")
	if eng <= skew {
		t.Errorf("english monograms %v not above skewed %v", eng, skew)
	}
}

func TestBigramScoreShortInput(t *testing.T) {
	if got := BigramScore("A"); got != 0 {
		t.Errorf("BigramScore(A) = %v, want 0", got)
	}
	if BigramScore(english) <= BigramScore(gibberish) {
		t.Error("english bigrams do not outscore gibberish")
	}
}
