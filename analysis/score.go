// Package analysis scores candidate plaintexts for linguistic
// plausibility. The cracker consumes it as its scoring oracle; the
// arithmetic is ordinary frequency statistics over fixed English tables.
package analysis

import "math"

// englishIoC is the index of coincidence of natural English text.
// Uniformly random letters sit near 1/26 = 0.0385.
const englishIoC = 0.0667

// Relative frequencies of the letters A-Z in English text.
var englishMonograms = [26]float64{
	0.0817, 0.0150, 0.0278, 0.0425, 0.1270, 0.0223, 0.0202, 0.0609,
	0.0697, 0.0015, 0.0077, 0.0403, 0.0241, 0.0675, 0.0751, 0.0193,
	0.0010, 0.0599, 0.0633, 0.0906, 0.0276, 0.0098, 0.0236, 0.0015,
	0.0197, 0.0007,
}

type bigramFreq struct {
	bigram [2]byte
	freq   float64
}

// The most common English bigrams and the share of all bigrams they
// account for. Everything absent from the table is treated as rare.
// Kept as an ordered slice, not a map: scores are accumulated in this
// fixed order so equal input always sums to the identical float64,
// which the cracker's reproducibility depends on.
var englishBigrams = []bigramFreq{
	{[2]byte{'T', 'H'}, 0.0356}, {[2]byte{'H', 'E'}, 0.0307}, {[2]byte{'I', 'N'}, 0.0243},
	{[2]byte{'E', 'R'}, 0.0205}, {[2]byte{'A', 'N'}, 0.0199}, {[2]byte{'R', 'E'}, 0.0185},
	{[2]byte{'O', 'N'}, 0.0176}, {[2]byte{'A', 'T'}, 0.0149}, {[2]byte{'E', 'N'}, 0.0145},
	{[2]byte{'N', 'D'}, 0.0135}, {[2]byte{'T', 'I'}, 0.0134}, {[2]byte{'E', 'S'}, 0.0134},
	{[2]byte{'O', 'R'}, 0.0128}, {[2]byte{'T', 'E'}, 0.0120}, {[2]byte{'O', 'F'}, 0.0117},
	{[2]byte{'E', 'D'}, 0.0117}, {[2]byte{'I', 'S'}, 0.0113}, {[2]byte{'I', 'T'}, 0.0112},
	{[2]byte{'A', 'L'}, 0.0109}, {[2]byte{'A', 'R'}, 0.0107}, {[2]byte{'S', 'T'}, 0.0105},
	{[2]byte{'T', 'O'}, 0.0104}, {[2]byte{'N', 'T'}, 0.0104}, {[2]byte{'N', 'G'}, 0.0095},
	{[2]byte{'S', 'E'}, 0.0093}, {[2]byte{'H', 'A'}, 0.0093}, {[2]byte{'A', 'S'}, 0.0087},
	{[2]byte{'O', 'U'}, 0.0087}, {[2]byte{'I', 'O'}, 0.0083}, {[2]byte{'L', 'E'}, 0.0083},
	{[2]byte{'V', 'E'}, 0.0083}, {[2]byte{'C', 'O'}, 0.0079}, {[2]byte{'M', 'E'}, 0.0079},
	{[2]byte{'D', 'E'}, 0.0076}, {[2]byte{'H', 'I'}, 0.0076}, {[2]byte{'R', 'I'}, 0.0073},
	{[2]byte{'R', 'O'}, 0.0073}, {[2]byte{'I', 'C'}, 0.0070}, {[2]byte{'N', 'E'}, 0.0069},
	{[2]byte{'E', 'A'}, 0.0069}, {[2]byte{'R', 'A'}, 0.0069}, {[2]byte{'C', 'E'}, 0.0065},
	{[2]byte{'L', 'I'}, 0.0062}, {[2]byte{'C', 'H'}, 0.0060}, {[2]byte{'L', 'L'}, 0.0058},
	{[2]byte{'B', 'E'}, 0.0058}, {[2]byte{'M', 'A'}, 0.0057}, {[2]byte{'S', 'I'}, 0.0055},
	{[2]byte{'O', 'M'}, 0.0055}, {[2]byte{'U', 'R'}, 0.0054},
}

// IndexOfCoincidence returns the probability that two letters drawn from
// the text (ignoring non-letters, case-insensitively) are equal. Texts
// with fewer than two letters score zero.
func IndexOfCoincidence(text string) float64 {
	counts, total := letterCounts(text)
	if total < 2 {
		return 0
	}
	var numerator float64
	for _, n := range counts {
		numerator += float64(n) * float64(n-1)
	}
	return numerator / (float64(total) * float64(total-1))
}

// MonogramScore measures how closely the text's letter distribution
// matches English, as 1 minus the total variation distance. 1 is a
// perfect match, 0 maximally far.
func MonogramScore(text string) float64 {
	counts, total := letterCounts(text)
	if total == 0 {
		return 0
	}
	var distance float64
	for i, n := range counts {
		distance += math.Abs(float64(n)/float64(total) - englishMonograms[i])
	}
	return 1 - distance/2
}

// BigramScore measures how closely the text's adjacent-letter pairs
// match the common English bigram distribution, again as 1 minus the
// total variation distance over the tabled bigrams.
func BigramScore(text string) float64 {
	letters := onlyLetters(text)
	if len(letters) < 2 {
		return 0
	}
	counts := make(map[[2]byte]int, len(letters))
	for i := 0; i+1 < len(letters); i++ {
		counts[[2]byte{letters[i], letters[i+1]}]++
	}
	total := float64(len(letters) - 1)
	var distance float64
	tabled := 0.0
	tabledCount := 0
	for _, e := range englishBigrams {
		n := counts[e.bigram]
		distance += math.Abs(float64(n)/total - e.freq)
		tabled += e.freq
		tabledCount += n
	}
	// Mass on bigrams outside the table counts against the text up to
	// the share English itself puts there.
	outside := float64(len(letters)-1-tabledCount) / total
	distance += math.Abs(outside - (1 - tabled))
	return 1 - distance/2
}

// Scorer combines the three signals into a single plausibility score in
// [0, 1], higher for more English-like text. Deterministic: equal input
// always yields an equal score, which the cracker's reproducibility
// depends on.
type Scorer struct{}

// NewScorer returns the English-language scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Score rates text for English plausibility.
func (*Scorer) Score(text string) float64 {
	ioc := 1 - math.Abs(IndexOfCoincidence(text)-englishIoC)/englishIoC
	if ioc < 0 {
		ioc = 0
	}
	return (ioc + MonogramScore(text) + BigramScore(text)) / 3
}

func letterCounts(text string) (counts [26]int, total int) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			counts[c-'A']++
			total++
		case c >= 'a' && c <= 'z':
			counts[c-'a']++
			total++
		}
	}
	return counts, total
}

func onlyLetters(text string) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c)
		case c >= 'a' && c <= 'z':
			out = append(out, c-'a'+'A')
		}
	}
	return out
}
