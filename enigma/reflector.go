package enigma

import "strings"

// The reflectors (Umkehrwalzen) of the Enigma I, M3 and M4 machines plus
// the Abwehr and commercial variants. Every entry is an involution with
// no fixed point, so no letter ever encrypts to itself.
var reflectorCatalog = map[string]string{
	"A":     "EJMZALYXVBWFCRQUONTSPIKHGD",
	"B":     "YRUHQSLDPXNGOKMIEBFZCWVJAT",
	"C":     "FVPJIAOYEDRZXWGCTKUQSBNMHL",
	"BThin": "ENKQAUYWJICOPBLMDXZVFTHRGS",
	"CThin": "RDOBJNTKVEHMLFCWZAXGYIPSUQ",
	"UKWR":  "QYHOGNECVPUZTFDJAXWMKISRBL",
	"UKWK":  "IMETCGFRAYSQBZXWLHKDVUPOJN",
}

// ReflectorNames returns the catalog names in a fixed order.
func ReflectorNames() []string {
	return []string{"A", "B", "C", "BThin", "CThin", "UKWR", "UKWK"}
}

// canonicalReflector resolves a case-insensitive reflector name to its
// catalog key.
func canonicalReflector(name string) (string, bool) {
	for _, key := range ReflectorNames() {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

// reflectorTable returns the wiring for an exact catalog name. An
// unknown name yields the zero permutation; the checked construction
// path rejects unknown names before ever getting here.
func reflectorTable(name string) Permutation {
	return newPermutationUnchecked(reflectorCatalog[name])
}
