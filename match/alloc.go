package match

import (
	"math"
)

// Number of matches per strand
func Budget(p Params) int {
	if p.Reverse {
		return p.NumMatches / 2
	}

	return p.NumMatches
}

// Number of matches drawn from a record seqlen nts long when the reference
// has nrecs records with reflen nts in total. A single record gets all of
// them, otherwise each record gets its share rounded to the nearest integer.
func Allocate(total, seqlen, reflen, nrecs int) int {
	if nrecs == 1 || reflen <= 0 {
		return total
	}

	return int(math.Round(float64(total) * float64(seqlen) / float64(reflen)))
}
