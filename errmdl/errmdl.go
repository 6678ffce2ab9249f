package errmdl

import (
	"localmatch/oligo"
)

// Error model used to turn an exact copy of a reference region into a
// mutated match.
type Model interface {
	// Apply nerr error draws to ol in place. Returns the number of
	// positions that differ from the original when done, which can be
	// lower than nerr if a draw hits an already mutated position.
	Mutate(ol oligo.Oligo, nerr int) (changed int)
}
