// Package match samples mutated local matches from a reference and plants
// them into a query genome.
package match

import (
	"errors"
	"fmt"
)

// Parameters fixed for a whole run
type Params struct {
	MinLen     int     // minimum match length
	MaxLen     int     // maximum match length
	ErrorRate  float64 // errors per nt, the error count is rounded down
	NumMatches int     // total number of matches (both strands)
	RefLen     int     // total reference length, 0 to use the sum of the record lengths
	Seed       int64
	Reverse    bool // sample half of the matches from the reverse strand
	VerboseIDs bool // put the provenance of a match into its id
}

func (p *Params) Validate() error {
	if p.ErrorRate < 0 || p.ErrorRate > 1 {
		return fmt.Errorf("error rate %v not in [0, 1]", p.ErrorRate)
	}

	if p.MinLen <= 0 {
		return fmt.Errorf("minimum match length %d must be positive", p.MinLen)
	}

	if p.MinLen > p.MaxLen {
		return fmt.Errorf("minimum match length %d larger than maximum %d", p.MinLen, p.MaxLen)
	}

	if p.NumMatches < 0 {
		return errors.New("number of matches can't be negative")
	}

	if p.RefLen < 0 {
		return errors.New("reference length can't be negative")
	}

	return nil
}

// Number of errors injected into a match of the specified length
func (p *Params) ErrorCount(length int) int {
	return int(float64(length) * p.ErrorRate)
}

// A sequence too short for a match of the maximum length to be taken from
// (or planted into) it.
type PreconditionError struct {
	Source string // "reference" or "query"
	Record string
	Len    int
	MaxLen int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s record '%s' is %d nts long, shorter than the maximum match length %d", e.Source, e.Record, e.Len, e.MaxLen)
}
