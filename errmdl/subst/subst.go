// Package subst implements a substitution-only error model.
package subst

import (
	"localmatch/oligo"
	"localmatch/rnd"
)

type Model struct {
	rnd *rnd.Source
}

func New(src *rnd.Source) *Model {
	return &Model{src}
}

// For each of the nerr errors a position is drawn uniformly from the whole
// oligo and its nt is replaced by a different, uniformly drawn one. Positions
// are not excluded after they were used, so a later draw can hit (and even
// revert) an earlier error.
func (m *Model) Mutate(ol oligo.Oligo, nerr int) (changed int) {
	olen := ol.Len()
	if olen == 0 || nerr <= 0 {
		return 0
	}

	orig := ol.Clone()
	for i := 0; i < nerr; i++ {
		pos := m.rnd.Uniform(0, olen-1)
		cur := ol.At(pos)
		nt := cur
		for nt == cur {
			nt = m.rnd.Uniform(0, 3)
		}

		ol.Set(pos, nt)
	}

	return oligo.Mismatches(orig, ol)
}
