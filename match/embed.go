package match

import (
	"errors"
	"sort"

	"localmatch/oligo"
	"localmatch/rnd"
	"localmatch/utils"
)

// Where a match was planted into the query genome
type Placement struct {
	Match *Match
	Query int // index of the query record
	Pos   int // offset in the query record
}

// Plants the matches into the query records, changing them in place.
//
// p.NumMatches offsets are drawn over the concatenation of all query records
// and sorted. The matches (in creation order) and the offsets are then walked
// together while moving through the query records. A match that would reach
// the end of the current record is dropped and the walk moves on to the next
// record; the offset isn't redrawn. An offset that lies before the start of
// the current record is dropped too. Matches planted close to each other in
// the same record can overlap, the later one wins.
func Embed(ms []*Match, query []utils.Record, p Params, src *rnd.Source) ([]Placement, error) {
	var total int

	for _, q := range query {
		if q.Seq.Len() < p.MaxLen {
			return nil, &PreconditionError{"query", q.ID, q.Seq.Len(), p.MaxLen}
		}

		total += q.Seq.Len()
	}

	if p.NumMatches <= 0 {
		return nil, nil
	}

	if len(query) == 0 {
		return nil, errors.New("query genome has no records")
	}

	locs := make([]int, p.NumMatches)
	for i := range locs {
		locs[i] = src.Uniform(0, total-p.MaxLen)
	}
	sort.Ints(locs)

	var placed []Placement
	var elapsed, j int
	for i := 0; i < len(locs) && i < len(ms) && j < len(query); i++ {
		m := ms[i]
		q := query[j].Seq
		pos := locs[i] - elapsed

		if pos < 0 {
			continue
		}

		if pos+m.Seq.Len() >= q.Len() {
			elapsed += q.Len()
			j++
			continue
		}

		oligo.Overwrite(q, pos, m.Seq)
		placed = append(placed, Placement{m, j, pos})
	}

	return placed, nil
}
