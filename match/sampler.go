package match

import (
	"localmatch/errmdl"
	"localmatch/errmdl/subst"
	"localmatch/oligo"
	"localmatch/rnd"
	"localmatch/utils"
)

type Match struct {
	Ordinal int         // creation order, unique in a run
	Seq     oligo.Oligo // mutated copy of the sampled region
	Start   int         // start in the sampled sequence (reverse complement for reverse matches)
	Length  int
	Errors  int // number of error draws
	Diffs   int // positions that differ from the sampled region, at most Errors
	Reverse bool
	RefID   string // id of the reference record
	RefIdx  int    // index of the reference record
}

// Samples matches from reference records. All random draws come from one
// source in a fixed order: for every match the length, the start, and then
// for every error its position and the replacement nt(s).
type Sampler struct {
	p       Params
	rnd     *rnd.Source
	mdl     errmdl.Model
	ordinal int
	matches []*Match
}

func NewSampler(p Params, src *rnd.Source) *Sampler {
	return NewSamplerWithModel(p, src, subst.New(src))
}

func NewSamplerWithModel(p Params, src *rnd.Source, mdl errmdl.Model) *Sampler {
	return &Sampler{p: p, rnd: src, mdl: mdl}
}

// All matches sampled so far, in creation order
func (s *Sampler) Matches() []*Match {
	return s.matches
}

// Draws num matches from rec. refIdx is recorded in the matches. If reverse
// is set, rec is expected to be the reverse complement of the reference
// record (with its original id).
func (s *Sampler) Sample(rec utils.Record, refIdx, num int, reverse bool) error {
	if num <= 0 {
		return nil
	}

	n := rec.Seq.Len()
	if n < s.p.MaxLen {
		return &PreconditionError{"reference", rec.ID, n, s.p.MaxLen}
	}

	for i := 0; i < num; i++ {
		length := s.rnd.Uniform(s.p.MinLen, s.p.MaxLen)
		start := s.rnd.Uniform(0, n-s.p.MaxLen)

		ol := rec.Seq.Slice(start, start+length)
		nerr := s.p.ErrorCount(length)
		diffs := s.mdl.Mutate(ol, nerr)

		s.matches = append(s.matches, &Match{
			Ordinal: s.ordinal,
			Seq:     ol,
			Start:   start,
			Length:  length,
			Errors:  nerr,
			Diffs:   diffs,
			Reverse: reverse,
			RefID:   rec.ID,
			RefIdx:  refIdx,
		})
		s.ordinal++
	}

	return nil
}

// Samples the whole reference: all records on the forward strand, then, if
// enabled, all records on the reverse strand. Each strand gets its budget
// split between the records in proportion to their lengths. progress (if not
// nil) is called after each record.
func (s *Sampler) SampleReference(refs []utils.Record, progress func(idx int, reverse bool)) error {
	reflen := s.p.RefLen
	if reflen == 0 {
		reflen = utils.TotalLen(refs)
	}

	budget := Budget(s.p)
	for i, r := range refs {
		num := Allocate(budget, r.Seq.Len(), reflen, len(refs))
		if err := s.Sample(r, i, num, false); err != nil {
			return err
		}

		if progress != nil {
			progress(i, false)
		}
	}

	if !s.p.Reverse {
		return nil
	}

	for i, r := range refs {
		num := Allocate(budget, r.Seq.Len(), reflen, len(refs))
		if num > 0 {
			rc := utils.Record{ID: r.ID, Seq: oligo.RevComp(r.Seq)}
			if err := s.Sample(rc, i, num, true); err != nil {
				return err
			}
		}

		if progress != nil {
			progress(i, true)
		}
	}

	return nil
}
