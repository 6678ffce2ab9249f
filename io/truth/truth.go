// Package truth writes where each match really comes from (or was planted)
// as SAM or BAM alignments, so that search results can be scored against
// them.
package truth

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"localmatch/match"
	"localmatch/oligo"
	"localmatch/utils"
)

// Mapping quality of every record
const MapQ = 60

type recordWriter interface {
	Write(r *sam.Record) error
}

type Writer struct {
	w     recordWriter
	bw    *bam.Writer // nil when writing SAM
	recs  []utils.Record
	refs  []*sam.Reference
	count int
}

// Creates a writer with one SAM reference per record. The reference name is
// the first word of the record id. If binary is set, BAM is written.
func New(w io.Writer, recs []utils.Record, binary bool) (*Writer, error) {
	refs := make([]*sam.Reference, len(recs))
	seen := make(map[string]bool)
	for i, r := range recs {
		name := refName(r.ID)
		if seen[name] {
			return nil, fmt.Errorf("duplicate reference name '%s'", name)
		}
		seen[name] = true

		ref, err := sam.NewReference(name, "", "", r.Seq.Len(), nil, nil)
		if err != nil {
			return nil, fmt.Errorf("reference '%s': %w", r.ID, err)
		}

		refs[i] = ref
	}

	h, err := sam.NewHeader(nil, refs)
	if err != nil {
		return nil, err
	}

	tw := &Writer{recs: recs, refs: refs}
	if binary {
		tw.bw, err = bam.NewWriter(w, h, 1)
		tw.w = tw.bw
	} else {
		tw.w, err = sam.NewWriter(w, h, sam.FlagDecimal)
	}

	if err != nil {
		return nil, err
	}

	return tw, nil
}

func refName(id string) string {
	if f := strings.Fields(id); len(f) > 0 {
		return f[0]
	}

	return "*"
}

// Writes the origin of m in the reference the writer was created with.
// Reverse matches are reported on the forward strand with the reverse flag
// set, as SAM requires.
func (w *Writer) WriteMatch(m *match.Match) error {
	ref := w.recs[m.RefIdx].Seq
	seq := m.Seq
	pos := m.Start
	if m.Reverse {
		seq = oligo.RevComp(m.Seq)
		pos = ref.Len() - m.Start - m.Length
	}

	var flags sam.Flags
	if m.Reverse {
		flags |= sam.Reverse
	}

	return w.write(m.Ordinal, m.RefIdx, pos, seq, flags)
}

// Writes where a match was planted in the query genome the writer was
// created with.
func (w *Writer) WritePlacement(pl match.Placement) error {
	return w.write(pl.Match.Ordinal, pl.Query, pl.Pos, pl.Match.Seq, 0)
}

func (w *Writer) write(ordinal, refIdx, pos int, seq oligo.Oligo, flags sam.Flags) error {
	n := seq.Len()
	nm := oligo.Mismatches(w.recs[refIdx].Seq.Slice(pos, pos+n), seq)
	aux, err := sam.NewAux(sam.NewTag("NM"), nm)
	if err != nil {
		return err
	}

	cigar := []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, n)}
	r, err := sam.NewRecord(strconv.Itoa(ordinal), w.refs[refIdx], nil, pos, -1, 0, MapQ,
		cigar, oligo.Bytes(seq), match.Quality(n), []sam.Aux{aux})
	if err != nil {
		return err
	}

	r.Flags = flags
	if err := w.w.Write(r); err != nil {
		return err
	}

	w.count++
	return nil
}

// Number of records written so far
func (w *Writer) Count() int {
	return w.count
}

// Flushes BAM output. The underlying writer is not closed.
func (w *Writer) Close() error {
	if w.bw != nil {
		return w.bw.Close()
	}

	return nil
}
