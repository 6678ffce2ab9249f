package match

import (
	"bytes"
	"strconv"
	"strings"

	"localmatch/oligo"
	"localmatch/utils"
)

// Phred score given to every nt of a match
const Phred = 40

// Receives the sampled matches. Implemented by fastq.Writer.
type MatchSink interface {
	Write(id string, ol oligo.Oligo, qual []byte) error
}

// Receives the query records after embedding. Implemented by fasta.Writer.
type GenomeSink interface {
	Write(id string, ol oligo.Oligo) error
}

type Emitter struct {
	Verbose bool
	RefFile string // reference file name, for verbose ids
}

// Builds the id of a match: its ordinal, and if verbose, a space and
// [reverse,]start_position=S,length=L,errors=E,reference_id='R',reference_file='F'
func (e *Emitter) ID(m *Match) string {
	id := strconv.Itoa(m.Ordinal)
	if !e.Verbose {
		return id
	}

	var sb strings.Builder
	sb.WriteString(id)
	sb.WriteByte(' ')
	if m.Reverse {
		sb.WriteString("reverse,")
	}
	sb.WriteString("start_position=" + strconv.Itoa(m.Start))
	sb.WriteString(",length=" + strconv.Itoa(m.Length))
	sb.WriteString(",errors=" + strconv.Itoa(m.Errors))
	sb.WriteString(",reference_id='" + m.RefID + "'")
	sb.WriteString(",reference_file='" + e.RefFile + "'")

	return sb.String()
}

// Constant qualities for a match of length n
func Quality(n int) []byte {
	return bytes.Repeat([]byte{Phred}, n)
}

func (e *Emitter) EmitMatches(ms []*Match, sink MatchSink) error {
	for _, m := range ms {
		if err := sink.Write(e.ID(m), m.Seq, Quality(m.Seq.Len())); err != nil {
			return err
		}
	}

	return nil
}

// Writes the query records, ids unchanged, in their original order
func EmitGenome(recs []utils.Record, sink GenomeSink) error {
	for _, r := range recs {
		if err := sink.Write(r.ID, r.Seq); err != nil {
			return err
		}
	}

	return nil
}
