package fastq

import (
	"bufio"
	"fmt"
	"io"

	"localmatch/oligo"
)

type Writer struct {
	w     *bufio.Writer
	count int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bufio.NewWriter(w), 0}
}

// Writes one record. qual holds phred scores, one per nt. If qual is nil,
// every nt gets the lowest score.
func (w *Writer) Write(id string, ol oligo.Oligo, qual []byte) error {
	seq := oligo.Bytes(ol)
	if qual != nil && len(qual) != len(seq) {
		return fmt.Errorf("%s: %d quality values for %d nts", id, len(qual), len(seq))
	}

	w.w.WriteByte('@')
	w.w.WriteString(id)
	w.w.WriteByte('\n')
	w.w.Write(seq)
	w.w.WriteString("\n+\n")
	for i := range seq {
		var q byte
		if qual != nil {
			q = qual[i]
		}

		w.w.WriteByte(q + 33)
	}

	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}

	w.count++
	return nil
}

// Number of records written so far
func (w *Writer) Count() int {
	return w.count
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}
