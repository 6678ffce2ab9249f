package fasta

import (
	"bufio"
	"io"

	"localmatch/oligo"
)

// Writes FASTA records. Sequence lines are wrapped at width nts, a width of
// zero puts the whole sequence on one line.
type Writer struct {
	w     *bufio.Writer
	width int
	count int
}

func NewWriter(w io.Writer, width int) *Writer {
	return &Writer{bufio.NewWriter(w), width, 0}
}

func (w *Writer) Write(id string, ol oligo.Oligo) error {
	w.w.WriteByte('>')
	w.w.WriteString(id)
	w.w.WriteByte('\n')

	seq := oligo.Bytes(ol)
	if w.width > 0 {
		for len(seq) > w.width {
			w.w.Write(seq[:w.width])
			w.w.WriteByte('\n')
			seq = seq[w.width:]
		}
	}

	w.w.Write(seq)
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
