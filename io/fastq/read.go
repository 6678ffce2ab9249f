package fastq

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
)

func Parse(fname string, process func(id string, sequence, quality []byte) error) error {
	var r io.Reader

	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	if cf, err := gzip.NewReader(f); err == nil {
		defer cf.Close()
		r = cf
	} else {
		if _, err := f.Seek(0, 0); err != nil {
			return err
		}
		r = f
	}

	return ParseReader(r, process)
}

// Quality values passed to process are phred scores (the '!' offset is
// already removed). The id is the header line without the leading '@'.
func ParseReader(r io.Reader, process func(id string, sequence, quality []byte) error) error {
	br := bufio.NewReader(r)
	for {
		// id line
		l, err := readLine(br)
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		if len(l) == 0 {
			continue
		}

		if l[0] != '@' {
			return errors.New("invalid id line: '" + string(l) + "'")
		}
		id := string(l[1:])

		// sequence
		seq, err := readLine(br)
		if err != nil {
			return errors.New("expecting DNA sequence")
		}

		// '+' line
		l, err = readLine(br)
		if err != nil || len(l) == 0 || l[0] != '+' {
			return errors.New("expecting '+' line")
		}

		// quality
		qual, err := readLine(br)
		if err != nil {
			return errors.New("expecting quality line")
		}

		if len(qual) != len(seq) {
			return fmt.Errorf("lengths of sequence and quality lines differ: %d:%d %v", len(seq), len(qual), id)
		}

		qa := make([]byte, len(qual))
		for i, c := range qual {
			qa[i] = c - 33 // '!'
		}

		if err := process(id, seq, qa); err != nil {
			return err
		}
	}

	return nil
}

// Returns the next line without the line terminator. io.EOF is returned
// only when there is nothing left to read.
func readLine(br *bufio.Reader) ([]byte, error) {
	l, err := br.ReadBytes('\n')
	if err == io.EOF && len(l) > 0 {
		err = nil
	}

	return bytes.TrimRight(l, "\r\n"), err
}
