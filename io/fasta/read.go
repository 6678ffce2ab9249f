package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
)

// Calls process for every record in the file, in file order. The id is the
// whole header line without the leading '>', the sequence is the
// concatenation of all lines up to the next header. Gzipped files are
// detected automatically. quality is always nil.
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

func ParseReader(r io.Reader, process func(id string, sequence, quality []byte) error) error {
	var id string
	var seq []byte
	var inrec bool

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}

		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 && line[0] == '>' {
			if inrec {
				if err := process(id, seq, nil); err != nil {
					return err
				}
			}

			id = string(bytes.TrimSpace(line[1:]))
			seq = nil
			inrec = true
		} else if len(line) > 0 && line[0] != ';' {
			if !inrec {
				return errors.New("expecting '>' line")
			}

			seq = append(seq, bytes.TrimSpace(line)...)
		}

		if err == io.EOF {
			break
		}
	}

	if inrec {
		return process(id, seq, nil)
	}

	return nil
}
