// Package csv reads plain sequence lists: one sequence per line, optionally
// followed by an id separated by a comma or a space.
package csv

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strconv"
	"strings"
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

// Lines without an id get their (zero-based) line number as id. Empty
// lines are skipped.
func ParseReader(r io.Reader, process func(id string, sequence, quality []byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<30)
	for n := 0; sc.Scan(); n++ {
		l := strings.TrimSpace(sc.Text())
		if l == "" {
			continue
		}

		ls := strings.SplitN(l, ",", 2)
		if len(ls) == 1 {
			ls = strings.SplitN(l, " ", 2)
		}

		seq := ls[0]
		id := strconv.Itoa(n)
		if len(ls) > 1 {
			id = strings.TrimSpace(ls[1])
		}

		if err := process(id, []byte(seq), nil); err != nil {
			return err
		}
	}

	return sc.Err()
}
