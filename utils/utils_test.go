package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/snksoft/crc"
)

func writeFile(t *testing.T, name, data string) string {
	fname := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fname, []byte(data), 0644); err != nil {
		t.Fatalf("can't write %s: %v", fname, err)
	}

	return fname
}

func TestReadRecordsFasta(t *testing.T) {
	fname := writeFile(t, "ref.fasta", ">chr1\nACGTN\nacgt\n>chr2\nTTTT\n")

	recs, err := ReadRecords(fname)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("expecting 2 records, got %d", len(recs))
	}

	if recs[0].ID != "chr1" || recs[0].Seq.String() != "ACGTAACGT" {
		t.Fatalf("first record wrong: %v %v", recs[0].ID, recs[0].Seq)
	}

	if TotalLen(recs) != 13 {
		t.Fatalf("TotalLen should be 13 instead of %d", TotalLen(recs))
	}
}

func TestReadRecordsFastq(t *testing.T) {
	fname := writeFile(t, "reads.fq", "@r1\nACGT\n+\nIIII\n")

	recs, err := ReadRecords(fname)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if len(recs) != 1 || recs[0].ID != "r1" || recs[0].Seq.String() != "ACGT" {
		t.Fatalf("fastq record wrong: %v", recs)
	}
}

func TestReadRecordsInvalid(t *testing.T) {
	fname := writeFile(t, "ref.fa", ">bad\nAC*GT\n")

	_, err := ReadRecords(fname)
	if err == nil {
		t.Fatalf("invalid nucleotide should fail")
	}

	if !strings.Contains(err.Error(), "bad") || !strings.Contains(err.Error(), fname) {
		t.Fatalf("error should name the file and the record: %v", err)
	}
}

func TestReadRecordsMissing(t *testing.T) {
	if _, err := ReadRecords(filepath.Join(t.TempDir(), "nope.fa")); err == nil {
		t.Fatalf("missing file should fail")
	}
}

func TestParserFor(t *testing.T) {
	// compare by behaviour, functions aren't comparable
	fname := writeFile(t, "x.fastq.gz", "")
	if _, err := ReadRecordsWith(fname, ParserFor("x.fastq.gz")); err != nil {
		t.Fatalf("empty fastq should parse: %v", err)
	}

	fname = writeFile(t, "seqs.csv", "ACGT,a\nGGGG\n")
	recs, err := ReadRecords(fname)
	if err != nil || len(recs) != 2 || recs[1].ID != "1" {
		t.Fatalf("csv records wrong: %v %v", recs, err)
	}
}

func TestCRCWriter(t *testing.T) {
	var buf bytes.Buffer

	w := NewCRCWriter(&buf)
	w.Write([]byte("@0\nACGT\n"))
	w.Write([]byte("+\nIIII\n"))

	exp := crc.CalculateCRC(crc.CRC64ECMA, []byte("@0\nACGT\n+\nIIII\n"))
	if w.CRC() != exp {
		t.Fatalf("CRC should be %016x instead of %016x", exp, w.CRC())
	}

	if w.Size() != int64(buf.Len()) || buf.String() != "@0\nACGT\n+\nIIII\n" {
		t.Fatalf("writes not passed through: %d %q", w.Size(), buf.String())
	}
}
