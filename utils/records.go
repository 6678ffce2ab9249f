package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"localmatch/io/csv"
	"localmatch/io/fasta"
	"localmatch/io/fastq"
	"localmatch/oligo"
	"localmatch/oligo/long"
)

// A named sequence read from a sequence file
type Record struct {
	ID  string
	Seq oligo.Oligo
}

type ParseFunc func(fname string, process func(id string, sequence, quality []byte) error) error

// Picks the parser for the file from its extension (ignoring .gz).
// FASTQ for .fq/.fastq, plain sequence lists for .csv/.txt/.seq, FASTA for
// everything else.
func ParserFor(fname string) ParseFunc {
	ext := strings.ToLower(filepath.Ext(fname))
	if ext == ".gz" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(fname, filepath.Ext(fname))))
	}

	switch ext {
	case ".fq", ".fastq":
		return fastq.Parse
	case ".csv", ".txt", ".seq":
		return csv.Parse
	default:
		return fasta.Parse
	}
}

// Reads all records of the file into memory, in file order
func ReadRecords(fname string) ([]Record, error) {
	return ReadRecordsWith(fname, ParserFor(fname))
}

func ReadRecordsWith(fname string, parse ParseFunc) (recs []Record, err error) {
	err = parse(fname, func(id string, sequence, quality []byte) error {
		ol, pos := long.FromBytesLoose(sequence)
		if ol == nil {
			return fmt.Errorf("record '%s': invalid nucleotide '%c' at %d", id, sequence[pos], pos)
		}

		recs = append(recs, Record{id, ol})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}

	return recs, nil
}

// Sum of the lengths of all records
func TotalLen(recs []Record) (n int) {
	for _, r := range recs {
		n += r.Seq.Len()
	}

	return n
}
