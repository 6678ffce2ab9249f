// Package sim runs a whole generation: it samples the matches from the
// reference, writes them out, and optionally plants them into a query genome.
package sim

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/cheggaaa/pb.v1"

	"localmatch/config"
	"localmatch/io/fasta"
	"localmatch/io/fastq"
	"localmatch/io/truth"
	"localmatch/match"
	"localmatch/rnd"
	"localmatch/utils"
)

var (
	INFO = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	WARN = log.New(os.Stderr, "WARN: ", log.Ldate|log.Ltime)
)

// Redirects both loggers
func SetOutput(w io.Writer) {
	INFO.SetOutput(w)
	WARN.SetOutput(w)
}

// A file written by a run
type Output struct {
	Path    string
	Records int
	CRC     uint64 // CRC-64 (ECMA) of the file content
}

type Summary struct {
	Matches  int // sampled matches
	Embedded int // matches planted into the query genome
	Skipped  int // matches not planted
	Outputs  []Output
}

func (s *Summary) add(o Output) {
	s.Outputs = append(s.Outputs, o)
	INFO.Printf("%s: %d records, crc %016x\n", o.Path, o.Records, o.CRC)
}

// Runs the generation described by cfg. The configuration and the input
// sequences are checked before any output is created. Outputs written before
// a failure are left as they are.
func Run(cfg config.Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := cfg.Params()
	refs, err := utils.ReadRecords(cfg.Reference)
	if err != nil {
		return nil, err
	}

	INFO.Printf("reference %s: %d records, %d nts\n", cfg.Reference, len(refs), utils.TotalLen(refs))

	var query []utils.Record
	if cfg.Query != "" {
		query, err = utils.ReadRecords(cfg.Query)
		if err != nil {
			return nil, err
		}

		// Embed checks this too, but only after the matches are written
		for _, q := range query {
			if q.Seq.Len() < p.MaxLen {
				return nil, &match.PreconditionError{Source: "query", Record: q.ID, Len: q.Seq.Len(), MaxLen: p.MaxLen}
			}
		}

		INFO.Printf("query %s: %d records, %d nts\n", cfg.Query, len(query), utils.TotalLen(query))
	}

	if p.RefLen == 0 {
		p.RefLen = utils.TotalLen(refs)
	}

	src := rnd.New(p.Seed)
	ms, err := sample(refs, p, src, cfg.Progress)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Matches: len(ms)}
	INFO.Printf("sampled %d matches\n", len(ms))
	if len(ms) != p.NumMatches {
		WARN.Printf("%d matches requested, %d sampled\n", p.NumMatches, len(ms))
	}

	out, err := writeMatches(cfg.MatchesPath(), cfg.Reference, ms, p.VerboseIDs)
	if err != nil {
		return nil, err
	}
	sum.add(out)

	if cfg.Truth != "" {
		out, err := writeTruth(cfg.Truth, refs, func(tw *truth.Writer) error {
			for _, m := range ms {
				if err := tw.WriteMatch(m); err != nil {
					return err
				}
			}

			return nil
		})

		if err != nil {
			return nil, err
		}
		sum.add(out)
	}

	if query == nil {
		return sum, nil
	}

	placed, err := match.Embed(ms, query, p, src)
	if err != nil {
		return nil, err
	}

	sum.Embedded = len(placed)
	sum.Skipped = len(ms) - len(placed)
	INFO.Printf("planted %d matches\n", sum.Embedded)
	if sum.Skipped > 0 {
		WARN.Printf("%d matches not planted\n", sum.Skipped)
	}

	out, err = create(cfg.GenomeOutput, func(w io.Writer) (int, error) {
		fw := fasta.NewWriter(w, cfg.LineWidth)
		if err := match.EmitGenome(query, fw); err != nil {
			return 0, err
		}

		return fw.Count(), fw.Flush()
	})

	if err != nil {
		return nil, err
	}
	sum.add(out)

	if cfg.GenomeTruth != "" {
		out, err := writeTruth(cfg.GenomeTruth, query, func(tw *truth.Writer) error {
			for _, pl := range placed {
				if err := tw.WritePlacement(pl); err != nil {
					return err
				}
			}

			return nil
		})

		if err != nil {
			return nil, err
		}
		sum.add(out)
	}

	return sum, nil
}

func sample(refs []utils.Record, p match.Params, src *rnd.Source, progress bool) ([]*match.Match, error) {
	s := match.NewSampler(p, src)
	if !progress {
		err := s.SampleReference(refs, nil)
		return s.Matches(), err
	}

	n := len(refs)
	if p.Reverse {
		n *= 2
	}

	bar := pb.New(n)
	bar.Output = os.Stderr
	bar.Start()
	err := s.SampleReference(refs, func(int, bool) {
		bar.Increment()
	})
	bar.Finish()

	return s.Matches(), err
}

func writeMatches(fname, reference string, ms []*match.Match, verbose bool) (Output, error) {
	if dir := filepath.Dir(fname); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Output{}, err
		}
	}

	return create(fname, func(w io.Writer) (int, error) {
		fw := fastq.NewWriter(w)
		e := match.Emitter{Verbose: verbose, RefFile: reference}
		if err := e.EmitMatches(ms, fw); err != nil {
			return 0, err
		}

		return fw.Count(), fw.Flush()
	})
}

// Writes SAM, or BAM if the file name ends in .bam
func writeTruth(fname string, recs []utils.Record, write func(tw *truth.Writer) error) (Output, error) {
	binary := strings.HasSuffix(strings.ToLower(fname), ".bam")

	return create(fname, func(w io.Writer) (int, error) {
		tw, err := truth.New(w, recs, binary)
		if err != nil {
			return 0, err
		}

		if err := write(tw); err != nil {
			return 0, err
		}

		return tw.Count(), tw.Close()
	})
}

func create(fname string, write func(w io.Writer) (int, error)) (Output, error) {
	f, err := os.Create(fname)
	if err != nil {
		return Output{}, err
	}

	cw := utils.NewCRCWriter(f)
	n, err := write(cw)
	if err != nil {
		f.Close()
		return Output{}, fmt.Errorf("%s: %w", fname, err)
	}

	if err := f.Close(); err != nil {
		return Output{}, err
	}

	return Output{fname, n, cw.CRC()}, nil
}
