package sim

import (
	"errors"
	"flag"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"localmatch/config"
	"localmatch/io/fastq"
	"localmatch/match"
	"localmatch/utils"
)

var iternum = flag.Int("n", 5, "number of iterations")

func TestMain(m *testing.M) {
	flag.Parse()
	SetOutput(io.Discard)
	os.Exit(m.Run())
}

func randomSeq(r *rand.Rand, l int) string {
	const nts = "ACGT"

	b := make([]byte, l)
	for i := range b {
		b[i] = nts[r.Intn(4)]
	}

	return string(b)
}

// writes a FASTA file with records of the specified lengths
func writeFasta(t *testing.T, fname string, seed int64, lens ...int) string {
	r := rand.New(rand.NewSource(seed))

	var sb strings.Builder
	for i, l := range lens {
		sb.WriteString(">rec" + string(rune('a'+i)) + " random\n")
		sb.WriteString(randomSeq(r, l) + "\n")
	}

	if err := os.WriteFile(fname, []byte(sb.String()), 0644); err != nil {
		t.Fatalf("can't write %s: %v", fname, err)
	}

	return fname
}

func baseConfig(t *testing.T) config.Config {
	dir := t.TempDir()

	c := config.Default()
	c.Reference = writeFasta(t, filepath.Join(dir, "ref.fasta"), 1, 3000, 1500)
	c.Output = filepath.Join(dir, "out") + string(os.PathSeparator)
	c.MaxErrorRate = 0.02
	c.MinLen = 30
	c.MaxLen = 80
	c.NumMatches = 100

	return c
}

func countFastq(t *testing.T, fname string) (n int) {
	err := fastq.Parse(fname, func(id string, sequence, quality []byte) error {
		n++
		return nil
	})

	if err != nil {
		t.Fatalf("can't read %s: %v", fname, err)
	}

	return n
}

func TestRunMatches(t *testing.T) {
	c := baseConfig(t)
	c.Reverse = true
	c.VerboseIDs = true

	sum, err := Run(c)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	fname := filepath.Join(c.Output, "ref.fastq")
	if len(sum.Outputs) != 1 || sum.Outputs[0].Path != fname {
		t.Fatalf("expecting the matches in %s: %+v", fname, sum.Outputs)
	}

	if n := countFastq(t, fname); n != sum.Matches || n != sum.Outputs[0].Records {
		t.Fatalf("%d records in the file, summary says %d", n, sum.Matches)
	}

	// 50 per strand, split 2:1 between the records
	if sum.Matches != 100 {
		t.Fatalf("expecting 100 matches, got %d", sum.Matches)
	}

	data, _ := os.ReadFile(fname)
	if !strings.Contains(string(data), "reverse,start_position=") || !strings.Contains(string(data), "reference_file='"+c.Reference+"'") {
		t.Fatalf("verbose ids missing")
	}
}

func TestRunDeterministic(t *testing.T) {
	for it := 0; it < *iternum; it++ {
		c1 := baseConfig(t)
		c1.Seed = int64(it)
		c1.Truth = filepath.Join(t.TempDir(), "truth.sam")

		c2 := c1
		c2.Output = filepath.Join(t.TempDir(), "matches.fq")
		c2.Truth = filepath.Join(t.TempDir(), "truth.sam")

		s1, err := Run(c1)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		s2, err := Run(c2)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		for i := range s1.Outputs {
			if s1.Outputs[i].CRC != s2.Outputs[i].CRC {
				t.Fatalf("same seed produced different %s", s1.Outputs[i].Path)
			}
		}

		c2.Seed++
		s3, err := Run(c2)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if s3.Outputs[0].CRC == s1.Outputs[0].CRC {
			t.Fatalf("different seeds produced the same matches")
		}
	}
}

func TestRunEmbed(t *testing.T) {
	c := baseConfig(t)
	dir := t.TempDir()
	c.Query = writeFasta(t, filepath.Join(dir, "genome.fa"), 2, 5000, 4000, 800)
	c.GenomeOutput = filepath.Join(dir, "planted.fa")
	c.GenomeTruth = filepath.Join(dir, "planted.sam")
	c.Truth = filepath.Join(dir, "truth.bam")

	sum, err := Run(c)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(sum.Outputs) != 4 {
		t.Fatalf("expecting 4 outputs: %+v", sum.Outputs)
	}

	if sum.Embedded+sum.Skipped != sum.Matches || sum.Embedded == 0 {
		t.Fatalf("planted %d, skipped %d of %d", sum.Embedded, sum.Skipped, sum.Matches)
	}

	orig, _ := utils.ReadRecords(c.Query)
	planted, err := utils.ReadRecords(c.GenomeOutput)
	if err != nil {
		t.Fatalf("can't read the genome: %v", err)
	}

	if len(planted) != len(orig) {
		t.Fatalf("genome has %d records instead of %d", len(planted), len(orig))
	}

	for i := range orig {
		if planted[i].ID != orig[i].ID || planted[i].Seq.Len() != orig[i].Seq.Len() {
			t.Fatalf("record %d changed its id or length", i)
		}
	}

	for _, o := range sum.Outputs {
		if o.Path == c.GenomeTruth && o.Records != sum.Embedded {
			t.Fatalf("genome truth has %d records for %d placements", o.Records, sum.Embedded)
		}

		if o.Path == c.Truth && o.Records != sum.Matches {
			t.Fatalf("truth has %d records for %d matches", o.Records, sum.Matches)
		}
	}
}

func TestRunShortQuery(t *testing.T) {
	c := baseConfig(t)
	dir := t.TempDir()
	c.Query = writeFasta(t, filepath.Join(dir, "genome.fa"), 2, 5000, 50)
	c.GenomeOutput = filepath.Join(dir, "planted.fa")

	_, err := Run(c)

	var perr *match.PreconditionError
	if !errors.As(err, &perr) {
		t.Fatalf("expecting a precondition error, got %v", err)
	}

	if _, err := os.Stat(c.MatchesPath()); err == nil {
		t.Fatalf("no output should be created for a short query record")
	}
}

func TestRunShortReference(t *testing.T) {
	c := baseConfig(t)
	c.Reference = writeFasta(t, filepath.Join(t.TempDir(), "ref.fa"), 3, 60)

	var perr *match.PreconditionError
	if _, err := Run(c); !errors.As(err, &perr) || perr.Source != "reference" {
		t.Fatalf("expecting a reference precondition error, got %v", err)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	c := baseConfig(t)
	c.MinLen = c.MaxLen + 1

	if _, err := Run(c); !errors.Is(err, config.ErrConfig) {
		t.Fatalf("expecting a configuration error, got %v", err)
	}

	c = baseConfig(t)
	c.Reference = filepath.Join(t.TempDir(), "missing.fa")
	if _, err := Run(c); err == nil {
		t.Fatalf("missing reference should fail")
	}
}
