package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/alecthomas/kingpin.v2"

	"localmatch/config"
	"localmatch/sim"
)

// Each command line value is pushed into viper when given, so it overrides
// the environment and the config file.
func set(v *viper.Viper, key string, val func() interface{}) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		v.Set(key, val())
		return nil
	}
}

func stringFlag(v *viper.Viper, f *kingpin.FlagClause, key string) {
	p := f.String()
	f.Action(set(v, key, func() interface{} { return *p }))
}

func intFlag(v *viper.Viper, f *kingpin.FlagClause, key string) {
	p := f.Int()
	f.Action(set(v, key, func() interface{} { return *p }))
}

func int64Flag(v *viper.Viper, f *kingpin.FlagClause, key string) {
	p := f.Int64()
	f.Action(set(v, key, func() interface{} { return *p }))
}

func floatFlag(v *viper.Viper, f *kingpin.FlagClause, key string) {
	p := f.Float64()
	f.Action(set(v, key, func() interface{} { return *p }))
}

func boolFlag(v *viper.Viper, f *kingpin.FlagClause, key string) {
	p := f.Bool()
	f.Action(set(v, key, func() interface{} { return *p }))
}

func main() {
	v := config.NewViper()

	app := kingpin.New("genmatches", "Generate local matches with errors from a reference, optionally planted into a query genome")
	app.Version("v0.1")
	cfgFile := app.Flag("config", "configuration file (YAML, JSON or TOML)").Default("").String()

	ref := app.Arg("reference", "reference sequences (FASTA, FASTQ or one sequence per line, optionally gzipped)")
	refArg := ref.String()
	ref.Action(set(v, "reference", func() interface{} { return *refArg }))

	stringFlag(v, app.Flag("output", "matches file, or a directory for <reference>.fastq").Short('o'), "output")
	floatFlag(v, app.Flag("max-error-rate", "errors per nucleotide of a match"), "max_error_rate")
	intFlag(v, app.Flag("min-match-length", "minimum match length"), "min_match_length")
	intFlag(v, app.Flag("max-match-length", "maximum match length"), "max_match_length")
	intFlag(v, app.Flag("num-matches", "number of matches"), "num_matches")
	intFlag(v, app.Flag("ref-len", "total reference length, 0 to compute it"), "ref_len")
	boolFlag(v, app.Flag("reverse", "sample half of the matches from the reverse strand").Short('r'), "reverse")
	int64Flag(v, app.Flag("seed", "random generator seed"), "seed")
	boolFlag(v, app.Flag("verbose-ids", "describe the origin of each match in its id"), "verbose_ids")
	stringFlag(v, app.Flag("query", "genome to plant the matches into"), "query")
	stringFlag(v, app.Flag("genome-output", "genome with the planted matches (FASTA)"), "genome_output")
	stringFlag(v, app.Flag("truth", "origin of each match (SAM, or BAM if it ends in .bam)"), "truth")
	stringFlag(v, app.Flag("genome-truth", "position of each planted match (SAM, or BAM if it ends in .bam)"), "genome_truth")
	intFlag(v, app.Flag("line-width", "line width of the genome output, 0 for no wrapping"), "line_width")
	boolFlag(v, app.Flag("progress", "show progress"), "progress")
	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(v, *cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sum, err := sim.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sim.INFO.Printf("%d matches, %d planted, %d skipped\n", sum.Matches, sum.Embedded, sum.Skipped)
}
