// Package config holds the run configuration. Values come from (in order of
// precedence) explicit overrides (command line flags), LOCALMATCH_*
// environment variables, an optional config file, and the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"localmatch/match"
)

var ErrConfig = errors.New("invalid configuration")

const EnvPrefix = "LOCALMATCH"

type Config struct {
	Reference    string  `mapstructure:"reference"`     // reference sequence file
	Output       string  `mapstructure:"output"`        // matches file, or directory for <reference stem>.fastq
	Query        string  `mapstructure:"query"`         // genome to plant the matches into
	GenomeOutput string  `mapstructure:"genome_output"` // genome with the planted matches
	Truth        string  `mapstructure:"truth"`         // SAM/BAM with the origin of every match
	GenomeTruth  string  `mapstructure:"genome_truth"`  // SAM/BAM with the planted positions
	MaxErrorRate float64 `mapstructure:"max_error_rate"`
	MinLen       int     `mapstructure:"min_match_length"`
	MaxLen       int     `mapstructure:"max_match_length"`
	NumMatches   int     `mapstructure:"num_matches"`
	RefLen       int     `mapstructure:"ref_len"`
	Reverse      bool    `mapstructure:"reverse"`
	Seed         int64   `mapstructure:"seed"`
	VerboseIDs   bool    `mapstructure:"verbose_ids"`
	LineWidth    int     `mapstructure:"line_width"` // FASTA line width of the genome, 0 for no wrapping
	Progress     bool    `mapstructure:"progress"`
}

// All configuration keys
var Keys = []string{
	"reference", "output", "query", "genome_output", "truth", "genome_truth",
	"max_error_rate", "min_match_length", "max_match_length", "num_matches",
	"ref_len", "reverse", "seed", "verbose_ids", "line_width", "progress",
}

func Default() Config {
	return Config{
		MaxErrorRate: 0.01,
		MinLen:       50,
		MaxLen:       200,
		NumMatches:   1 << 20,
		Seed:         42,
		LineWidth:    80,
	}
}

// Creates a viper instance that knows all keys and their environment
// variables. No defaults are registered, so IsSet tells if a value was
// really given.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for _, k := range Keys {
		v.BindEnv(k)
	}

	return v
}

// Reads the configuration file (if fname isn't empty) into v and returns the
// resulting configuration on top of the defaults. The max error rate has no
// usable default and must be given.
func Load(v *viper.Viper, fname string) (Config, error) {
	c := Default()

	if fname != "" {
		v.SetConfigFile(fname)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("%w: %s: %v", ErrConfig, fname, err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if !v.IsSet("max_error_rate") {
		return c, fmt.Errorf("%w: max error rate not specified", ErrConfig)
	}

	return c, nil
}

func (c *Config) Validate() error {
	if c.Reference == "" {
		return fmt.Errorf("%w: reference file not specified", ErrConfig)
	}

	if c.Output == "" {
		return fmt.Errorf("%w: output not specified", ErrConfig)
	}

	if c.Query != "" && c.GenomeOutput == "" {
		return fmt.Errorf("%w: query genome given without a genome output", ErrConfig)
	}

	if c.Query == "" && c.GenomeOutput != "" {
		return fmt.Errorf("%w: genome output given without a query genome", ErrConfig)
	}

	if c.Query == "" && c.GenomeTruth != "" {
		return fmt.Errorf("%w: genome truth output given without a query genome", ErrConfig)
	}

	if c.LineWidth < 0 {
		return fmt.Errorf("%w: negative line width %d", ErrConfig, c.LineWidth)
	}

	p := c.Params()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return nil
}

func (c *Config) Params() match.Params {
	return match.Params{
		MinLen:     c.MinLen,
		MaxLen:     c.MaxLen,
		ErrorRate:  c.MaxErrorRate,
		NumMatches: c.NumMatches,
		RefLen:     c.RefLen,
		Seed:       c.Seed,
		Reverse:    c.Reverse,
		VerboseIDs: c.VerboseIDs,
	}
}

// Path of the matches file. If the output is a directory (or ends with a
// path separator), the file is <output>/<reference stem>.fastq.
func (c *Config) MatchesPath() string {
	if strings.HasSuffix(c.Output, string(os.PathSeparator)) || strings.HasSuffix(c.Output, "/") {
		return filepath.Join(c.Output, Stem(c.Reference)+".fastq")
	}

	if fi, err := os.Stat(c.Output); err == nil && fi.IsDir() {
		return filepath.Join(c.Output, Stem(c.Reference)+".fastq")
	}

	return c.Output
}

// File name without directory, compression suffix and extension
// ("data/bin_07.fasta.gz" -> "bin_07")
func Stem(fname string) string {
	base := strings.TrimSuffix(filepath.Base(fname), ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}
