// Package cmd implements the CLI application that produces portfolio
// valuation reports.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/jweitan/folio"
	"go.uber.org/zap"
)

// Register registers all subcommands on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables for the shared flags.

var configFile = flag.String("config", "folio.yaml", "Path to the YAML run profile")
var quiet = flag.Bool("q", false, "Only log warnings and errors")

// LoadProfile loads the run profile. A missing profile file falls back to
// the defaults so the tool works out of the box next to its input files.
func LoadProfile(log *zap.Logger) folio.Config {
	cfg, err := folio.LoadConfig(*configFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("no config file, using defaults", zap.String("path", *configFile))
			return folio.DefaultConfig()
		}
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	return cfg
}

// NewLogger builds the CLI logger, writing human-readable lines to stderr.
func NewLogger() *zap.Logger {
	zcfg := zap.NewDevelopmentConfig()
	if *quiet {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	return log
}

// openLedger reads the transaction ledger declared in the profile.
func openLedger(cfg folio.Config, log *zap.Logger) (*folio.Ledger, error) {
	f, err := os.Open(cfg.Files.Ledger)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger: %w", err)
	}
	defer f.Close()
	return folio.ReadLedger(f, log)
}

// openDividends reads the dividend ledger. A missing file is not fatal:
// dividends just report as zero.
func openDividends(cfg folio.Config, log *zap.Logger) (folio.Dividends, error) {
	f, err := os.Open(cfg.Files.Dividends)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("no dividend ledger, dividends report as zero", zap.String("path", cfg.Files.Dividends))
		return folio.Dividends{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open dividends: %w", err)
	}
	defer f.Close()
	return folio.ReadDividends(f, log)
}

// openOverrides reads the funds info file when the profile excludes tickers.
// A broken override file is the one fatal input: it would corrupt the whole
// override step.
func openOverrides(cfg folio.Config) (map[string]folio.OverrideValuation, error) {
	if len(cfg.ExcludedTickers) == 0 {
		return nil, nil
	}
	f, err := os.Open(cfg.Files.Funds)
	if err != nil {
		return nil, fmt.Errorf("cannot open funds info: %w", err)
	}
	defer f.Close()
	return folio.ReadOverrides(f, cfg.ReportingCurrency)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal renderer is unavailable.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
