package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jweitan/folio"
	"github.com/jweitan/folio/date"
	"github.com/jweitan/folio/renderer"
	"github.com/jweitan/folio/yahoo"
	"go.uber.org/zap"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date      string
	outputDir string
	noWrite   bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "value the portfolio and write the summary report" }
func (*summaryCmd) Usage() string {
	return `folio summary [-d <date>] [-o <dir>] [-n]

  Aggregates the transaction ledger into holdings, fetches latest closes,
  industries and exchange rates, merges manual fund valuations, and writes
  the dated summary CSV next to displaying it.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "As-of date stamped on the report.")
	f.StringVar(&c.outputDir, "o", "", "Directory for the CSV artifact. Defaults to the profile's output_dir.")
	f.BoolVar(&c.noWrite, "n", false, "Display only, do not write the CSV artifact.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	log := NewLogger()
	defer log.Sync()
	cfg := LoadProfile(log)
	if c.outputDir != "" {
		cfg.Files.OutputDir = c.outputDir
	}

	ledger, err := openLedger(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	dividends, err := openDividends(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	overrides, err := openOverrides(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report := folio.Summarize(ctx, ledger, dividends, overrides, yahoo.NewClient(), cfg, asOf, log)

	if !c.noWrite {
		path, err := report.Save(cfg.Files.OutputDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		log.Info("report written", zap.String("path", path))
	}

	printMarkdown(renderer.SummaryMarkdown(report))
	return subcommands.ExitSuccess
}
