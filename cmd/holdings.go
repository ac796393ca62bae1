package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jweitan/folio"
	"github.com/jweitan/folio/renderer"
)

// holdingsCmd displays the aggregated positions without touching the network.
type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display aggregated holdings without valuation" }
func (*holdingsCmd) Usage() string {
	return `folio holdings

  Aggregates the transaction ledger into per-ticker holdings (share count,
  cost basis, earliest investment date) without fetching market data.
`
}

func (*holdingsCmd) SetFlags(*flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := NewLogger()
	defer log.Sync()
	cfg := LoadProfile(log)

	ledger, err := openLedger(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	holdings := folio.Holdings(ledger, cfg.ExcludedSet())
	printMarkdown(renderer.HoldingsMarkdown(holdings))
	return subcommands.ExitSuccess
}
