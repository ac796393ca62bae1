package folio

import (
	"context"
	"fmt"
	"strings"

	"github.com/jweitan/folio/date"
)

// SGD is a helper for tests to create reporting-currency money from const.
func SGD(v float64) Money { return M(v, "SGD") }

// USD is a helper for tests to create usd money from const.
func USD(v float64) Money { return M(v, "USD") }

// testConfig returns the profile used across engine tests: SGD reporting,
// USD foreign pool, no special cases.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ReportingCurrency = "SGD"
	cfg.ForeignPoolCurrency = "USD"
	return cfg
}

// ledgerFromCSV builds a ledger from an inline CSV literal.
func ledgerFromCSV(csv string) (*Ledger, error) {
	return ReadLedger(strings.NewReader(strings.TrimSpace(csv)+"\n"), nil)
}

// fakeProvider is an in-memory QuoteProvider. A ticker or currency absent
// from its maps is unavailable.
type fakeProvider struct {
	closes   map[string]float64
	direct   map[string]float64
	industry map[string]string
	rates    map[string]float64 // keyed by source currency
}

func (f fakeProvider) LatestClose(_ context.Context, ticker string, _, _ date.Date) (float64, error) {
	if v, ok := f.closes[ticker]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("no price data for %s", ticker)
}

func (f fakeProvider) DirectQuote(_ context.Context, ticker string) (float64, error) {
	if v, ok := f.direct[ticker]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("no direct quote for %s", ticker)
}

func (f fakeProvider) Industry(_ context.Context, ticker string) (string, error) {
	if v, ok := f.industry[ticker]; ok {
		return v, nil
	}
	return "", fmt.Errorf("no industry for %s", ticker)
}

func (f fakeProvider) ExchangeRate(_ context.Context, currency, _ string, _ date.Date) (float64, error) {
	if v, ok := f.rates[currency]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("no rate for %s", currency)
}
