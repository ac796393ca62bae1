package folio

import (
	"context"
	"testing"

	"github.com/jweitan/folio/date"
)

func testMarketData(t *testing.T, provider QuoteProvider, holdings []Holding, cfg Config) *MarketData {
	t.Helper()
	return FetchMarketData(context.Background(), provider, holdings, cfg, date.MustParse("2026-08-30"), nil)
}

func TestValue(t *testing.T) {
	cfg := testConfig()
	provider := fakeProvider{
		closes:   map[string]float64{"AAA": 8},
		industry: map[string]string{"AAA": "Software"},
		rates:    map[string]float64{"USD": 1.35},
	}
	h := Holding{Ticker: "AAA", Company: "Alpha", Currency: "USD", TotalShares: Q(10), AvgPurchasePrice: USD(5)}
	md := testMarketData(t, provider, []Holding{h}, cfg)

	row := Value(h, md, cfg)

	if !row.TotalCost.Equal(USD(50)) {
		t.Errorf("TotalCost = %v, want 50", row.TotalCost)
	}
	if !row.TotalValue.Equal(USD(80)) {
		t.Errorf("TotalValue = %v, want 80", row.TotalValue)
	}
	if !row.TotalCostReporting.Equal(SGD(67.5)) {
		t.Errorf("TotalCostReporting = %v, want 67.5", row.TotalCostReporting)
	}
	if !row.TotalValueReporting.Equal(SGD(108)) {
		t.Errorf("TotalValueReporting = %v, want 108", row.TotalValueReporting)
	}
	if !row.ProfitReporting.Equal(SGD(40.5)) {
		t.Errorf("ProfitReporting = %v, want 40.5", row.ProfitReporting)
	}
	if row.Industry != "Software" {
		t.Errorf("Industry = %q, want Software", row.Industry)
	}
	if !row.ExchangeRate.Equal(Q(1.35)) {
		t.Errorf("ExchangeRate = %v, want 1.35", row.ExchangeRate)
	}
	if row.Approximate {
		t.Error("row should not be approximate with full market data")
	}
}

func TestValueUnavailablePrice(t *testing.T) {
	// The zero sentinel propagates: the value collapses to zero and the
	// profit to the negated reporting cost, with the row marked approximate.
	cfg := testConfig()
	provider := fakeProvider{rates: map[string]float64{"USD": 1.35}}
	h := Holding{Ticker: "AAA", Currency: "USD", TotalShares: Q(10), AvgPurchasePrice: USD(5)}
	md := testMarketData(t, provider, []Holding{h}, cfg)

	row := Value(h, md, cfg)

	if !row.LatestPrice.IsZero() || !row.TotalValue.IsZero() {
		t.Errorf("LatestPrice/TotalValue = %v/%v, want zeros", row.LatestPrice, row.TotalValue)
	}
	if !row.ProfitReporting.Equal(row.TotalCostReporting.Neg()) {
		t.Errorf("ProfitReporting = %v, want -TotalCostReporting %v", row.ProfitReporting, row.TotalCostReporting.Neg())
	}
	if row.Industry != IndustryUnknown {
		t.Errorf("Industry = %q, want %q", row.Industry, IndustryUnknown)
	}
	if !row.Approximate {
		t.Error("row with unavailable price must be approximate")
	}
}

func TestValueUnavailableRate(t *testing.T) {
	cfg := testConfig()
	provider := fakeProvider{
		closes:   map[string]float64{"AAA": 8},
		industry: map[string]string{"AAA": "Software"},
	}
	h := Holding{Ticker: "AAA", Currency: "EUR", TotalShares: Q(10), AvgPurchasePrice: M(5, "EUR")}
	md := testMarketData(t, provider, []Holding{h}, cfg)

	row := Value(h, md, cfg)

	// Rate degrades to 1: reporting figures mirror the native ones.
	if !row.ExchangeRate.Equal(Q(1)) {
		t.Errorf("ExchangeRate = %v, want fallback 1", row.ExchangeRate)
	}
	if !row.TotalValueReporting.Equal(SGD(80)) {
		t.Errorf("TotalValueReporting = %v, want 80", row.TotalValueReporting)
	}
	if !row.Approximate {
		t.Error("row with fallback rate must be approximate")
	}
}

func TestValueETFOverride(t *testing.T) {
	cfg := testConfig()
	cfg.ETFTickers = []string{"CSPX.L"}
	provider := fakeProvider{
		closes:   map[string]float64{"CSPX.L": 500},
		industry: map[string]string{"CSPX.L": "Asset Management"},
		rates:    map[string]float64{"USD": 1.35},
	}
	h := Holding{Ticker: "CSPX.L", Currency: "USD", TotalShares: Q(2), AvgPurchasePrice: USD(400)}
	md := testMarketData(t, provider, []Holding{h}, cfg)

	if row := Value(h, md, cfg); row.Industry != "ETF" {
		t.Errorf("Industry = %q, want forced ETF", row.Industry)
	}
}

func TestValueReportingCurrencyHolding(t *testing.T) {
	cfg := testConfig()
	provider := fakeProvider{
		closes:   map[string]float64{"BBB": 3},
		industry: map[string]string{"BBB": "Banks"},
	}
	h := Holding{Ticker: "BBB", Currency: "SGD", TotalShares: Q(100), AvgPurchasePrice: SGD(2)}
	md := testMarketData(t, provider, []Holding{h}, cfg)

	row := Value(h, md, cfg)
	if !row.ExchangeRate.Equal(Q(1)) {
		t.Errorf("ExchangeRate = %v, want 1 for the reporting currency", row.ExchangeRate)
	}
	if row.Approximate {
		t.Error("reporting-currency holding needs no rate and is not approximate")
	}
	if !row.ProfitReporting.Equal(SGD(100)) {
		t.Errorf("ProfitReporting = %v, want 100", row.ProfitReporting)
	}
}
