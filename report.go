package folio

import (
	"context"

	"github.com/jweitan/folio/date"
	"go.uber.org/zap"
)

// GrandTotalTicker labels the final aggregate row.
const GrandTotalTicker = "Grand Total"

// Report is the run's sole externally visible artifact: one row per
// surviving or overridden ticker, then the grand total.
type Report struct {
	AsOf              date.Date
	ReportingCurrency string
	Rows              []SummaryRow
}

// BuildReport assembles the final report from valued rows, override rows and
// the dividend totals.
//
// Valued rows keep their first-appearance order and overridden rows are
// appended after them, in declared order. A ticker with zero total shares
// and no override has been fully divested and is dropped; overridden rows
// are always kept since the override carries no share count. Every monetary
// field is rounded to 2 decimals on the way out, and the grand total sums
// the rounded reporting cost, value, profit and dividends of all rows so the
// total always reconciles exactly against the emitted figures.
func BuildReport(valued, overridden []SummaryRow, dividends Dividends, cfg Config, asOf date.Date) *Report {
	var rows []SummaryRow
	for _, row := range valued {
		if row.TotalShares.IsZero() {
			continue
		}
		rows = append(rows, row)
	}
	rows = append(rows, overridden...)

	rows = Weigh(rows, cfg)

	total := SummaryRow{
		Ticker:        GrandTotalTicker,
		AsOfDate:      asOf,
		WeightPercent: UndefinedPercent(),
		GrandTotal:    true,
	}
	for i := range rows {
		rows[i].Dividends = dividends.Total(rows[i].Ticker, cfg.ReportingCurrency)
		rows[i] = rounded(rows[i])

		total.TotalCostReporting = total.TotalCostReporting.Add(rows[i].TotalCostReporting)
		total.TotalValueReporting = total.TotalValueReporting.Add(rows[i].TotalValueReporting)
		total.ProfitReporting = total.ProfitReporting.Add(rows[i].ProfitReporting)
		total.Dividends = total.Dividends.Add(rows[i].Dividends)
	}
	rows = append(rows, total)

	return &Report{
		AsOf:              asOf,
		ReportingCurrency: cfg.ReportingCurrency,
		Rows:              rows,
	}
}

// rounded returns the row with every monetary field at report precision.
func rounded(row SummaryRow) SummaryRow {
	row.AvgPurchasePrice = row.AvgPurchasePrice.Round2()
	row.LatestPrice = row.LatestPrice.Round2()
	row.TotalCost = row.TotalCost.Round2()
	row.TotalCostReporting = row.TotalCostReporting.Round2()
	row.TotalValue = row.TotalValue.Round2()
	row.TotalValueReporting = row.TotalValueReporting.Round2()
	row.ProfitReporting = row.ProfitReporting.Round2()
	row.Dividends = row.Dividends.Round2()
	return row
}

// Summarize runs the whole pipeline: aggregate the ledger into holdings,
// fetch market data, value every holding, merge the manual overrides, weigh,
// join dividends and build the final report.
//
// Data flows one way through the stages; only the override file can make it
// fail once inputs are loaded, per-instrument market data failures degrade
// inside FetchMarketData.
func Summarize(ctx context.Context, ledger *Ledger, dividends Dividends, overrides map[string]OverrideValuation, provider QuoteProvider, cfg Config, asOf date.Date, log *zap.Logger) *Report {
	holdings := Holdings(ledger, cfg.ExcludedSet())
	md := FetchMarketData(ctx, provider, holdings, cfg, asOf, log)

	valued := make([]SummaryRow, 0, len(holdings))
	for _, h := range holdings {
		valued = append(valued, Value(h, md, cfg))
	}

	overriddenRows := MergeOverrides(cfg.ExcludedTickers, overrides, cfg, asOf, log)

	return BuildReport(valued, overriddenRows, dividends, cfg, asOf)
}
