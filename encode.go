package folio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Filename returns the deterministic artifact name of the run,
// e.g. "portfolio_summary_2026-08-30.csv".
func (r *Report) Filename() string {
	return fmt.Sprintf("portfolio_summary_%s.csv", r.AsOf)
}

// header returns the artifact columns, with reporting-currency columns
// labelled by the actual currency.
func (r *Report) header() []string {
	rc := r.ReportingCurrency
	return []string{
		"Ticker", "Company", "Industry", "Currency",
		"Total Shares", "Average Purchase Price",
		"Total Cost", "Total Cost (" + rc + ")",
		"Latest Price", "Total Value", "Total Value (" + rc + ")",
		"Profit (" + rc + ")",
		"Exchange Rate", "As Of Date", "Weightage (%)",
		"Earliest Investment Date", "Dividends", "Approximate",
	}
}

// record encodes one row. Per-instrument cells are left empty on the grand
// total row, and an undefined weight is an empty cell, never 0.
func record(row SummaryRow) []string {
	if row.GrandTotal {
		return []string{
			row.Ticker, "", "", "",
			"", "",
			"", row.TotalCostReporting.Fixed2(),
			"", "", row.TotalValueReporting.Fixed2(),
			row.ProfitReporting.Fixed2(),
			"", row.AsOfDate.String(), "",
			"", row.Dividends.Fixed2(), "",
		}
	}

	weight := ""
	if row.WeightPercent.IsDefined() {
		weight = fmt.Sprintf("%.2f", float64(row.WeightPercent))
	}
	earliest := ""
	if !row.EarliestInvestmentDate.IsZero() {
		earliest = row.EarliestInvestmentDate.String()
	}
	approximate := ""
	if row.Approximate {
		approximate = "yes"
	}

	return []string{
		row.Ticker, row.Company, row.Industry, row.Currency,
		row.TotalShares.String(), row.AvgPurchasePrice.Fixed2(),
		row.TotalCost.Fixed2(), row.TotalCostReporting.Fixed2(),
		row.LatestPrice.Fixed2(), row.TotalValue.Fixed2(), row.TotalValueReporting.Fixed2(),
		row.ProfitReporting.Fixed2(),
		row.ExchangeRate.String(), row.AsOfDate.String(), weight,
		earliest, row.Dividends.Fixed2(), approximate,
	}
}

// WriteCSV writes the report artifact to w.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.header()); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if err := cw.Write(record(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes the artifact into dir under its deterministic name and
// returns the path.
func (r *Report) Save(dir string) (string, error) {
	path := filepath.Join(dir, r.Filename())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot create report artifact: %w", err)
	}
	defer f.Close()
	if err := r.WriteCSV(f); err != nil {
		return "", fmt.Errorf("cannot write report artifact %q: %w", path, err)
	}
	return path, nil
}
