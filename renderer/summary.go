// Package renderer renders reports to markdown for terminal display.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/jweitan/folio"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the valuation report as a markdown document.
//
// Approximate rows (unavailable price or fallback exchange rate) are suffixed
// with a marker so a distorted zero valuation is not read as a real one.
func SummaryMarkdown(r *folio.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", r.AsOf))

	rc := r.ReportingCurrency
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{
			"Ticker", "Company", "Industry", "Ccy",
			"Shares", "Avg Price",
			fmt.Sprintf("Cost (%s)", rc),
			fmt.Sprintf("Value (%s)", rc),
			fmt.Sprintf("Profit (%s)", rc),
			"Weight", "Dividends",
		},
	}

	var approximate bool
	for _, row := range r.Rows {
		if row.GrandTotal {
			table.Rows = append(table.Rows, []string{
				md.Bold(row.Ticker), "", "", "", "", "",
				md.Bold(row.TotalCostReporting.Fixed2()),
				md.Bold(row.TotalValueReporting.Fixed2()),
				md.Bold(row.ProfitReporting.Fixed2()),
				"",
				md.Bold(row.Dividends.Fixed2()),
			})
			continue
		}
		ticker := row.Ticker
		if row.Approximate {
			ticker += " \\*"
			approximate = true
		}
		table.Rows = append(table.Rows, []string{
			ticker,
			row.Company,
			row.Industry,
			row.Currency,
			row.TotalShares.String(),
			row.AvgPurchasePrice.Fixed2(),
			row.TotalCostReporting.Fixed2(),
			row.TotalValueReporting.Fixed2(),
			row.ProfitReporting.Fixed2(),
			row.WeightPercent.String(),
			row.Dividends.Fixed2(),
		})
	}
	doc.Table(table)

	if approximate {
		doc.PlainText("\\* market data unavailable, valuation is approximate")
	}
	return doc.String()
}

// HoldingsMarkdown renders the aggregated holdings without valuation.
func HoldingsMarkdown(holdings []folio.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignLeft,
		},
		Header: []string{"Ticker", "Company", "Ccy", "Shares", "Avg Price", "Since"},
	}
	for _, h := range holdings {
		since := ""
		if !h.EarliestInvestmentDate.IsZero() {
			since = h.EarliestInvestmentDate.String()
		}
		table.Rows = append(table.Rows, []string{
			h.Ticker,
			h.Company,
			h.Currency,
			h.TotalShares.String(),
			h.AvgPurchasePrice.Fixed2(),
			since,
		})
	}
	doc.Table(table)

	return doc.String()
}
