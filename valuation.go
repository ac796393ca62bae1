package folio

import (
	"github.com/jweitan/folio/date"
)

// SummaryRow is one line of the final report: a valued holding, an override
// row, or the grand total.
type SummaryRow struct {
	Ticker   string
	Company  string
	Industry string
	Currency string

	TotalShares      Quantity
	AvgPurchasePrice Money
	LatestPrice      Money

	TotalCost           Money // in the instrument's currency
	TotalCostReporting  Money
	TotalValue          Money // in the instrument's currency
	TotalValueReporting Money
	ProfitReporting     Money

	ExchangeRate           Quantity
	AsOfDate               date.Date
	WeightPercent          Percent
	EarliestInvestmentDate date.Date
	Dividends              Money

	// Approximate marks a row whose valuation carries a fallback (price
	// sentinel 0 or default exchange rate). The figures are real numbers but
	// distorted; the flag keeps them distinguishable from true zeros.
	Approximate bool

	// Overridden marks a manually valued row.
	Overridden bool

	// GrandTotal marks the final aggregate row.
	GrandTotal bool
}

// Value combines one holding with the run's market context into a summary
// row. Weight and dividends are joined later by the report builder.
//
// An unavailable price is the documented zero-sentinel approximation: the
// market value collapses to zero and the reporting profit to the negated
// reporting cost, with Approximate set.
func Value(h Holding, md *MarketData, cfg Config) SummaryRow {
	quote := md.Quote(h.Ticker)
	rate := md.Rate(h.Currency)

	latest := M(quote.LatestPrice, h.Currency)
	totalCost := h.AvgPurchasePrice.Mul(h.TotalShares)
	totalValue := latest.Mul(h.TotalShares)

	industry := quote.Industry
	if cfg.IsETF(h.Ticker) {
		industry = "ETF"
	}

	return SummaryRow{
		Ticker:   h.Ticker,
		Company:  h.Company,
		Industry: industry,
		Currency: h.Currency,

		TotalShares:      h.TotalShares,
		AvgPurchasePrice: h.AvgPurchasePrice,
		LatestPrice:      latest,

		TotalCost:           totalCost,
		TotalCostReporting:  totalCost.Convert(rate, cfg.ReportingCurrency),
		TotalValue:          totalValue,
		TotalValueReporting: totalValue.Convert(rate, cfg.ReportingCurrency),
		ProfitReporting:     totalValue.Sub(totalCost).Convert(rate, cfg.ReportingCurrency),

		ExchangeRate:           rate,
		AsOfDate:               md.AsOf(),
		WeightPercent:          UndefinedPercent(),
		EarliestInvestmentDate: h.EarliestInvestmentDate,

		Approximate: quote.Approximate || md.RateApproximate(h.Currency),
	}
}
