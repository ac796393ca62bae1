package folio

import (
	"github.com/jweitan/folio/date"
)

// Holding is the aggregated position of one ticker.
type Holding struct {
	Ticker   string
	Company  string // last non-empty Name seen in the ledger
	Currency string // currency of the first transaction

	// TotalShares is the cumulative signed sum of the ticker's quantities
	// over the whole ledger. Zero means fully divested.
	TotalShares Quantity

	// AvgPurchasePrice is the quantity-weighted average effective price over
	// the buy rows. It is 0 when no priced buy quantity exists; that zero is
	// a division guard, not a meaningful average.
	AvgPurchasePrice Money

	// EarliestInvestmentDate is the minimum valid transaction date, or the
	// zero date when none parsed. Price-history queries then fall back to a
	// configured start date.
	EarliestInvestmentDate date.Date
}

// Holdings aggregates the ledger into one Holding per distinct, non-empty
// ticker not in the exclusion set, preserving first-appearance order.
//
// Excluded tickers are the manually valued ones: their valuation comes from
// the override table, not from the ledger.
func Holdings(ledger *Ledger, excluded map[string]bool) []Holding {
	var holdings []Holding
	for _, ticker := range ledger.Tickers() {
		if excluded[ticker] {
			continue
		}
		holdings = append(holdings, aggregate(ticker, ledger.ByTicker(ticker)))
	}
	return holdings
}

// aggregate computes the Holding of a single ticker from its rows in ledger
// order.
func aggregate(ticker string, rows []Transaction) Holding {
	h := Holding{Ticker: ticker}

	var costSum Money      // sum of effectivePrice*qty over priced buy rows
	var boughtQty Quantity // sum of qty over priced buy rows

	for _, tx := range rows {
		if h.Currency == "" {
			h.Currency = tx.Currency
		}
		if tx.Name != "" {
			h.Company = tx.Name
		}
		h.EarliestInvestmentDate = date.Min(h.EarliestInvestmentDate, tx.Date)

		if !tx.HasQty {
			continue
		}
		h.TotalShares = h.TotalShares.Add(tx.Qty)

		// Only buys carry cost basis; an unpriced buy contributes its share
		// count above but stays out of the average.
		if !tx.Qty.IsPositive() {
			continue
		}
		price, ok := tx.EffectivePrice()
		if !ok {
			continue
		}
		costSum = costSum.Add(price.Mul(tx.Qty))
		boughtQty = boughtQty.Add(tx.Qty)
	}

	if boughtQty.IsPositive() {
		h.AvgPurchasePrice = costSum.Div(boughtQty)
	} else {
		h.AvgPurchasePrice = M(0, h.Currency)
	}
	return h
}
