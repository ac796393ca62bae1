package folio

import (
	"strings"

	"github.com/jweitan/folio/date"
	"github.com/shopspring/decimal"
)

// Transaction is one row of the transaction ledger. It is immutable once
// loaded.
//
// Numeric and date fields of exported spreadsheets are frequently malformed;
// a field that could not be parsed is recorded as absent (Has* false, or a
// zero Date) and simply does not contribute to the aggregation that needs it.
type Transaction struct {
	Ticker   string
	Date     date.Date // zero when missing or unparsable
	Currency string
	Name     string

	Qty    Quantity
	HasQty bool

	Price    Money
	HasPrice bool

	NettPrice    Money
	HasNettPrice bool
}

// EffectivePrice returns the price used for cost-basis math: the nett price
// when present, else the gross price.
func (t Transaction) EffectivePrice() (Money, bool) {
	if t.HasNettPrice {
		return t.NettPrice, true
	}
	return t.Price, t.HasPrice
}

// cleanNumber strips the formatting characters found in spreadsheet money
// columns (currency symbols, thousands separators, stray spaces) before
// numeric parsing.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	for _, c := range []string{"$", "S$", "€", "£", ",", " "} {
		s = strings.ReplaceAll(s, c, "")
	}
	return s
}

// parseQuantity parses a ledger quantity cell, reporting false when the cell
// is empty or malformed.
func parseQuantity(s string) (Quantity, bool) {
	s = cleanNumber(s)
	if s == "" {
		return Quantity{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, false
	}
	return Q(d), true
}

// parseMoney parses a ledger money cell in the given currency, reporting
// false when the cell is empty or malformed.
func parseMoney(s, currency string) (Money, bool) {
	s = cleanNumber(s)
	if s == "" {
		return Money{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, false
	}
	return M(d, currency), true
}
