package folio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Dividends holds the accumulated dividend amount per ticker. Amounts are
// treated as reporting-currency figures, as the dividend ledger records them.
type Dividends map[string]decimal.Decimal

// Total returns the accumulated dividends of a ticker in the given currency,
// zero when the ticker never paid any.
func (d Dividends) Total(ticker, currency string) Money {
	return M(d[ticker], currency)
}

// ReadDividends reads the dividend ledger from a CSV stream with at least
// Ticker and Dividend columns and sums the amounts per ticker. Malformed
// amounts are skipped, not fatal.
func ReadDividends(r io.Reader, log *zap.Logger) (Dividends, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read dividends header: %w", err)
	}
	tickerCol, dividendCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "ticker":
			tickerCol = i
		case "dividend":
			dividendCol = i
		}
	}
	if tickerCol < 0 || dividendCol < 0 {
		return nil, fmt.Errorf("dividends ledger needs Ticker and Dividend columns, got %v", header)
	}

	totals := make(Dividends)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read dividends line %d: %w", line, err)
		}
		if tickerCol >= len(record) || dividendCol >= len(record) {
			continue
		}
		ticker := strings.TrimSpace(record[tickerCol])
		if ticker == "" {
			continue
		}
		amount, err := decimal.NewFromString(cleanNumber(record[dividendCol]))
		if err != nil {
			log.Warn("unparsable dividend amount, skipped",
				zap.String("ticker", ticker), zap.Int("line", line), zap.String("stage", "dividends"))
			continue
		}
		totals[ticker] = totals[ticker].Add(amount)
	}
	return totals, nil
}
