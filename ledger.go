package folio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jweitan/folio/date"
	"go.uber.org/zap"
)

// Ledger holds the transaction rows of a run, in file order, plus the ticker
// order of first appearance. It is read-only after loading.
type Ledger struct {
	transactions []Transaction
	tickers      []string // distinct non-empty tickers, in order of first appearance
}

// Transactions returns the ledger rows in file order.
func (l *Ledger) Transactions() []Transaction { return l.transactions }

// Tickers returns the distinct non-empty tickers in order of first appearance.
func (l *Ledger) Tickers() []string { return l.tickers }

// ByTicker returns the rows of one ticker, in ledger order.
func (l *Ledger) ByTicker(ticker string) []Transaction {
	var rows []Transaction
	for _, tx := range l.transactions {
		if tx.Ticker == ticker {
			rows = append(rows, tx)
		}
	}
	return rows
}

// Currencies returns the distinct currencies appearing in the ledger.
func (l *Ledger) Currencies() []string {
	seen := make(map[string]bool)
	var currencies []string
	for _, tx := range l.transactions {
		if tx.Currency == "" || seen[tx.Currency] {
			continue
		}
		seen[tx.Currency] = true
		currencies = append(currencies, tx.Currency)
	}
	return currencies
}

// ledger column names, matched case-insensitively after trimming.
const (
	colTicker    = "ticker"
	colDate      = "date"
	colQty       = "qty"
	colPrice     = "price"
	colNettPrice = "nettprice"
	colCurrency  = "currency"
	colName      = "name"
)

// ReadLedger reads the transaction ledger from a CSV stream.
//
// Header names are trimmed and matched case-insensitively. Malformed numeric
// or date cells are coerced to missing and logged, never fatal: a row with a
// bad price still contributes its share count. Only a stream without the
// Ticker and Qty columns is an error.
func ReadLedger(r io.Reader, log *zap.Logger) (*Ledger, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Spreadsheet exports drop trailing cells; ragged rows degrade per cell
	// like any other malformed input.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger header: %w", err)
	}
	cols := make(map[string]int)
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols[colTicker]; !ok {
		return nil, fmt.Errorf("ledger has no %q column", colTicker)
	}
	if _, ok := cols[colQty]; !ok {
		return nil, fmt.Errorf("ledger has no %q column", colQty)
	}

	cell := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ledger := &Ledger{}
	seen := make(map[string]bool)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read ledger line %d: %w", line, err)
		}
		if len(record) != len(header) {
			log.Warn("ragged ledger row, absent cells treated as missing",
				zap.Int("line", line), zap.Int("fields", len(record)), zap.Int("columns", len(header)))
		}

		tx := Transaction{
			Ticker:   cell(record, colTicker),
			Currency: cell(record, colCurrency),
			Name:     cell(record, colName),
		}

		if s := cell(record, colDate); s != "" {
			d, err := date.Parse(s)
			if err != nil {
				log.Warn("unparsable transaction date, treated as missing",
					zap.String("ticker", tx.Ticker), zap.Int("line", line), zap.String("date", s))
			} else {
				tx.Date = d
			}
		}
		if s := cell(record, colQty); s != "" {
			tx.Qty, tx.HasQty = parseQuantity(s)
			if !tx.HasQty {
				log.Warn("unparsable quantity, row excluded from share count",
					zap.String("ticker", tx.Ticker), zap.Int("line", line), zap.String("qty", s))
			}
		}
		if s := cell(record, colPrice); s != "" {
			tx.Price, tx.HasPrice = parseMoney(s, tx.Currency)
		}
		if s := cell(record, colNettPrice); s != "" {
			tx.NettPrice, tx.HasNettPrice = parseMoney(s, tx.Currency)
		}

		ledger.transactions = append(ledger.transactions, tx)
		if tx.Ticker != "" && !seen[tx.Ticker] {
			seen[tx.Ticker] = true
			ledger.tickers = append(ledger.tickers, tx.Ticker)
		}
	}
	return ledger, nil
}
