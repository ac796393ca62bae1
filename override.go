package folio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jweitan/folio/date"
	"go.uber.org/zap"
)

// OverrideValuation is the operator-supplied valuation of one manually
// valued ticker, already in the reporting currency.
type OverrideValuation struct {
	TotalCost  Money
	TotalValue Money
}

// ReadOverrides parses the funds info file: two lines per ticker,
//
//	<label ending with the ticker> = <total cost>
//	<any label> = <total value>
//
// The ticker is the last whitespace-delimited token before the '=' of the
// first line. Unlike every other input, a structurally broken file aborts the
// run: a half-parsed override table would corrupt the whole override step.
func ReadOverrides(r io.Reader, reportingCurrency string) (map[string]OverrideValuation, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read funds info: %w", err)
	}
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("funds info has %d lines, want cost/value pairs", len(lines))
	}

	parse := func(line string) (label string, amount float64, err error) {
		label, value, found := strings.Cut(line, "=")
		if !found {
			return "", 0, fmt.Errorf("line %q has no '='", line)
		}
		amount, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return "", 0, fmt.Errorf("line %q has no numeric value: %w", line, err)
		}
		return strings.TrimSpace(label), amount, nil
	}

	overrides := make(map[string]OverrideValuation)
	for i := 0; i < len(lines); i += 2 {
		label, cost, err := parse(lines[i])
		if err != nil {
			return nil, fmt.Errorf("invalid funds info: %w", err)
		}
		_, value, err := parse(lines[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid funds info: %w", err)
		}
		fields := strings.Fields(label)
		if len(fields) == 0 {
			return nil, fmt.Errorf("invalid funds info: line %q has no ticker", lines[i])
		}
		ticker := fields[len(fields)-1]
		overrides[ticker] = OverrideValuation{
			TotalCost:  M(cost, reportingCurrency),
			TotalValue: M(value, reportingCurrency),
		}
	}
	return overrides, nil
}

// MergeOverrides builds one summary row per manually valued ticker, in the
// declared exclusion order.
//
// Override rows are valued directly in the reporting currency: rate 1,
// industry "ETF", native cost/value equal to the reporting figures. The
// average purchase price is 0 unless the ticker carries a declared AvgPrice
// in the config override table.
//
// A ticker declared excluded but absent from the funds file produces no row;
// that makes the report incomplete, so it is surfaced as a warning.
func MergeOverrides(excluded []string, valuations map[string]OverrideValuation, cfg Config, asOf date.Date, log *zap.Logger) []SummaryRow {
	if log == nil {
		log = zap.NewNop()
	}
	var rows []SummaryRow
	for _, ticker := range excluded {
		v, ok := valuations[ticker]
		if !ok {
			log.Warn("excluded ticker has no funds info entry, report is incomplete",
				zap.String("ticker", ticker), zap.String("stage", "override"))
			continue
		}

		avgPrice := M(0, cfg.ReportingCurrency)
		if o, ok := cfg.Override(ticker); ok && o.AvgPrice != nil {
			avgPrice = M(*o.AvgPrice, cfg.ReportingCurrency)
		}

		rows = append(rows, SummaryRow{
			Ticker:   ticker,
			Company:  ticker,
			Industry: "ETF",
			Currency: cfg.ReportingCurrency,

			AvgPurchasePrice: avgPrice,

			TotalCost:           v.TotalCost,
			TotalCostReporting:  v.TotalCost,
			TotalValue:          v.TotalValue,
			TotalValueReporting: v.TotalValue,
			ProfitReporting:     v.TotalValue.Sub(v.TotalCost),

			ExchangeRate:  Q(1),
			AsOfDate:      asOf,
			WeightPercent: UndefinedPercent(),
			Overridden:    true,
		})
	}
	return rows
}
