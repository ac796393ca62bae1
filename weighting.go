package folio

import "github.com/shopspring/decimal"

// pool identifies a weighting pool. Weights are only comparable within one
// pool, where they sum to 100 (subject to rounding).
type pool int

const (
	poolNone pool = iota // outside both pools: weight stays undefined
	poolForeign
	poolLocal
)

// poolOf applies the partitioning predicate plus the config-table
// reassignment.
//
// Foreign pool: rows in the foreign pool currency, excluding overridden
// rows. Local pool: every other currency, excluding overridden rows unless
// the override table re-pools them.
func poolOf(row SummaryRow, cfg Config) pool {
	if row.Currency == cfg.ForeignPoolCurrency {
		if row.Overridden {
			return poolNone
		}
		return poolForeign
	}
	if row.Overridden {
		if o, ok := cfg.Override(row.Ticker); ok && o.Repool {
			return poolLocal
		}
		return poolNone
	}
	return poolLocal
}

// Weigh assigns each row its percentage weight of the total reporting value
// of its pool, rounded to 2 decimals.
//
// Rows outside both pools, and rows of a pool whose total value is zero,
// keep an undefined weight; an undefined weight is never coerced to 0.
func Weigh(rows []SummaryRow, cfg Config) []SummaryRow {
	totals := map[pool]Money{}
	for _, row := range rows {
		p := poolOf(row, cfg)
		if p == poolNone {
			continue
		}
		totals[p] = totals[p].Add(row.TotalValueReporting)
	}

	hundred := Q(decimal.NewFromInt(100))
	for i, row := range rows {
		p := poolOf(row, cfg)
		if p == poolNone || totals[p].IsZero() {
			rows[i].WeightPercent = UndefinedPercent()
			continue
		}
		share := row.TotalValueReporting.DivPrice(totals[p]).Mul(hundred)
		rows[i].WeightPercent = Percent(share.value.Round(2).InexactFloat64())
	}
	return rows
}
