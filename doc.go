// Package folio turns a ledger of buy and sell transactions into a
// per-instrument portfolio valuation report: current holdings, cost basis,
// market value, currency-normalized profit, relative weight, accumulated
// dividends and a grand total.
//
// The engine is a one-shot batch over an immutable input snapshot. Data
// flows one way: ledger rows are aggregated into holdings, holdings are
// valued against a market data context fetched once per run, manually valued
// instruments are merged in from an override table, rows are weighted within
// their currency pool, dividends are joined and the report is assembled with
// its grand total.
package folio
