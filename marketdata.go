package folio

import (
	"context"
	"sync"
	"time"

	"github.com/jweitan/folio/date"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuoteProvider is the market data collaborator contract. Implementations
// live outside the engine (package yahoo); the engine only consumes this.
//
// A provider signals "unavailable" with an error; the engine degrades per
// instrument and never aborts the run for it.
type QuoteProvider interface {
	// LatestClose returns the most recent closing price of ticker within
	// [from, to], in the instrument's native currency.
	LatestClose(ctx context.Context, ticker string, from, to date.Date) (float64, error)

	// DirectQuote returns the current regular market price of ticker,
	// bypassing chart history. Used as a declared fallback for tickers whose
	// history feed is unreliable.
	DirectQuote(ctx context.Context, ticker string) (float64, error)

	// Industry returns the industry classification of ticker.
	Industry(ctx context.Context, ticker string) (string, error)

	// ExchangeRate returns the rate converting one unit of currency into the
	// reporting currency, as of the given date.
	ExchangeRate(ctx context.Context, currency, reporting string, on date.Date) (float64, error)
}

// IndustryUnknown is the classification used when the provider has none.
const IndustryUnknown = "Unknown"

// Quote is the per-ticker market view of a run.
type Quote struct {
	// LatestPrice is the latest close in the instrument's currency. The 0
	// sentinel means "unavailable" and deliberately flows into the valuation
	// as a zero market value; Approximate marks the row so the report can
	// tell degraded data from a true zero.
	LatestPrice float64
	Industry    string
	Approximate bool
}

// MarketData is the per-run market lookup context: quotes by ticker and
// exchange rates by currency. It is built once by FetchMarketData and never
// mutated afterwards; valuation functions only read it.
type MarketData struct {
	asOf     date.Date
	quotes   map[string]Quote
	rates    map[string]float64
	approxFX map[string]bool
}

// AsOf returns the run's as-of date.
func (m *MarketData) AsOf() date.Date { return m.asOf }

// Quote returns the market view of a ticker, or the degraded default when
// the ticker was never fetched.
func (m *MarketData) Quote(ticker string) Quote {
	if q, ok := m.quotes[ticker]; ok {
		return q
	}
	return Quote{Industry: IndustryUnknown, Approximate: true}
}

// Rate returns the exchange rate of a currency into the reporting currency.
// The reporting currency itself, and any currency the provider could not
// quote, rate at 1.
func (m *MarketData) Rate(currency string) Quantity {
	if r, ok := m.rates[currency]; ok {
		return Q(r)
	}
	return Q(1)
}

// RateApproximate reports whether the rate of a currency is a fallback.
func (m *MarketData) RateApproximate(currency string) bool { return m.approxFX[currency] }

// FetchMarketData queries the provider once per distinct ticker and currency
// and returns the immutable market context of the run.
//
// Calls run concurrently with bounded parallelism under the configured
// deadline. Failures are isolated per instrument: a ticker that cannot be
// priced degrades to the zero sentinel with industry "Unknown", a currency
// that cannot be quoted rates at 1, and in both cases the row is marked
// approximate and the failure is logged with its ticker and stage.
func FetchMarketData(ctx context.Context, provider QuoteProvider, holdings []Holding, cfg Config, asOf date.Date, log *zap.Logger) *MarketData {
	if log == nil {
		log = zap.NewNop()
	}
	md := &MarketData{
		asOf:     asOf,
		quotes:   make(map[string]Quote),
		rates:    make(map[string]float64),
		approxFX: make(map[string]bool),
	}

	if cfg.Fetch.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Fetch.Parallelism)

	currencies := make(map[string]bool)
	for _, h := range holdings {
		currencies[h.Currency] = true

		g.Go(func() error {
			q := fetchQuote(ctx, provider, h, cfg, asOf, log)
			mu.Lock()
			md.quotes[h.Ticker] = q
			mu.Unlock()
			return nil
		})
	}

	for currency := range currencies {
		if currency == "" || currency == cfg.ReportingCurrency {
			continue
		}
		g.Go(func() error {
			rate, approx := fetchRate(ctx, provider, currency, cfg, asOf, log)
			mu.Lock()
			md.rates[currency] = rate
			md.approxFX[currency] = approx
			mu.Unlock()
			return nil
		})
	}

	// Tasks degrade instead of failing, so the only error source is the
	// context itself.
	g.Wait()
	return md
}

// fetchQuote resolves the price and industry of one holding, applying the
// declared direct-quote fallback and degrading to defaults on failure. The
// price window ends at the run's as-of date, never beyond it.
func fetchQuote(ctx context.Context, provider QuoteProvider, h Holding, cfg Config, asOf date.Date, log *zap.Logger) Quote {
	q := Quote{Industry: IndustryUnknown}

	from := h.EarliestInvestmentDate
	if from.IsZero() {
		from = cfg.FallbackStartDate
	}

	price, err := provider.LatestClose(ctx, h.Ticker, from, asOf)
	if err != nil || price == 0 {
		if o, ok := cfg.Override(h.Ticker); ok && o.DirectQuote {
			price, err = provider.DirectQuote(ctx, h.Ticker)
			if err == nil && price != 0 {
				log.Info("priced via direct quote fallback", zap.String("ticker", h.Ticker), zap.Float64("price", price))
			}
		}
	}
	if err != nil || price == 0 {
		log.Warn("no price data, valuing at zero",
			zap.String("ticker", h.Ticker), zap.String("stage", "price"), zap.Error(err))
		q.Approximate = true
		price = 0
	}
	q.LatestPrice = price

	industry, err := provider.Industry(ctx, h.Ticker)
	if err != nil || industry == "" {
		log.Warn("no industry data",
			zap.String("ticker", h.Ticker), zap.String("stage", "industry"), zap.Error(err))
		industry = IndustryUnknown
	}
	q.Industry = industry
	return q
}

// fetchRate resolves one currency's rate into the reporting currency,
// defaulting to 1 on failure.
func fetchRate(ctx context.Context, provider QuoteProvider, currency string, cfg Config, asOf date.Date, log *zap.Logger) (rate float64, approximate bool) {
	rate, err := provider.ExchangeRate(ctx, currency, cfg.ReportingCurrency, asOf)
	if err != nil || rate == 0 {
		log.Warn("no exchange rate, defaulting to 1",
			zap.String("currency", currency), zap.String("stage", "fx"), zap.Error(err))
		return 1, true
	}
	return rate, false
}
