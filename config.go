package folio

import (
	"fmt"
	"os"

	"github.com/jweitan/folio/date"
	"gopkg.in/yaml.v3"
)

// TickerOverride is the declarative per-ticker special-case table. Historic
// runs accumulated hand-maintained identities (an in-house fund with a known
// purchase price, a ticker whose chart feed is unreliable); adding a new one
// is a config change, never a code change.
type TickerOverride struct {
	// AvgPrice, when set, is the hand-entered average purchase price carried
	// on the override row (manually valued tickers otherwise report 0).
	AvgPrice *float64 `yaml:"avg_price,omitempty"`

	// Repool re-includes this manually valued ticker into the local-currency
	// weighting pool; override rows are normally outside both pools.
	Repool bool `yaml:"repool,omitempty"`

	// DirectQuote retries the ticker against the provider's direct quote
	// endpoint when its chart history comes back empty.
	DirectQuote bool `yaml:"direct_quote,omitempty"`
}

// Config is the run profile, loaded once per run from YAML.
type Config struct {
	// ReportingCurrency is the single currency every monetary figure is
	// normalized into.
	ReportingCurrency string `yaml:"reporting_currency"`

	// ForeignPoolCurrency partitions the weighting pools: rows in this
	// currency form one pool, everything else the other.
	ForeignPoolCurrency string `yaml:"foreign_pool_currency"`

	// ETFTickers are reported with industry "ETF" regardless of what the
	// provider classifies them as.
	ETFTickers []string `yaml:"etf_tickers"`

	// ExcludedTickers are manually valued instruments: they are skipped in
	// ledger aggregation and valued from the funds file instead.
	ExcludedTickers []string `yaml:"excluded_tickers"`

	// Overrides is the per-ticker special-case table.
	Overrides map[string]TickerOverride `yaml:"overrides"`

	// FallbackStartDate bounds price-history queries for tickers with no
	// parsable transaction date.
	FallbackStartDate date.Date `yaml:"fallback_start_date"`

	Fetch struct {
		// Parallelism bounds the number of in-flight provider calls.
		Parallelism int `yaml:"parallelism"`
		// TimeoutSeconds is the overall run deadline for market data.
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"fetch"`

	Files struct {
		Ledger    string `yaml:"ledger"`
		Dividends string `yaml:"dividends"`
		Funds     string `yaml:"funds"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"files"`
}

// DefaultConfig returns the profile used when no config file is given.
func DefaultConfig() Config {
	var c Config
	c.ReportingCurrency = "SGD"
	c.ForeignPoolCurrency = "USD"
	c.FallbackStartDate = date.MustParse("2000-01-01")
	c.Fetch.Parallelism = 4
	c.Fetch.TimeoutSeconds = 60
	c.Files.Ledger = "transactions.csv"
	c.Files.Dividends = "dividends.csv"
	c.Files.Funds = "funds_info.txt"
	c.Files.OutputDir = "."
	return c
}

// LoadConfig reads a YAML run profile, filling unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	content, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &c); err != nil {
		return c, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return c, nil
}

// Validate checks the profile for the few fields that cannot degrade.
func (c Config) Validate() error {
	if c.ReportingCurrency == "" {
		return fmt.Errorf("reporting_currency is not set")
	}
	if c.ForeignPoolCurrency == "" {
		return fmt.Errorf("foreign_pool_currency is not set")
	}
	if c.Fetch.Parallelism < 1 {
		return fmt.Errorf("fetch.parallelism must be at least 1, got %d", c.Fetch.Parallelism)
	}
	return nil
}

// ExcludedSet returns the excluded tickers as a set.
func (c Config) ExcludedSet() map[string]bool {
	set := make(map[string]bool, len(c.ExcludedTickers))
	for _, t := range c.ExcludedTickers {
		set[t] = true
	}
	return set
}

// IsETF reports whether the ticker is force-classified as an ETF.
func (c Config) IsETF(ticker string) bool {
	for _, t := range c.ETFTickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// Override returns the special-case entry of a ticker, if any.
func (c Config) Override(ticker string) (TickerOverride, bool) {
	o, ok := c.Overrides[ticker]
	return o, ok
}
