// Package yahoo implements the folio.QuoteProvider contract against the
// Yahoo Finance public endpoints: daily closes and exchange rates from the
// chart API, industry classification from the quoteSummary API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/jweitan/folio/date"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Yahoo rejects requests without a browser-looking agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/120.0"

// Client queries Yahoo Finance. Responses are cached on disk with daily
// expiry, so repeated runs on the same day do not hammer the endpoints.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient returns a client against the public Yahoo endpoints.
func NewClient() *Client {
	return &Client{http: daily(), baseURL: defaultBaseURL}
}

// NewClientURL returns an uncached client against the given base URL.
// Used by tests to point at a local server.
func NewClientURL(baseURL string) *Client {
	return &Client{http: http.DefaultClient, baseURL: baseURL}
}

// chartResponse is the shape of the v8 chart API payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// jwget performs an HTTP GET and unmarshals the JSON response into data.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, data)
}

// chart fetches the daily chart of a symbol over [from, to].
func (c *Client) chart(ctx context.Context, symbol string, from, to date.Date) (chartResponse, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, url.PathEscape(symbol), from.Unix(), to.Add(1).Unix())

	var content chartResponse
	if err := c.jwget(ctx, addr, &content); err != nil {
		return content, err
	}
	if e := content.Chart.Error; e != nil {
		return content, fmt.Errorf("chart error for %q: %s %s", symbol, e.Code, e.Description)
	}
	if len(content.Chart.Result) == 0 {
		return content, fmt.Errorf("no chart result for %q", symbol)
	}
	return content, nil
}

// lastClose returns the most recent non-zero close of a chart payload.
func lastClose(content chartResponse) (float64, error) {
	result := content.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return 0, fmt.Errorf("no quote data for %q", result.Meta.Symbol)
	}
	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != 0 {
			return closes[i], nil
		}
	}
	return 0, fmt.Errorf("no close prices for %q", result.Meta.Symbol)
}

// LatestClose returns the most recent daily close of ticker within [from, to].
func (c *Client) LatestClose(ctx context.Context, ticker string, from, to date.Date) (float64, error) {
	content, err := c.chart(ctx, ticker, from, to)
	if err != nil {
		return 0, err
	}
	return lastClose(content)
}

// DirectQuote returns the current regular market price of ticker from the
// chart metadata, bypassing the daily history. Some thinly covered tickers
// return an empty history but a valid regular market price.
func (c *Client) DirectQuote(ctx context.Context, ticker string) (float64, error) {
	content, err := c.chart(ctx, ticker, date.Today().Add(-7), date.Today())
	if err != nil {
		return 0, err
	}
	price := content.Chart.Result[0].Meta.RegularMarketPrice
	if price == 0 {
		return 0, fmt.Errorf("no regular market price for %q", ticker)
	}
	return price, nil
}

// ExchangeRate returns the latest rate converting one unit of currency into
// the reporting currency, using the "<FROM><TO>=X" forex symbol.
func (c *Client) ExchangeRate(ctx context.Context, currency, reporting string, on date.Date) (float64, error) {
	symbol := fmt.Sprintf("%s%s=X", currency, reporting)
	// Forex charts can be sparse; a wide window keeps the last fixing in range.
	content, err := c.chart(ctx, symbol, on.Add(-30), on)
	if err != nil {
		return 0, err
	}
	return lastClose(content)
}

// Industry returns the industry classification of ticker from the
// quoteSummary assetProfile module.
//
// The payload shape varies per security type (funds have no assetProfile
// industry), so the field is picked out with a jsonpath instead of a rigid
// struct.
func (c *Client) Industry(ctx context.Context, ticker string) (string, error) {
	addr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile",
		c.baseURL, url.PathEscape(ticker))

	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return "", err
	}
	path := "$.quoteSummary.result[0].assetProfile.industry"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("no industry for %q: %w", ticker, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or
	// a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	industry, ok := jval.(string)
	if !ok || industry == "" {
		return "", fmt.Errorf("no industry for %q", ticker)
	}
	return industry, nil
}
