package yahoo_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jweitan/folio"
	"github.com/jweitan/folio/date"
	"github.com/jweitan/folio/yahoo"
)

var _ folio.QuoteProvider = (*yahoo.Client)(nil)

func chartPayload(symbol string, price float64, closes ...any) string {
	cells := make([]string, len(closes))
	for i, c := range closes {
		cells[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"currency":"USD","symbol":%q,"regularMarketPrice":%g},
		"timestamp":[1700000000,1700086400,1700172800],
		"indicators":{"quote":[{"close":[%s]}]}}],
		"error":null}}`, symbol, price, strings.Join(cells, ","))
}

func newServer(t *testing.T, handler http.HandlerFunc) *yahoo.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return yahoo.NewClientURL(srv.URL)
}

func TestLatestClose(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, chartPayload("AAPL", 191.2, 188.4, 190.1, 189.7))
	})

	got, err := client.LatestClose(context.Background(), "AAPL", date.MustParse("2023-11-01"), date.MustParse("2023-11-20"))
	if err != nil {
		t.Fatalf("LatestClose() error: %v", err)
	}
	if got != 189.7 {
		t.Errorf("LatestClose() = %v, want 189.7", got)
	}
}

func TestLatestCloseSkipsNulls(t *testing.T) {
	// Yahoo pads the series with nulls on non-trading days; the latest
	// non-zero close wins.
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartPayload("D05.SI", 0, 33.1, 33.4, "null"))
	})

	got, err := client.LatestClose(context.Background(), "D05.SI", date.MustParse("2023-11-01"), date.MustParse("2023-11-20"))
	if err != nil {
		t.Fatalf("LatestClose() error: %v", err)
	}
	if got != 33.4 {
		t.Errorf("LatestClose() = %v, want 33.4", got)
	}
}

func TestLatestCloseEmptyHistory(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartPayload("XXX", 0, "null", "null", "null"))
	})

	if _, err := client.LatestClose(context.Background(), "XXX", date.MustParse("2023-11-01"), date.MustParse("2023-11-20")); err == nil {
		t.Error("LatestClose() should fail when every close is null")
	}
}

func TestDirectQuote(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartPayload("D05.SI", 35.8, "null"))
	})

	got, err := client.DirectQuote(context.Background(), "D05.SI")
	if err != nil {
		t.Fatalf("DirectQuote() error: %v", err)
	}
	if got != 35.8 {
		t.Errorf("DirectQuote() = %v, want 35.8", got)
	}
}

func TestExchangeRateSymbol(t *testing.T) {
	var requested string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		fmt.Fprint(w, chartPayload("USDSGD=X", 0, 1.342, 1.349))
	})

	got, err := client.ExchangeRate(context.Background(), "USD", "SGD", date.MustParse("2023-11-20"))
	if err != nil {
		t.Fatalf("ExchangeRate() error: %v", err)
	}
	if got != 1.349 {
		t.Errorf("ExchangeRate() = %v, want 1.349", got)
	}
	if !strings.Contains(requested, "USDSGD=X") {
		t.Errorf("requested path %q does not carry the forex symbol", requested)
	}
}

func TestIndustry(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"quoteSummary":{"result":[{"assetProfile":{"industry":"Banks - Regional"}}],"error":null}}`)
	})

	got, err := client.Industry(context.Background(), "D05.SI")
	if err != nil {
		t.Fatalf("Industry() error: %v", err)
	}
	if got != "Banks - Regional" {
		t.Errorf("Industry() = %q, want %q", got, "Banks - Regional")
	}
}

func TestIndustryMissing(t *testing.T) {
	// Funds have no assetProfile; the caller degrades to "Unknown".
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[{}],"error":null}}`)
	})

	if _, err := client.Industry(context.Background(), "CSPX.L"); err == nil {
		t.Error("Industry() should fail when the profile is missing")
	}
}

func TestChartError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	})

	if _, err := client.LatestClose(context.Background(), "NOPE", date.MustParse("2023-11-01"), date.MustParse("2023-11-20")); err == nil {
		t.Error("LatestClose() should surface the chart error")
	}
}
