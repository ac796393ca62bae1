package folio

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jweitan/folio/date"
)

func testReport() *Report {
	return &Report{
		AsOf:              date.MustParse("2026-08-30"),
		ReportingCurrency: "SGD",
		Rows: []SummaryRow{
			{
				Ticker: "AAA", Company: "Alpha Corp", Industry: "Software", Currency: "USD",
				TotalShares: Q(6), AvgPurchasePrice: USD(4), LatestPrice: USD(6),
				TotalCost: USD(24), TotalCostReporting: SGD(32.40),
				TotalValue: USD(36), TotalValueReporting: SGD(48.60),
				ProfitReporting: SGD(16.20),
				ExchangeRate:    Q(1.35), AsOfDate: date.MustParse("2026-08-30"),
				WeightPercent:          Percent(100),
				EarliestInvestmentDate: date.MustParse("2024-01-02"),
				Dividends:              SGD(3),
			},
			{
				Ticker: "BBB", Company: "Beta Ltd", Industry: "Unknown", Currency: "SGD",
				TotalShares: Q(5), WeightPercent: UndefinedPercent(),
				AsOfDate: date.MustParse("2026-08-30"), Approximate: true,
			},
			{
				Ticker: GrandTotalTicker, GrandTotal: true,
				TotalCostReporting: SGD(32.40), TotalValueReporting: SGD(48.60),
				ProfitReporting: SGD(16.20), Dividends: SGD(3),
				AsOfDate: date.MustParse("2026-08-30"), WeightPercent: UndefinedPercent(),
			},
		},
	}
}

func TestFilename(t *testing.T) {
	report := testReport()
	if got := report.Filename(); got != "portfolio_summary_2026-08-30.csv" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf strings.Builder
	if err := testReport().WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("artifact is not valid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("len(records) = %d, want header + 3 rows", len(records))
	}

	header := records[0]
	if header[0] != "Ticker" || header[7] != "Total Cost (SGD)" || header[17] != "Approximate" {
		t.Errorf("header = %v", header)
	}

	aaa := records[1]
	want := []string{
		"AAA", "Alpha Corp", "Software", "USD",
		"6", "4.00",
		"24.00", "32.40",
		"6.00", "36.00", "48.60",
		"16.20",
		"1.35", "2026-08-30", "100.00",
		"2024-01-02", "3.00", "",
	}
	for i := range want {
		if aaa[i] != want[i] {
			t.Errorf("row AAA col %d (%s) = %q, want %q", i, header[i], aaa[i], want[i])
		}
	}

	bbb := records[2]
	if bbb[14] != "" {
		t.Errorf("undefined weight cell = %q, want empty", bbb[14])
	}
	if bbb[15] != "" {
		t.Errorf("zero earliest date cell = %q, want empty", bbb[15])
	}
	if bbb[17] != "yes" {
		t.Errorf("approximate cell = %q, want yes", bbb[17])
	}

	total := records[3]
	if total[0] != GrandTotalTicker || total[7] != "32.40" || total[10] != "48.60" || total[11] != "16.20" {
		t.Errorf("grand total row = %v", total)
	}
	for _, i := range []int{1, 2, 3, 4, 5, 6, 8, 9, 12, 14, 15, 17} {
		if total[i] != "" {
			t.Errorf("grand total col %d (%s) = %q, want empty", i, header[i], total[i])
		}
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	report := testReport()

	path, err := report.Save(dir)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if path != filepath.Join(dir, "portfolio_summary_2026-08-30.csv") {
		t.Errorf("Save() path = %q", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "Ticker,") {
		t.Errorf("artifact does not start with the header: %q", content[:20])
	}
}
