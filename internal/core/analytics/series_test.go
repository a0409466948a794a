package analytics

import (
	"math"
	"testing"
	"time"
)

func TestBinSumsMatchAggregateRevenue(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 19.99, Timestamp: time.Date(2026, time.August, 17, 10, 0, 0, 0, time.UTC)},
		{ProductID: "P2", ProductName: "B", Quantity: 2, TotalPrice: 45.5, Timestamp: time.Date(2026, time.August, 19, 15, 30, 0, 0, time.UTC)},
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 120.01, Timestamp: time.Date(2026, time.August, 22, 23, 59, 0, 0, time.UTC)},
	}

	for _, period := range []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll} {
		series := BuildTimeSeries(transactions, nil, period, testNow)
		stats := Aggregate(transactions, nil, nil, period, testNow)

		var sum float64
		for _, v := range series.Sales {
			sum += v
		}

		tolerance := 0.01 * float64(len(series.Labels))
		if math.Abs(sum-stats.Revenue) > tolerance {
			t.Errorf("%s: series sum %v != revenue %v", period, sum, stats.Revenue)
		}
	}
}

func TestBinSumsMatchRevenueAcrossOffsets(t *testing.T) {
	// Records with foreign UTC offsets still bin by instant, so every
	// in-window sale reaches a bucket and the series keeps summing to revenue.
	transactions := []Transaction{
		// 2026-09-01T01:00+05:00 = Aug 31 20:00 UTC, inside the month window.
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 100, Timestamp: time.Date(2026, time.September, 1, 1, 0, 0, 0, time.FixedZone("", 5*3600))},
		{ProductID: "P2", ProductName: "B", Quantity: 1, TotalPrice: 50, Timestamp: time.Date(2026, time.August, 19, 12, 30, 0, 0, time.FixedZone("WIB", 7*3600))},
	}

	for _, period := range []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodYear} {
		series := BuildTimeSeries(transactions, nil, period, testNow)
		stats := Aggregate(transactions, nil, nil, period, testNow)

		var sum float64
		for _, v := range series.Sales {
			sum += v
		}

		tolerance := 0.01 * float64(len(series.Labels))
		if math.Abs(sum-stats.Revenue) > tolerance {
			t.Errorf("%s: series sum %v != revenue %v", period, sum, stats.Revenue)
		}
	}

	// The offset sale lands on Aug 31, the last day bucket of the month.
	month := BuildTimeSeries(transactions, nil, PeriodMonth, testNow)
	if month.Sales[30] != 100 {
		t.Errorf("sales[Aug 31] = %v, want 100", month.Sales[30])
	}
	// 12:30 WIB is 05:30 UTC.
	today := BuildTimeSeries(transactions, nil, PeriodToday, testNow)
	if today.Sales[5] != 50 {
		t.Errorf("sales[05:00] = %v, want 50", today.Sales[5])
	}
}

func TestBinAssignsHourlyBuckets(t *testing.T) {
	records := []DatedValue{
		{At: time.Date(2026, time.August, 19, 0, 5, 0, 0, time.UTC), Value: 10},
		{At: time.Date(2026, time.August, 19, 14, 0, 0, 0, time.UTC), Value: 20},
		{At: time.Date(2026, time.August, 19, 23, 59, 59, 0, time.UTC), Value: 30},
	}

	sums := Bin(records, PeriodToday, testNow)
	if len(sums) != 24 {
		t.Fatalf("got %d buckets, want 24", len(sums))
	}
	if sums[0] != 10 || sums[14] != 20 || sums[23] != 30 {
		t.Errorf("bucket sums = [0]=%v [14]=%v [23]=%v", sums[0], sums[14], sums[23])
	}
}

func TestBinDropsRecordsOutsideBuckets(t *testing.T) {
	records := []DatedValue{
		{At: testNow.AddDate(0, 0, -1), Value: 99}, // yesterday: outside today's buckets
		{At: testNow, Value: 1},
	}

	sums := Bin(records, PeriodToday, testNow)
	var total float64
	for _, v := range sums {
		total += v
	}
	if total != 1 {
		t.Errorf("total binned = %v, want 1 (out-of-window record must be dropped)", total)
	}
}

func TestTimeSeriesSharedAxis(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 100, Timestamp: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)},
	}
	invoices := []Invoice{
		{ID: "I1", TotalAmount: 60, Status: InvoiceCompleted, CreatedAt: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)},
	}

	series := BuildTimeSeries(transactions, invoices, PeriodYear, testNow)
	if len(series.Labels) != 12 || len(series.Sales) != 12 || len(series.Purchases) != 12 {
		t.Fatalf("series lengths = labels %d, sales %d, purchases %d; want 12 each",
			len(series.Labels), len(series.Sales), len(series.Purchases))
	}

	// Both March records land on the same x-axis position.
	if series.Sales[2] != 100 {
		t.Errorf("sales[Mar] = %v, want 100", series.Sales[2])
	}
	if series.Purchases[2] != 60 {
		t.Errorf("purchases[Mar] = %v, want 60", series.Purchases[2])
	}
}

func TestAllPeriodChartsAgainstYearScheme(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 100, Timestamp: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 200, Timestamp: time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)},
	}

	series := BuildTimeSeries(transactions, nil, PeriodAll, testNow)
	if len(series.Labels) != 12 {
		t.Fatalf("all-period series length = %d, want 12", len(series.Labels))
	}
	// The current-year sale charts; the 2020 sale is outside the chart
	// buckets (but still counts toward all-period aggregates).
	if series.Sales[0] != 100 {
		t.Errorf("sales[Jan] = %v, want 100", series.Sales[0])
	}

	stats := Aggregate(transactions, nil, nil, PeriodAll, testNow)
	if stats.Revenue != 300 {
		t.Errorf("all-period revenue = %v, want 300", stats.Revenue)
	}
}

func TestToLineChartShape(t *testing.T) {
	series := TimeSeries{
		Labels:    []string{"Mon", "Tue"},
		Sales:     []float64{1, 2},
		Purchases: []float64{3, 4},
	}

	chart := series.ToLineChart()
	if chart.Type != "line" || len(chart.Data) != 2 {
		t.Fatalf("chart = %+v", chart)
	}
	if chart.Data[0].Name != "Sales" || chart.Data[1].Name != "Purchases" {
		t.Errorf("series names = %q, %q", chart.Data[0].Name, chart.Data[1].Name)
	}
}
