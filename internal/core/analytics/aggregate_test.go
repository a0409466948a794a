package analytics

import (
	"reflect"
	"testing"
	"time"
)

func inWindow(hour int) time.Time {
	return time.Date(2026, time.August, 19, hour, 0, 0, 0, time.UTC)
}

func TestAggregateConcreteScenario(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "Widget", Quantity: 2, TotalPrice: 100, Timestamp: inWindow(10)},
	}
	products := []Product{
		{ID: "P1", Name: "Widget", CostPrice: floatPtr(30), SellingPrice: floatPtr(50)},
	}

	stats := Aggregate(transactions, products, nil, PeriodToday, testNow)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"Revenue", stats.Revenue, 100},
		{"TotalCost", stats.TotalCost, 60},
		{"GrossProfit", stats.GrossProfit, 40},
		{"OperatingExpenses", stats.OperatingExpenses, 15},
		{"NetProfit", stats.NetProfit, 25},
		{"GrossMarginPercent", stats.GrossMarginPercent, 40},
		{"NetMarginPercent", stats.NetMarginPercent, 25},
		{"AverageOrderValue", stats.AverageOrderValue, 100},
		{"TotalInvoiced", stats.TotalInvoiced, 0},
		{"ROIPercent", stats.ROIPercent, 0},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if stats.Units != 2 {
		t.Errorf("Units = %d, want 2", stats.Units)
	}
	if stats.TransactionCount != 1 {
		t.Errorf("TransactionCount = %d, want 1", stats.TransactionCount)
	}
}

func TestGrossProfitIdentity(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "A", Quantity: 3, TotalPrice: 149.97, Timestamp: inWindow(9)},
		{ProductID: "P2", ProductName: "B", Quantity: 1, TotalPrice: 19.5, Timestamp: inWindow(11)},
		{ProductID: "P3", ProductName: "C", Quantity: 4, TotalPrice: 88, Timestamp: inWindow(16)},
	}
	products := []Product{
		{ID: "P1", Name: "A", CostPrice: floatPtr(32.5)},
		{ID: "P2", Name: "B", SellingPrice: floatPtr(20)},
		{ID: "P3", Name: "C"},
	}

	stats := Aggregate(transactions, products, nil, PeriodToday, testNow)
	if got := Round2(stats.Revenue - stats.TotalCost); got != stats.GrossProfit {
		t.Errorf("grossProfit = %v, revenue - totalCost = %v", stats.GrossProfit, got)
	}
}

func TestROIZeroWithoutInvoices(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 500, Timestamp: inWindow(12)},
	}

	// No invoices at all, and an invoice outside the window: both must leave
	// ROI at exactly zero, whatever the revenue.
	stats := Aggregate(transactions, nil, nil, PeriodToday, testNow)
	if stats.ROIPercent != 0 {
		t.Errorf("ROIPercent = %v, want 0 with no invoiced amount", stats.ROIPercent)
	}

	outside := []Invoice{
		{ID: "I1", TotalAmount: 250, Status: InvoiceCompleted, CreatedAt: testNow.AddDate(0, 0, -2)},
	}
	stats = Aggregate(transactions, nil, outside, PeriodToday, testNow)
	if stats.TotalInvoiced != 0 || stats.ROIPercent != 0 {
		t.Errorf("out-of-window invoice leaked: invoiced=%v roi=%v", stats.TotalInvoiced, stats.ROIPercent)
	}
}

func TestROIAgainstInvoicedSpend(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 300, Timestamp: inWindow(10)},
	}
	invoices := []Invoice{
		{ID: "I1", TotalAmount: 200, Status: InvoiceCompleted, CreatedAt: inWindow(8)},
	}

	stats := Aggregate(transactions, nil, invoices, PeriodToday, testNow)
	if stats.TotalInvoiced != 200 {
		t.Errorf("TotalInvoiced = %v, want 200", stats.TotalInvoiced)
	}
	if stats.ROIPercent != 50 {
		t.Errorf("ROIPercent = %v, want 50", stats.ROIPercent)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "A", Quantity: 2, TotalPrice: 100, Timestamp: inWindow(10)},
		{ProductID: "P2", ProductName: "B", Quantity: 5, TotalPrice: 75.25, Timestamp: inWindow(13)},
	}
	products := []Product{
		{ID: "P1", Name: "A", CostPrice: floatPtr(30), SellingPrice: floatPtr(50)},
		{ID: "P2", Name: "B", SellingPrice: floatPtr(16)},
	}
	invoices := []Invoice{
		{ID: "I1", TotalAmount: 120, Status: InvoicePending, CreatedAt: inWindow(9)},
	}

	first := Aggregate(transactions, products, invoices, PeriodToday, testNow)
	second := Aggregate(transactions, products, invoices, PeriodToday, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Error("re-running Aggregate on identical inputs produced different output")
	}
}

func TestAggregateExcludesTransactionsOutsideWindow(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 100, Timestamp: inWindow(10)},
		{ProductID: "P1", ProductName: "A", Quantity: 1, TotalPrice: 999, Timestamp: testNow.AddDate(0, 0, -3)},
	}

	stats := Aggregate(transactions, nil, nil, PeriodToday, testNow)
	if stats.Revenue != 100 {
		t.Errorf("Revenue = %v, want 100 (out-of-window sale must be excluded)", stats.Revenue)
	}
	if stats.TransactionCount != 1 {
		t.Errorf("TransactionCount = %d, want 1", stats.TransactionCount)
	}
}

func TestAggregateEmptyInputs(t *testing.T) {
	stats := Aggregate(nil, nil, nil, PeriodWeek, testNow)

	if stats.Revenue != 0 || stats.GrossProfit != 0 || stats.NetProfit != 0 ||
		stats.AverageOrderValue != 0 || stats.ROIPercent != 0 {
		t.Errorf("empty inputs produced non-zero stats: %+v", stats)
	}
	if len(stats.Rankings.TopByRevenue) != 0 || len(stats.Rankings.LowMargin) != 0 {
		t.Error("empty inputs produced non-empty rankings")
	}
}

func TestEstimatedCostPropagatesToAggregate(t *testing.T) {
	transactions := []Transaction{
		{ProductID: "P1", ProductName: "NoCatalogCost", Quantity: 1, TotalPrice: 50, Timestamp: inWindow(10)},
	}
	products := []Product{
		{ID: "P1", Name: "NoCatalogCost", SellingPrice: floatPtr(50)},
	}

	stats := Aggregate(transactions, products, nil, PeriodToday, testNow)
	if stats.TotalCost != 30 {
		t.Errorf("TotalCost = %v, want 30 (0.6 * 50)", stats.TotalCost)
	}
	if len(stats.Rankings.TopByRevenue) != 1 {
		t.Fatalf("expected one ranked product, got %d", len(stats.Rankings.TopByRevenue))
	}
	if stats.Rankings.TopByRevenue[0].HasActualCost {
		t.Error("HasActualCost = true for an estimated cost")
	}
}
