package analytics

import "time"

// Period selects the reporting window for every aggregation pass.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod validates a raw period selector.
func ParsePeriod(raw string) (Period, bool) {
	switch Period(raw) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return Period(raw), true
	}
	return "", false
}

// InvoiceStatus is the canonical invoice lifecycle state. Wire aliases
// ("success", "error") are resolved at the ingestion boundary.
type InvoiceStatus string

const (
	InvoicePending    InvoiceStatus = "pending"
	InvoiceProcessing InvoiceStatus = "processing"
	InvoiceCompleted  InvoiceStatus = "completed"
	InvoiceFailed     InvoiceStatus = "failed"
)

// Transaction is a completed sale. Immutable once recorded; the engine
// consumes it read-only.
type Transaction struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`
	Timestamp   time.Time `json:"timestamp"`
}

// Invoice is a supplier purchase record.
type Invoice struct {
	ID          string        `json:"id"`
	VendorName  string        `json:"vendor_name"`
	TotalAmount float64       `json:"total_amount"`
	Status      InvoiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	FinalizedAt *time.Time    `json:"finalized_at,omitempty"`
}

// Product is a catalog entry. CostPrice and SellingPrice are optional;
// CostPrice, when present, is the authoritative cost source.
type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category,omitempty"`
	CostPrice      *float64 `json:"cost_price,omitempty"`
	SellingPrice   *float64 `json:"selling_price,omitempty"`
	QuantityOnHand int      `json:"quantity_on_hand"`
}

// SaleWithCost is a Transaction enriched with a resolved cost. Ephemeral:
// recomputed on every aggregation pass, never persisted.
type SaleWithCost struct {
	Transaction
	ResolvedUnitCost float64 `json:"resolved_unit_cost"`
	TotalCost        float64 `json:"total_cost"`
	Profit           float64 `json:"profit"`
	MarginPercent    float64 `json:"margin_percent"`
	CostIsActual     bool    `json:"cost_is_actual"`
}

// ProductAggregate is the per-product rollup built from SaleWithCost records.
type ProductAggregate struct {
	ProductName          string  `json:"product_name"`
	Units                int     `json:"units"`
	Revenue              float64 `json:"revenue"`
	Cost                 float64 `json:"cost"`
	Profit               float64 `json:"profit"`
	TransactionCount     int     `json:"transaction_count"`
	AverageMarginPercent float64 `json:"average_margin_percent"`
	HasActualCost        bool    `json:"has_actual_cost"`
}

// MarginHistogram buckets catalog products by list-price margin.
type MarginHistogram struct {
	Loss      int `json:"loss"`      // margin < 0
	Low       int `json:"low"`       // 0 <= margin < 20
	OK        int `json:"ok"`        // 20 <= margin < 30
	Good      int `json:"good"`      // 30 <= margin < 40
	Excellent int `json:"excellent"` // margin >= 40
}

// ProductRankings holds the ranked and bucketed per-product views.
type ProductRankings struct {
	TopByRevenue    []ProductAggregate `json:"top_by_revenue"`
	TopByProfit     []ProductAggregate `json:"top_by_profit"`
	LowMargin       []ProductAggregate `json:"low_margin"`
	MarginHistogram MarginHistogram    `json:"margin_histogram"`
}

// AggregatedStats is the engine's scalar KPI output for one period.
// Monetary fields are rounded to 2 decimals at the point of exposure.
type AggregatedStats struct {
	Revenue            float64 `json:"revenue"`
	TotalCost          float64 `json:"total_cost"`
	GrossProfit        float64 `json:"gross_profit"`
	NetProfit          float64 `json:"net_profit"`
	OperatingExpenses  float64 `json:"operating_expenses"`
	Units              int     `json:"units"`
	TransactionCount   int     `json:"transaction_count"`
	AverageOrderValue  float64 `json:"average_order_value"`
	GrossMarginPercent float64 `json:"gross_margin_percent"`
	NetMarginPercent   float64 `json:"net_margin_percent"`
	TotalInvoiced      float64 `json:"total_invoiced"`
	ROIPercent         float64 `json:"roi_percent"`

	Rankings ProductRankings `json:"rankings"`
}

// InvoiceStats summarizes period-filtered supplier invoices.
type InvoiceStats struct {
	TotalInvoices      int     `json:"total_invoices"`
	ProcessedInvoices  int     `json:"processed_invoices"`
	PendingInvoices    int     `json:"pending_invoices"`
	SuccessRatePercent float64 `json:"success_rate_percent"`
	TotalValue         float64 `json:"total_value"`
}

// TimeSeries carries the parallel purchases-vs-sales series on one shared
// label axis. Sales and Purchases always have the same length as Labels.
type TimeSeries struct {
	Labels    []string  `json:"labels"`
	Sales     []float64 `json:"sales"`
	Purchases []float64 `json:"purchases"`
}
