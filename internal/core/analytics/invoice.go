package analytics

import "time"

// InvoiceAnalytics summarizes supplier invoices inside the period window.
// The success rate is computed over the filtered set only, never over all
// invoices ever recorded.
func InvoiceAnalytics(invoices []Invoice, period Period, now time.Time) InvoiceStats {
	window := WindowFor(period, now)

	var stats InvoiceStats
	var totalValue float64
	for _, inv := range invoices {
		if !window.Contains(inv.CreatedAt) {
			continue
		}
		stats.TotalInvoices++
		totalValue += inv.TotalAmount

		switch inv.Status {
		case InvoiceCompleted:
			stats.ProcessedInvoices++
		case InvoicePending:
			stats.PendingInvoices++
		}
	}

	if stats.TotalInvoices > 0 {
		stats.SuccessRatePercent = Round2(float64(stats.ProcessedInvoices) / float64(stats.TotalInvoices) * 100)
	}
	stats.TotalValue = Round2(totalValue)
	return stats
}
