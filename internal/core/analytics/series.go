package analytics

import "time"

// DatedValue is one record for binning: a timestamp plus the scalar to
// accumulate into its bucket.
type DatedValue struct {
	At    time.Time
	Value float64
}

// Bin assigns dated records into the period's buckets and sums their values,
// one slot per bucket label. Records falling outside every bucket are
// dropped.
func Bin(records []DatedValue, period Period, now time.Time) []float64 {
	sums := make([]float64, len(BucketLabels(period, now)))
	for _, r := range records {
		if i, ok := BucketIndex(period, r.At, now); ok {
			sums[i] += r.Value
		}
	}
	return sums
}

// BuildTimeSeries produces the purchases-vs-sales chart series on one shared
// x-axis: sales from transaction total prices, purchases from invoice total
// amounts. All series of one pass have equal length.
func BuildTimeSeries(transactions []Transaction, invoices []Invoice, period Period, now time.Time) TimeSeries {
	salesRecords := make([]DatedValue, len(transactions))
	for i, tx := range transactions {
		salesRecords[i] = DatedValue{At: tx.Timestamp, Value: tx.TotalPrice}
	}

	purchaseRecords := make([]DatedValue, len(invoices))
	for i, inv := range invoices {
		purchaseRecords[i] = DatedValue{At: inv.CreatedAt, Value: inv.TotalAmount}
	}

	return TimeSeries{
		Labels:    BucketLabels(period, now),
		Sales:     Bin(salesRecords, period, now),
		Purchases: Bin(purchaseRecords, period, now),
	}
}
