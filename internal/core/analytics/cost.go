package analytics

// estimatedCostFactor is the assumed cost share of the selling price when the
// catalog carries no cost: a nominal 40% margin. Fixed business constant.
const estimatedCostFactor = 0.6

// ResolveUnitCost determines the per-unit cost for a sale under incomplete
// product data. Priority order:
//  1. catalog cost price (actual)
//  2. 60% of the catalog selling price (estimated)
//  3. 60% of the transaction's own effective unit price (estimated,
//     last resort); a zero quantity yields cost 0 so the sale cannot feed
//     ratio-based metrics.
//
// The returned flag reports whether the cost came from the catalog.
func ResolveUnitCost(tx Transaction, product *Product) (float64, bool) {
	if product != nil {
		if product.CostPrice != nil {
			return *product.CostPrice, true
		}
		if product.SellingPrice != nil {
			return estimatedCostFactor * *product.SellingPrice, false
		}
	}
	if tx.Quantity == 0 {
		return 0, false
	}
	return estimatedCostFactor * (tx.TotalPrice / float64(tx.Quantity)), false
}

// EnrichSale builds the ephemeral SaleWithCost record for one transaction.
func EnrichSale(tx Transaction, product *Product) SaleWithCost {
	unitCost, actual := ResolveUnitCost(tx, product)
	totalCost := unitCost * float64(tx.Quantity)
	profit := tx.TotalPrice - totalCost

	margin := 0.0
	if tx.TotalPrice > 0 && tx.Quantity > 0 {
		margin = profit / tx.TotalPrice * 100
	}

	return SaleWithCost{
		Transaction:      tx,
		ResolvedUnitCost: unitCost,
		TotalCost:        totalCost,
		Profit:           profit,
		MarginPercent:    margin,
		CostIsActual:     actual,
	}
}
