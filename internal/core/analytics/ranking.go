package analytics

import "sort"

const rankingSize = 5

const lowMarginThreshold = 20.0

// Rank groups SaleWithCost records by product name into ProductAggregates and
// derives the ranked and bucketed views. The margin histogram classifies
// catalog products, not sale aggregates.
func Rank(sales []SaleWithCost, products []Product) ProductRankings {
	aggregates := aggregateByProduct(sales)

	return ProductRankings{
		TopByRevenue:    roundAggregates(topBy(aggregates, func(a ProductAggregate) float64 { return a.Revenue })),
		TopByProfit:     roundAggregates(topBy(aggregates, func(a ProductAggregate) float64 { return a.Profit })),
		LowMargin:       roundAggregates(lowMargin(aggregates)),
		MarginHistogram: marginHistogram(products),
	}
}

// roundAggregates rounds the monetary fields of a ranked list in place.
// Ordering and threshold decisions happen on the unrounded values; only the
// exposed lists carry 2-decimal amounts.
func roundAggregates(aggregates []ProductAggregate) []ProductAggregate {
	for i := range aggregates {
		aggregates[i].Revenue = Round2(aggregates[i].Revenue)
		aggregates[i].Cost = Round2(aggregates[i].Cost)
		aggregates[i].Profit = Round2(aggregates[i].Profit)
		aggregates[i].AverageMarginPercent = Round2(aggregates[i].AverageMarginPercent)
	}
	return aggregates
}

// aggregateByProduct rolls sales up per product name (case-sensitive exact
// match), preserving first-seen insertion order for stable tie-breaking.
func aggregateByProduct(sales []SaleWithCost) []ProductAggregate {
	index := make(map[string]int)
	aggregates := make([]ProductAggregate, 0)

	for _, s := range sales {
		i, ok := index[s.ProductName]
		if !ok {
			i = len(aggregates)
			index[s.ProductName] = i
			aggregates = append(aggregates, ProductAggregate{ProductName: s.ProductName})
		}

		agg := &aggregates[i]
		agg.Units += s.Quantity
		agg.Revenue += s.TotalPrice
		agg.Cost += s.TotalCost
		agg.Profit += s.Profit
		agg.TransactionCount++
		agg.HasActualCost = agg.HasActualCost || s.CostIsActual
	}

	for i := range aggregates {
		if aggregates[i].Revenue > 0 {
			aggregates[i].AverageMarginPercent = aggregates[i].Profit / aggregates[i].Revenue * 100
		}
	}
	return aggregates
}

func topBy(aggregates []ProductAggregate, key func(ProductAggregate) float64) []ProductAggregate {
	ranked := make([]ProductAggregate, len(aggregates))
	copy(ranked, aggregates)

	// Stable sort: ties keep insertion order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})

	if len(ranked) > rankingSize {
		ranked = ranked[:rankingSize]
	}
	return ranked
}

func lowMargin(aggregates []ProductAggregate) []ProductAggregate {
	filtered := make([]ProductAggregate, 0)
	for _, a := range aggregates {
		if a.Revenue > 0 && a.AverageMarginPercent < lowMarginThreshold {
			filtered = append(filtered, a)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].AverageMarginPercent < filtered[j].AverageMarginPercent
	})

	if len(filtered) > rankingSize {
		filtered = filtered[:rankingSize]
	}
	return filtered
}

// marginHistogram classifies every catalog product carrying both prices into
// one of five disjoint margin buckets. Products missing either price are not
// counted anywhere.
func marginHistogram(products []Product) MarginHistogram {
	var hist MarginHistogram
	for _, p := range products {
		if p.CostPrice == nil || p.SellingPrice == nil {
			continue
		}

		// A zero selling price cannot produce a finite margin: any positive
		// cost is a loss, otherwise the margin is zero.
		var margin float64
		if *p.SellingPrice == 0 {
			if *p.CostPrice > 0 {
				margin = -1
			}
		} else {
			margin = (*p.SellingPrice - *p.CostPrice) / *p.SellingPrice * 100
		}

		switch {
		case margin < 0:
			hist.Loss++
		case margin < 20:
			hist.Low++
		case margin < 30:
			hist.OK++
		case margin < 40:
			hist.Good++
		default:
			hist.Excellent++
		}
	}
	return hist
}
