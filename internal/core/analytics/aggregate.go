package analytics

import (
	"math"
	"time"
)

// operatingExpenseRate models overhead as a fixed share of revenue. Fixed
// business constant, same as the cost fallback factor.
const operatingExpenseRate = 0.15

// Round2 rounds a monetary value to 2 decimals. Applied only at the point of
// exposure; intermediate accumulation stays unrounded so rounding error does
// not compound.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// EnrichSales filters transactions to the period window and resolves a cost
// for each survivor. The product lookup is by catalog ID.
func EnrichSales(transactions []Transaction, products []Product, period Period, now time.Time) []SaleWithCost {
	window := WindowFor(period, now)

	byID := make(map[string]*Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	sales := make([]SaleWithCost, 0, len(transactions))
	for _, tx := range transactions {
		if !window.Contains(tx.Timestamp) {
			continue
		}
		sales = append(sales, EnrichSale(tx, byID[tx.ProductID]))
	}
	return sales
}

// Aggregate combines transactions, products and invoices over a period into
// the scalar KPI set plus ranked product views. Pure function of its inputs:
// identical inputs yield identical output.
func Aggregate(transactions []Transaction, products []Product, invoices []Invoice, period Period, now time.Time) AggregatedStats {
	window := WindowFor(period, now)
	sales := EnrichSales(transactions, products, period, now)

	var revenue, totalCost float64
	var units int
	for _, s := range sales {
		revenue += s.TotalPrice
		totalCost += s.TotalCost
		units += s.Quantity
	}

	grossProfit := revenue - totalCost
	operatingExpenses := revenue * operatingExpenseRate
	netProfit := grossProfit - operatingExpenses

	var grossMargin, netMargin float64
	if revenue > 0 {
		grossMargin = grossProfit / revenue * 100
		netMargin = netProfit / revenue * 100
	}

	var averageOrderValue float64
	if len(sales) > 0 {
		averageOrderValue = revenue / float64(len(sales))
	}

	// Invoices are an independently filtered set: money paid to suppliers,
	// on its own timeline.
	var totalInvoiced float64
	for _, inv := range invoices {
		if window.Contains(inv.CreatedAt) {
			totalInvoiced += inv.TotalAmount
		}
	}

	var roi float64
	if totalInvoiced > 0 {
		roi = (revenue - totalInvoiced) / totalInvoiced * 100
	}

	return AggregatedStats{
		Revenue:            Round2(revenue),
		TotalCost:          Round2(totalCost),
		GrossProfit:        Round2(grossProfit),
		NetProfit:          Round2(netProfit),
		OperatingExpenses:  Round2(operatingExpenses),
		Units:              units,
		TransactionCount:   len(sales),
		AverageOrderValue:  Round2(averageOrderValue),
		GrossMarginPercent: Round2(grossMargin),
		NetMarginPercent:   Round2(netMargin),
		TotalInvoiced:      Round2(totalInvoiced),
		ROIPercent:         Round2(roi),
		Rankings:           Rank(sales, products),
	}
}

// ZeroStats is the failure shape for an aborted aggregation pass: fully
// zeroed scalars with empty ranked lists, so a fetch error never leaks a mix
// of fresh and stale numbers.
func ZeroStats() AggregatedStats {
	return AggregatedStats{
		Rankings: ProductRankings{
			TopByRevenue: []ProductAggregate{},
			TopByProfit:  []ProductAggregate{},
			LowMargin:    []ProductAggregate{},
		},
	}
}
