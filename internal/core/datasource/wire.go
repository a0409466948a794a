package datasource

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stokmate/stokmate-analytics-be/internal/core/analytics"
)

// The upstream source emits loosely-typed JSON with inconsistent field name
// aliases (snake_case and camelCase side by side) and occasionally missing or
// non-numeric values. Everything in this file is the single ingestion
// boundary that maps those shapes onto the canonical schema; past it, the
// engine is strictly typed.

// flexFloat tolerates numbers, numeric strings, null and garbage. Anything
// that does not parse to a finite number becomes 0 — a single malformed
// record must not abort the whole pass.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}

	raw := string(data)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// flexTime accepts the timestamp formats seen in the wild: RFC3339 with and
// without zone, bare dates, and unix epochs in seconds or milliseconds.
type flexTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = flexTime(time.Time{})
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			for _, layout := range timeLayouts {
				if parsed, err := time.Parse(layout, s); err == nil {
					*t = flexTime(parsed)
					return nil
				}
			}
		}
		*t = flexTime(time.Time{})
		return nil
	}

	epoch, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		*t = flexTime(time.Time{})
		return nil
	}
	// Millisecond epochs are 13 digits for current dates.
	if epoch > 1e12 {
		*t = flexTime(time.UnixMilli(epoch).UTC())
	} else {
		*t = flexTime(time.Unix(epoch, 0).UTC())
	}
	return nil
}

func (t flexTime) Time() time.Time { return time.Time(t) }

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstFloat(values ...flexFloat) float64 {
	for _, v := range values {
		if v != 0 {
			return float64(v)
		}
	}
	return 0
}

func firstTime(values ...flexTime) time.Time {
	for _, v := range values {
		if !v.Time().IsZero() {
			return v.Time()
		}
	}
	return time.Time{}
}

func firstFloatPtr(values ...*flexFloat) *float64 {
	for _, v := range values {
		if v != nil {
			f := float64(*v)
			return &f
		}
	}
	return nil
}

type wireTransaction struct {
	ProductIDSnake   string `json:"product_id"`
	ProductIDCamel   string `json:"productId"`
	ProductNameSnake string `json:"product_name"`
	ProductNameCamel string `json:"productName"`
	NameAlias        string `json:"name"`

	QuantitySnake flexFloat `json:"quantity"`
	QuantityAlias flexFloat `json:"qty"`

	UnitPriceSnake flexFloat `json:"unit_price"`
	UnitPriceCamel flexFloat `json:"unitPrice"`
	PriceAlias     flexFloat `json:"price"`

	TotalPriceSnake flexFloat `json:"total_price"`
	TotalPriceCamel flexFloat `json:"totalPrice"`
	TotalAlias      flexFloat `json:"total"`

	Timestamp      flexTime `json:"timestamp"`
	CreatedAtSnake flexTime `json:"created_at"`
	CreatedAtCamel flexTime `json:"createdAt"`
	DateAlias      flexTime `json:"date"`
}

func (w wireTransaction) toCanonical() analytics.Transaction {
	quantity := firstFloat(w.QuantitySnake, w.QuantityAlias)
	if quantity < 0 {
		quantity = 0
	}

	// Currency inputs are non-negative; clamp alongside quantity.
	unitPrice := firstFloat(w.UnitPriceSnake, w.UnitPriceCamel, w.PriceAlias)
	if unitPrice < 0 {
		unitPrice = 0
	}
	totalPrice := firstFloat(w.TotalPriceSnake, w.TotalPriceCamel, w.TotalAlias)
	if totalPrice < 0 {
		totalPrice = 0
	}
	if totalPrice == 0 {
		totalPrice = unitPrice * quantity
	}

	return analytics.Transaction{
		ProductID:   firstString(w.ProductIDSnake, w.ProductIDCamel),
		ProductName: firstString(w.ProductNameSnake, w.ProductNameCamel, w.NameAlias),
		Quantity:    int(quantity),
		UnitPrice:   unitPrice,
		TotalPrice:  totalPrice,
		Timestamp:   firstTime(w.Timestamp, w.CreatedAtSnake, w.CreatedAtCamel, w.DateAlias),
	}
}

type wireInvoice struct {
	ID           string `json:"id"`
	InvoiceIDAlt string `json:"invoice_id"`

	VendorSnake string `json:"vendor_name"`
	VendorCamel string `json:"vendorName"`
	VendorAlias string `json:"vendor"`

	TotalAmountSnake flexFloat `json:"total_amount"`
	TotalAmountCamel flexFloat `json:"totalAmount"`
	AmountAlias      flexFloat `json:"amount"`

	Status string `json:"status"`

	CreatedAtSnake flexTime `json:"created_at"`
	CreatedAtCamel flexTime `json:"createdAt"`

	FinalizedAtSnake *flexTime `json:"finalized_at"`
	FinalizedAtCamel *flexTime `json:"finalizedAt"`
}

// canonicalStatus folds the wire status aliases onto the canonical set.
// Unknown statuses default to pending rather than inventing a new state.
func canonicalStatus(raw string) analytics.InvoiceStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed", "success":
		return analytics.InvoiceCompleted
	case "failed", "error":
		return analytics.InvoiceFailed
	case "processing":
		return analytics.InvoiceProcessing
	default:
		return analytics.InvoicePending
	}
}

func (w wireInvoice) toCanonical() analytics.Invoice {
	inv := analytics.Invoice{
		ID:          firstString(w.ID, w.InvoiceIDAlt),
		VendorName:  firstString(w.VendorSnake, w.VendorCamel, w.VendorAlias),
		TotalAmount: firstFloat(w.TotalAmountSnake, w.TotalAmountCamel, w.AmountAlias),
		Status:      canonicalStatus(w.Status),
		CreatedAt:   firstTime(w.CreatedAtSnake, w.CreatedAtCamel),
	}
	if inv.TotalAmount < 0 {
		inv.TotalAmount = 0
	}

	for _, ft := range []*flexTime{w.FinalizedAtSnake, w.FinalizedAtCamel} {
		if ft != nil && !ft.Time().IsZero() {
			finalized := ft.Time()
			inv.FinalizedAt = &finalized
			break
		}
	}
	return inv
}

type wireProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`

	CostPriceSnake *flexFloat `json:"cost_price"`
	CostPriceCamel *flexFloat `json:"costPrice"`

	SellingPriceSnake *flexFloat `json:"selling_price"`
	SellingPriceCamel *flexFloat `json:"sellingPrice"`

	QuantitySnake flexFloat `json:"quantity_on_hand"`
	QuantityCamel flexFloat `json:"quantityOnHand"`
	StockAlias    flexFloat `json:"stock"`
}

func (w wireProduct) toCanonical() analytics.Product {
	return analytics.Product{
		ID:             w.ID,
		Name:           w.Name,
		Category:       w.Category,
		CostPrice:      firstFloatPtr(w.CostPriceSnake, w.CostPriceCamel),
		SellingPrice:   firstFloatPtr(w.SellingPriceSnake, w.SellingPriceCamel),
		QuantityOnHand: int(firstFloat(w.QuantitySnake, w.QuantityCamel, w.StockAlias)),
	}
}
