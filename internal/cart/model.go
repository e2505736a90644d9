package cart

import (
	"greenplace-be/internal/product"

	"github.com/shopspring/decimal"
)

// MaxQuantity caps a single line. Requests above it are clamped.
const MaxQuantity = 99

// Line is a product snapshot and its quantity. Used units always have quantity 1.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

type Totals struct {
	Items int             `json:"totalItems"`
	USD   decimal.Decimal `json:"totalUsd"`
	ARS   decimal.Decimal `json:"totalArs"`
}

// SummaryLine is a line as shown in the cart, with prices derived from the
// exchange rate.
type SummaryLine struct {
	Line
	UnitPriceARS decimal.Decimal `json:"unitPriceArs"`
	SubtotalUSD  decimal.Decimal `json:"subtotalUsd"`
}

type Summary struct {
	Lines []SummaryLine `json:"lines"`
	Totals
}

// Handoff is the pre-filled order message and the link that opens it.
type Handoff struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}
