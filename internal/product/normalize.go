package product

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RawRow is one row as read from any of the three product collections.
// Columns a collection does not have stay at their zero value.
type RawRow struct {
	ID           string
	CategoryID   int
	CategoryName *string
	Model        string
	Color        *string
	Capacity     *string
	PriceUSD     decimal.Decimal
	PriceARS     decimal.NullDecimal

	// used units
	Battery  *int
	Code     *string
	Cuotas3  decimal.NullDecimal
	Cuotas6  decimal.NullDecimal
	Cuotas9  decimal.NullDecimal
	Cuotas12 decimal.NullDecimal

	// other items
	Info *string
}

// Normalize maps a raw row of the given source kind into a Product.
// It never fails for a known kind.
func Normalize(row RawRow, kind Type) (Product, error) {
	p := Product{
		ID:         NewID(kind, row.ID),
		SourceID:   row.ID,
		Type:       kind,
		CategoryID: row.CategoryID,
		Model:      row.Model,
		Color:      deref(row.Color),
		PriceUSD:   row.PriceUSD,
		PriceARS:   row.PriceARS,
	}

	switch kind {
	case TypeNew:
		p.CategoryName = orDefault(row.CategoryName, DefaultCategoryName)
		p.New = &NewDetails{Capacity: row.Capacity}
	case TypeUsed:
		p.CategoryName = orDefault(row.CategoryName, DefaultCategoryName)
		p.Used = &UsedDetails{
			Capacity:       row.Capacity,
			BatteryPercent: row.Battery,
			Code:           row.Code,
			Installments: InstallmentPlan{
				3:  row.Cuotas3,
				6:  row.Cuotas6,
				9:  row.Cuotas9,
				12: row.Cuotas12,
			},
		}
	case TypeOther:
		p.CategoryName = orDefault(row.CategoryName, DefaultOtherCategoryName)
		// a zero ARS price on misc items means "not priced in pesos"
		if p.PriceARS.Valid && p.PriceARS.Decimal.IsZero() {
			p.PriceARS = decimal.NullDecimal{}
		}
		p.Other = &OtherDetails{Info: row.Info}
	default:
		return Product{}, fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}

	return p, nil
}

// NormalizeAll maps every row of one source, preserving order.
func NormalizeAll(rows []RawRow, kind Type) ([]Product, error) {
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		p, err := Normalize(row, kind)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
