package product

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Type discriminates the three inventories the catalog is merged from.
type Type string

const (
	TypeNew   Type = "new"
	TypeUsed  Type = "used"
	TypeOther Type = "other"
)

// Types lists every product type in catalog merge order.
var Types = []Type{TypeNew, TypeUsed, TypeOther}

func ParseType(s string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeNew:
		return TypeNew, true
	case TypeUsed:
		return TypeUsed, true
	case TypeOther:
		return TypeOther, true
	default:
		return "", false
	}
}

const (
	ConditionNew  = 1
	ConditionUsed = 2
)

const (
	DefaultCategoryName      = "iPhone"
	DefaultOtherCategoryName = "Otros"
)

// InstallmentCounts are the keys every used product's plan carries.
var InstallmentCounts = []int{3, 6, 9, 12}

// ID is unique across the merged catalog: "<type>:<source id>".
type ID string

func NewID(t Type, sourceID string) ID {
	return ID(string(t) + ":" + sourceID)
}

// ParseID validates a composite id coming from a client.
func ParseID(s string) (ID, error) {
	prefix, sourceID, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || strings.TrimSpace(sourceID) == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	t, ok := ParseType(prefix)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return NewID(t, strings.TrimSpace(sourceID)), nil
}

func (id ID) Type() Type {
	prefix, _, _ := strings.Cut(string(id), ":")
	return Type(prefix)
}

func (id ID) SourceID() string {
	_, sourceID, _ := strings.Cut(string(id), ":")
	return sourceID
}

func (id ID) String() string {
	return string(id)
}

// InstallmentPlan maps an installment count to the per-installment amount.
type InstallmentPlan map[int]decimal.NullDecimal

type NewDetails struct {
	Capacity *string `json:"capacity,omitempty"`
}

type UsedDetails struct {
	Capacity       *string         `json:"capacity,omitempty"`
	BatteryPercent *int            `json:"batteryPercent,omitempty"`
	Code           *string         `json:"code,omitempty"`
	Installments   InstallmentPlan `json:"installments"`
}

type OtherDetails struct {
	Info *string `json:"info,omitempty"`
}

// Product is the unified catalog entry. Exactly one of New, Used or Other is
// set and it always matches Type.
type Product struct {
	ID           ID                  `json:"id"`
	SourceID     string              `json:"sourceId"`
	Type         Type                `json:"type"`
	CategoryID   int                 `json:"categoryId"`
	CategoryName string              `json:"categoryName"`
	Model        string              `json:"model"`
	Color        string              `json:"color"`
	PriceUSD     decimal.Decimal     `json:"priceUsd"`
	PriceARS     decimal.NullDecimal `json:"priceArs"`

	New   *NewDetails   `json:"new,omitempty"`
	Used  *UsedDetails  `json:"used,omitempty"`
	Other *OtherDetails `json:"other,omitempty"`
}

// ConditionID reports the condition of new and used units. Other items carry none.
func (p Product) ConditionID() (int, bool) {
	switch p.Type {
	case TypeNew:
		return ConditionNew, true
	case TypeUsed:
		return ConditionUsed, true
	case TypeOther:
		return 0, false
	default:
		return 0, false
	}
}

func (p Product) Capacity() string {
	switch p.Type {
	case TypeNew:
		if p.New != nil && p.New.Capacity != nil {
			return *p.New.Capacity
		}
	case TypeUsed:
		if p.Used != nil && p.Used.Capacity != nil {
			return *p.Used.Capacity
		}
	case TypeOther:
	}
	return ""
}

// Info returns the free-text description of other items.
func (p Product) Info() (string, bool) {
	if p.Type != TypeOther || p.Other == nil || p.Other.Info == nil {
		return "", false
	}
	return *p.Other.Info, true
}

// Validate checks the variant invariants. Persisted carts are checked with it
// before being trusted.
func (p Product) Validate() error {
	if _, ok := ParseType(string(p.Type)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, p.Type)
	}
	if p.SourceID == "" || p.ID != NewID(p.Type, p.SourceID) {
		return fmt.Errorf("%w: id %q does not match %s:%s", ErrInvalidProduct, p.ID, p.Type, p.SourceID)
	}
	if strings.TrimSpace(p.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidProduct)
	}
	if p.PriceUSD.IsNegative() {
		return fmt.Errorf("%w: negative usd price", ErrInvalidProduct)
	}

	switch p.Type {
	case TypeNew:
		if p.New == nil || p.Used != nil || p.Other != nil {
			return fmt.Errorf("%w: new product carries foreign fields", ErrInvalidProduct)
		}
	case TypeUsed:
		if p.Used == nil || p.New != nil || p.Other != nil {
			return fmt.Errorf("%w: used product carries foreign fields", ErrInvalidProduct)
		}
		if b := p.Used.BatteryPercent; b != nil && (*b < 0 || *b > 100) {
			return fmt.Errorf("%w: battery %d out of range", ErrInvalidProduct, *b)
		}
		if len(p.Used.Installments) != len(InstallmentCounts) {
			return fmt.Errorf("%w: installment plan must have %d entries", ErrInvalidProduct, len(InstallmentCounts))
		}
		for _, n := range InstallmentCounts {
			if _, ok := p.Used.Installments[n]; !ok {
				return fmt.Errorf("%w: installment plan missing %d", ErrInvalidProduct, n)
			}
		}
	case TypeOther:
		if p.Other == nil || p.New != nil || p.Used != nil {
			return fmt.Errorf("%w: other product carries foreign fields", ErrInvalidProduct)
		}
	}

	return nil
}
