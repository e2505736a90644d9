package product

import "errors"

var (
	ErrUnknownType    = errors.New("unknown product type")
	ErrInvalidID      = errors.New("invalid product id")
	ErrInvalidProduct = errors.New("invalid product")
)
