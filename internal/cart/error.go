package cart

import "errors"

var (
	// -- Validation & Input --
	ErrSessionRequired = errors.New("cart session required")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMalformedState  = errors.New("malformed cart state")

	// -- Storage --
	ErrStoreUnavailable = errors.New("cart store unavailable")
)
