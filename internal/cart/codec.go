package cart

import (
	"encoding/json"
	"fmt"
	"greenplace-be/internal/product"
)

// MarshalState encodes lines as the persisted JSON array of {product, quantity}.
func MarshalState(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// UnmarshalState decodes and validates a persisted cart. Any shape the engine
// could not have produced is rejected with ErrMalformedState.
func UnmarshalState(data []byte) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if lines == nil {
		return []Line{}, nil
	}

	seen := make(map[product.ID]bool, len(lines))
	for i, line := range lines {
		if err := line.Product.Validate(); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedState, i, err)
		}
		if line.Quantity < 1 || line.Quantity > MaxQuantity {
			return nil, fmt.Errorf("%w: line %d: quantity %d", ErrMalformedState, i, line.Quantity)
		}
		if line.Product.Type == product.TypeUsed && line.Quantity != 1 {
			return nil, fmt.Errorf("%w: line %d: used unit with quantity %d", ErrMalformedState, i, line.Quantity)
		}
		if seen[line.Product.ID] {
			return nil, fmt.Errorf("%w: duplicate product %s", ErrMalformedState, line.Product.ID)
		}
		seen[line.Product.ID] = true
	}

	return lines, nil
}
