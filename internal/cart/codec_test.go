package cart

import (
	"encoding/json"
	"greenplace-be/internal/product"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalState(t *testing.T) {
	t.Run("Nil is an empty list", func(t *testing.T) {
		data, err := MarshalState(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("Round trip keeps variant fields", func(t *testing.T) {
		used := newItem(product.TypeUsed, "2", "iPhone 13", 500)
		lines := []Line{{Product: used, Quantity: 1}}

		data, err := MarshalState(lines)
		require.NoError(t, err)

		decoded, err := UnmarshalState(data)
		require.NoError(t, err)
		require.Len(t, decoded, 1)
		assert.Equal(t, used.ID, decoded[0].Product.ID)
		require.NotNil(t, decoded[0].Product.Used)
		assert.Len(t, decoded[0].Product.Used.Installments, 4)
		assert.Nil(t, decoded[0].Product.New)
		assert.Nil(t, decoded[0].Product.Other)
	})
}

func TestUnmarshalState(t *testing.T) {
	encode := func(lines []Line) []byte {
		data, err := json.Marshal(lines)
		require.NoError(t, err)
		return data
	}

	item := newItem(product.TypeNew, "1", "iPhone 15", 999)
	used := newItem(product.TypeUsed, "2", "iPhone 13", 500)

	t.Run("Null is empty", func(t *testing.T) {
		lines, err := UnmarshalState([]byte("null"))
		require.NoError(t, err)
		assert.NotNil(t, lines)
		assert.Empty(t, lines)
	})

	cases := map[string][]byte{
		"not json":           []byte("{"),
		"not a list":         []byte(`{"product":{}}`),
		"zero quantity":      encode([]Line{{Product: item, Quantity: 0}}),
		"above ceiling":      encode([]Line{{Product: item, Quantity: MaxQuantity + 1}}),
		"used quantity":      encode([]Line{{Product: used, Quantity: 2}}),
		"duplicate products": encode([]Line{{Product: item, Quantity: 1}, {Product: item, Quantity: 3}}),
		"invalid product":    []byte(`[{"product":{"id":"new:1","sourceId":"1","type":"new","model":""},"quantity":1}]`),
		"foreign variant":    []byte(`[{"product":{"id":"other:1","sourceId":"1","type":"other","model":"x","priceUsd":"1","new":{}},"quantity":1}]`),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalState(data)
			assert.ErrorIs(t, err, ErrMalformedState)
		})
	}
}
