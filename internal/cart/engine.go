package cart

import (
	"context"
	"errors"
	"fmt"
	"greenplace-be/internal/logger"
	"greenplace-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine is the cart state machine for one session. Every mutation is written
// back to the store before it returns.
type Engine struct {
	store        Store
	session      string
	exchangeRate decimal.Decimal
	lines        []Line
}

// NewEngine rehydrates the session's cart. A malformed slot is discarded and
// the cart starts empty.
func NewEngine(ctx context.Context, store Store, session string, exchangeRate decimal.Decimal) (*Engine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", "NewEngine"),
	)

	e := &Engine{
		store:        store,
		session:      session,
		exchangeRate: exchangeRate,
		lines:        []Line{},
	}

	data, err := store.Load(ctx, session)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		if errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if data == nil {
		return e, nil
	}

	lines, err := UnmarshalState(data)
	if err != nil {
		log.Warn("discarding malformed cart", zap.Error(err))
		return e, nil
	}

	e.lines = lines
	return e, nil
}

func (e *Engine) find(id product.ID) int {
	for i, line := range e.lines {
		if line.Product.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) save(ctx context.Context) error {
	data, err := MarshalState(e.lines)
	if err != nil {
		return err
	}
	if err := e.store.Save(ctx, e.session, data); err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Add appends a line with quantity 1, or increments an existing line up to
// MaxQuantity. Used units already in the cart are left alone.
func (e *Engine) Add(ctx context.Context, p product.Product) error {
	if i := e.find(p.ID); i >= 0 {
		switch p.Type {
		case product.TypeUsed:
		case product.TypeNew, product.TypeOther:
			e.lines[i].Quantity = min(MaxQuantity, e.lines[i].Quantity+1)
		}
	} else {
		e.lines = append(e.lines, Line{Product: p, Quantity: 1})
	}
	return e.save(ctx)
}

func (e *Engine) Remove(ctx context.Context, id product.ID) error {
	if i := e.find(id); i >= 0 {
		e.lines = append(e.lines[:i], e.lines[i+1:]...)
	}
	return e.save(ctx)
}

// UpdateQuantity never drops a line: quantities are clamped to
// [1, MaxQuantity] and used units stay pinned to 1.
func (e *Engine) UpdateQuantity(ctx context.Context, id product.ID, quantity int) error {
	if i := e.find(id); i >= 0 {
		switch e.lines[i].Product.Type {
		case product.TypeUsed:
			e.lines[i].Quantity = 1
		case product.TypeNew, product.TypeOther:
			e.lines[i].Quantity = min(MaxQuantity, max(1, quantity))
		}
	}
	return e.save(ctx)
}

func (e *Engine) Clear(ctx context.Context) error {
	e.lines = []Line{}
	return e.save(ctx)
}

// Lines returns a copy of the lines in insertion order.
func (e *Engine) Lines() []Line {
	return append([]Line{}, e.lines...)
}

func (e *Engine) Totals() Totals {
	t := Totals{USD: decimal.Zero}
	for _, line := range e.lines {
		t.Items += line.Quantity
		t.USD = t.USD.Add(line.Product.PriceUSD.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	t.ARS = t.USD.Mul(e.exchangeRate)
	return t
}

func (e *Engine) Summary() *Summary {
	s := &Summary{
		Lines:  make([]SummaryLine, 0, len(e.lines)),
		Totals: e.Totals(),
	}
	for _, line := range e.lines {
		s.Lines = append(s.Lines, SummaryLine{
			Line:         line,
			UnitPriceARS: line.Product.PriceUSD.Mul(e.exchangeRate),
			SubtotalUSD:  line.Product.PriceUSD.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return s
}
