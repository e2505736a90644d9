package cart

import (
	"context"
	"errors"
	"fmt"
	"greenplace-be/internal/catalog"
	"greenplace-be/internal/logger"
	"greenplace-be/internal/metrics"
	"greenplace-be/internal/product"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductFinder resolves a catalog product to snapshot into the cart.
type ProductFinder interface {
	GetProduct(ctx context.Context, id product.ID) (*product.Product, error)
}

type Options struct {
	ExchangeRate decimal.Decimal
	StoreName    string
	Phone        string
}

// Service applies one cart operation per call to the session's persisted cart
// and returns the resulting summary.
type Service interface {
	GetCart(ctx context.Context, session string) (*Summary, error)
	AddToCart(ctx context.Context, session string, productID product.ID) (*Summary, error)
	RemoveFromCart(ctx context.Context, session string, productID product.ID) (*Summary, error)
	UpdateQuantity(ctx context.Context, session string, productID product.ID, quantity int) (*Summary, error)
	ClearCart(ctx context.Context, session string) (*Summary, error)
	Checkout(ctx context.Context, session string) (*Handoff, error)
}

type service struct {
	store   Store
	finder  ProductFinder
	opts    Options
	metrics *metrics.Collectors
}

func NewService(store Store, finder ProductFinder, opts Options, m *metrics.Collectors) Service {
	return &service{store: store, finder: finder, opts: opts, metrics: m}
}

func (s *service) open(ctx context.Context, session string) (*Engine, error) {
	if strings.TrimSpace(session) == "" {
		return nil, ErrSessionRequired
	}
	return NewEngine(ctx, s.store, session, s.opts.ExchangeRate)
}

func (s *service) GetCart(ctx context.Context, session string) (*Summary, error) {
	e, err := s.open(ctx, session)
	if err != nil {
		return nil, err
	}
	return e.Summary(), nil
}

func (s *service) AddToCart(ctx context.Context, session string, productID product.ID) (*Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.String("product_id", productID.String()),
	)

	e, err := s.open(ctx, session)
	if err != nil {
		return nil, err
	}

	p, err := s.finder.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			log.Info("product not found")
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		log.Error("failed to resolve product", zap.Error(err))
		return nil, err
	}

	if err := e.Add(ctx, *p); err != nil {
		log.Error("failed to save cart", zap.Error(err))
		return nil, err
	}

	s.metrics.IncCartOperation("add")
	return e.Summary(), nil
}

func (s *service) RemoveFromCart(ctx context.Context, session string, productID product.ID) (*Summary, error) {
	e, err := s.open(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := e.Remove(ctx, productID); err != nil {
		return nil, err
	}

	s.metrics.IncCartOperation("remove")
	return e.Summary(), nil
}

func (s *service) UpdateQuantity(ctx context.Context, session string, productID product.ID, quantity int) (*Summary, error) {
	e, err := s.open(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := e.UpdateQuantity(ctx, productID, quantity); err != nil {
		return nil, err
	}

	s.metrics.IncCartOperation("update_quantity")
	return e.Summary(), nil
}

func (s *service) ClearCart(ctx context.Context, session string) (*Summary, error) {
	e, err := s.open(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := e.Clear(ctx); err != nil {
		return nil, err
	}

	s.metrics.IncCartOperation("clear")
	return e.Summary(), nil
}

// Checkout builds the order hand-off. The cart is kept as is.
func (s *service) Checkout(ctx context.Context, session string) (*Handoff, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	e, err := s.open(ctx, session)
	if err != nil {
		return nil, err
	}

	lines := e.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	totals := e.Totals()
	msg := OrderMessage(s.opts.StoreName, lines, totals)

	log.Info("checkout prepared",
		zap.Int("lines", len(lines)),
		zap.Int("items", totals.Items),
		zap.String("total_usd", totals.USD.String()),
	)

	s.metrics.IncCartOperation("checkout")
	return &Handoff{Message: msg, URL: HandoffURL(s.opts.Phone, msg)}, nil
}
