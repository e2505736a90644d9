package catalog

import (
	"context"
	"errors"
	"fmt"
	"greenplace-be/internal/filter"
	"greenplace-be/internal/logger"
	"greenplace-be/internal/metrics"
	"greenplace-be/internal/product"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ListFilter is applied after the merge. Featured only marks the landing page
// call and selects the same merge.
type ListFilter struct {
	CategoryIDs  []int
	ConditionIDs []int
	Types        []product.Type
	Featured     bool
}

type Service interface {
	// ListAll fails closed: any source failure yields an empty slice and an
	// error wrapping ErrCatalogUnavailable.
	ListAll(ctx context.Context, f ListFilter) ([]product.Product, error)
	ListFeatured(ctx context.Context) ([]product.Product, error)
	// SearchByText never surfaces an error; failures yield an empty slice.
	SearchByText(ctx context.Context, query string) []product.Product
	GetProduct(ctx context.Context, id product.ID) (*product.Product, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Collectors
}

func NewService(repo Repository, m *metrics.Collectors) Service {
	return &service{repo: repo, metrics: m}
}

// fetchAll reads the three sources concurrently and concatenates them in
// merge order. The first failure cancels the remaining reads.
func (s *service) fetchAll(ctx context.Context, q Query) ([]product.Product, error) {
	results := make([][]product.Product, len(product.Types))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range product.Types {
		g.Go(func() error {
			timer := metrics.StartTimer()
			rows, err := s.repo.Fetch(gctx, kind, q)
			s.metrics.ObserveSource(string(kind), timer.Duration(), err)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", kind, err)
			}

			products, err := product.NormalizeAll(rows, kind)
			if err != nil {
				return err
			}
			results[i] = products
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := []product.Product{}
	for _, products := range results {
		merged = append(merged, products...)
	}
	return merged, nil
}

func (s *service) ListAll(ctx context.Context, f ListFilter) ([]product.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListAll"),
		zap.Bool("featured", f.Featured),
	)

	all, err := s.fetchAll(ctx, Query{})
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return []product.Product{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	products := make([]product.Product, 0, len(all))
	for _, p := range all {
		if filter.MatchCategory(p, f.CategoryIDs) &&
			filter.MatchCondition(p, f.ConditionIDs) &&
			filter.MatchType(p, f.Types) {
			products = append(products, p)
		}
	}

	log.Debug("catalog loaded",
		zap.Int("total", len(all)),
		zap.Int("matched", len(products)),
	)

	return products, nil
}

func (s *service) ListFeatured(ctx context.Context) ([]product.Product, error) {
	return s.ListAll(ctx, ListFilter{Featured: true})
}

func (s *service) SearchByText(ctx context.Context, query string) []product.Product {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SearchByText"),
		zap.String("query", query),
	)

	products, err := s.fetchAll(ctx, Query{Search: query})
	if err != nil {
		log.Warn("search failed, returning no results", zap.Error(err))
		return []product.Product{}
	}

	return products
}

func (s *service) GetProduct(ctx context.Context, id product.ID) (*product.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProduct"),
		zap.String("product_id", id.String()),
	)

	kind := id.Type()
	timer := metrics.StartTimer()
	rows, err := s.repo.Fetch(ctx, kind, Query{SourceID: id.SourceID()})
	s.metrics.ObserveSource(string(kind), timer.Duration(), err)
	if err != nil {
		if errors.Is(err, product.ErrUnknownType) {
			return nil, err
		}
		log.Error("failed to load product", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	if len(rows) == 0 {
		log.Info("product not found")
		return nil, ErrProductNotFound
	}

	p, err := product.Normalize(rows[0], kind)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
