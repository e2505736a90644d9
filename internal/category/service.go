package category

import (
	"context"
	"greenplace-be/internal/logger"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	categoriesKey = "categories"
	conditionsKey = "conditions"
)

// Service exposes the lookup collections. Store failures never surface:
// callers get an empty list instead.
type Service interface {
	ListCategories(ctx context.Context) []Category
	ListConditions(ctx context.Context) []Condition
}

type service struct {
	repo       Repository
	categories *expirable.LRU[string, []Category]
	conditions *expirable.LRU[string, []Condition]
}

// NewService creates a lookup service. A ttl <= 0 disables caching.
func NewService(repo Repository, ttl time.Duration) Service {
	s := &service{repo: repo}
	if ttl > 0 {
		s.categories = expirable.NewLRU[string, []Category](1, nil, ttl)
		s.conditions = expirable.NewLRU[string, []Condition](1, nil, ttl)
	}
	return s
}

func (s *service) ListCategories(ctx context.Context) []Category {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListCategories"),
	)

	if s.categories != nil {
		if cached, ok := s.categories.Get(categoriesKey); ok {
			return cached
		}
	}

	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		log.Warn("categories unavailable, returning empty list", zap.Error(err))
		return []Category{}
	}

	if s.categories != nil {
		s.categories.Add(categoriesKey, categories)
	}

	log.Debug("ListCategories success", zap.Int("count", len(categories)))
	return categories
}

func (s *service) ListConditions(ctx context.Context) []Condition {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListConditions"),
	)

	if s.conditions != nil {
		if cached, ok := s.conditions.Get(conditionsKey); ok {
			return cached
		}
	}

	conditions, err := s.repo.GetConditions(ctx)
	if err != nil {
		log.Warn("conditions unavailable, returning empty list", zap.Error(err))
		return []Condition{}
	}

	if s.conditions != nil {
		s.conditions.Add(conditionsKey, conditions)
	}

	log.Debug("ListConditions success", zap.Int("count", len(conditions)))
	return conditions
}
