package handler

import (
	"context"
	"greenplace-be/internal/cart"
	"greenplace-be/internal/catalog"
	"greenplace-be/internal/category"
	"greenplace-be/internal/product"

	"github.com/stretchr/testify/mock"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListAll(ctx context.Context, f catalog.ListFilter) ([]product.Product, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockCatalog) ListFeatured(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockCatalog) SearchByText(ctx context.Context, query string) []product.Product {
	args := m.Called(ctx, query)
	return args.Get(0).([]product.Product)
}

func (m *MockCatalog) GetProduct(ctx context.Context, id product.ID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockLookups struct {
	mock.Mock
}

func (m *MockLookups) ListCategories(ctx context.Context) []category.Category {
	args := m.Called(ctx)
	return args.Get(0).([]category.Category)
}

func (m *MockLookups) ListConditions(ctx context.Context) []category.Condition {
	args := m.Called(ctx)
	return args.Get(0).([]category.Condition)
}

type MockCart struct {
	mock.Mock
}

func (m *MockCart) summary(args mock.Arguments) (*cart.Summary, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Summary), args.Error(1)
}

func (m *MockCart) GetCart(ctx context.Context, session string) (*cart.Summary, error) {
	return m.summary(m.Called(ctx, session))
}

func (m *MockCart) AddToCart(ctx context.Context, session string, productID product.ID) (*cart.Summary, error) {
	return m.summary(m.Called(ctx, session, productID))
}

func (m *MockCart) RemoveFromCart(ctx context.Context, session string, productID product.ID) (*cart.Summary, error) {
	return m.summary(m.Called(ctx, session, productID))
}

func (m *MockCart) UpdateQuantity(ctx context.Context, session string, productID product.ID, quantity int) (*cart.Summary, error) {
	return m.summary(m.Called(ctx, session, productID, quantity))
}

func (m *MockCart) ClearCart(ctx context.Context, session string) (*cart.Summary, error) {
	return m.summary(m.Called(ctx, session))
}

func (m *MockCart) Checkout(ctx context.Context, session string) (*cart.Handoff, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Handoff), args.Error(1)
}
