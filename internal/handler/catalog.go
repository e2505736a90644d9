package handler

import (
	"greenplace-be/internal/catalog"
	"greenplace-be/internal/category"
	"greenplace-be/internal/filter"
	"greenplace-be/internal/logger"
	"greenplace-be/internal/product"
	"greenplace-be/internal/utils"
	"net/http"
	"unicode/utf8"

	"go.uber.org/zap"
)

// MinSearchLength is the shortest query the search palette sends to the store.
const MinSearchLength = 3

type productListResponse struct {
	Products      []product.Product `json:"products"`
	Facets        []filter.Facet    `json:"facets"`
	Count         int               `json:"count"`
	NoResults     bool              `json:"noResults"`
	ActiveFilters int               `json:"activeFilters"`
	Query         string            `json:"query"`
}

type searchResponse struct {
	Products []product.Product `json:"products"`
	Count    int               `json:"count"`
}

// writeCatalogUnavailable keeps the list shape so the page can render empty.
func writeCatalogUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromCtx(r.Context()).Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", http.StatusBadGateway),
		zap.Error(err),
	)

	utils.WriteJSON(w, http.StatusBadGateway, map[string]any{
		"products": []product.Product{},
		"error":    catalog.ErrCatalogUnavailable.Error(),
	})
}

// ListProducts serves the browse page: the merged catalog narrowed by the
// query parameters, with facets for the active filters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	criteria := filter.ParseQuery(r.URL.Query())

	products, err := h.catalog.ListAll(ctx, catalog.ListFilter{
		CategoryIDs:  criteria.CategoryIDs,
		ConditionIDs: criteria.ConditionIDs,
		Types:        criteria.Types,
	})
	if err != nil {
		writeCatalogUnavailable(w, r, err)
		return
	}

	var lookups filter.Lookups
	if len(criteria.CategoryIDs) > 0 {
		lookups.Categories = h.lookups.ListCategories(ctx)
	}
	if len(criteria.ConditionIDs) > 0 {
		lookups.Conditions = h.lookups.ListConditions(ctx)
	}

	res := filter.Apply(products, criteria, lookups)

	utils.WriteJSON(w, http.StatusOK, productListResponse{
		Products:      res.Products,
		Facets:        res.Facets,
		Count:         res.Count,
		NoResults:     res.NoResults,
		ActiveFilters: criteria.ActiveCount(),
		Query:         criteria.Values().Encode(),
	})
}

func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListFeatured(r.Context())
	if err != nil {
		writeCatalogUnavailable(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

// Search never fails: store errors and short queries yield no products.
// The query is passed on as typed.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	products := []product.Product{}
	if utf8.RuneCountInString(q) >= MinSearchLength {
		products = h.catalog.SearchByText(r.Context(), q)
	}

	utils.WriteJSON(w, http.StatusOK, searchResponse{Products: products, Count: len(products)})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string][]category.Category{
		"categories": h.lookups.ListCategories(r.Context()),
	})
}

func (h *Handler) ListConditions(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string][]category.Condition{
		"conditions": h.lookups.ListConditions(r.Context()),
	})
}
