package handler

import (
	"errors"
	"greenplace-be/internal/cart"
	"greenplace-be/internal/catalog"
	"greenplace-be/internal/category"
	"greenplace-be/internal/logger"
	"greenplace-be/internal/product"
	"greenplace-be/internal/utils"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	catalog catalog.Service
	lookups category.Service
	cart    cart.Service
}

func New(catalogSvc catalog.Service, lookupSvc category.Service, cartSvc cart.Service) *Handler {
	return &Handler{catalog: catalogSvc, lookups: lookupSvc, cart: cartSvc}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// productIDParam reads {id}, which clients may send percent-encoded.
func productIDParam(r *http.Request) (product.ID, error) {
	raw := chi.URLParam(r, "id")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	return product.ParseID(raw)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, utils.ErrInvalidBody),
		errors.Is(err, product.ErrInvalidID),
		errors.Is(err, product.ErrUnknownType),
		errors.Is(err, cart.ErrSessionRequired):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, cart.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, cart.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps domain errors to a status. Server side failures are logged
// and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()

	if code >= http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", code),
			zap.Error(err),
		)
		switch code {
		case http.StatusBadGateway:
			msg = catalog.ErrCatalogUnavailable.Error()
		case http.StatusServiceUnavailable:
			msg = cart.ErrStoreUnavailable.Error()
		default:
			msg = http.StatusText(code)
		}
	}

	utils.WriteJSONError(w, msg, code)
}
