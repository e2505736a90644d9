package handler

import (
	"greenplace-be/internal/product"
	"greenplace-be/internal/transport"
	"greenplace-be/internal/utils"
	"net/http"
)

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type updateQuantityRequest struct {
	// max mirrors cart.MaxQuantity.
	Quantity *int `json:"quantity" validate:"required,max=99"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cart.GetCart(r.Context(), transport.SessionFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := product.ParseID(req.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.cart.AddToCart(r.Context(), transport.SessionFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateQuantityRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.cart.UpdateQuantity(r.Context(), transport.SessionFrom(r.Context()), id, *req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.cart.RemoveFromCart(r.Context(), transport.SessionFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cart.ClearCart(r.Context(), transport.SessionFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	handoff, err := h.cart.Checkout(r.Context(), transport.SessionFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, handoff)
}
