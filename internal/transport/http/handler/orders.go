package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/localmart/api/internal/application/order"
	"github.com/localmart/api/internal/domain"
	"github.com/localmart/api/internal/pkg/validate"
)

// OrderHandler handles checkout and order history endpoints.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler { return &OrderHandler{svc: svc} }

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	o, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CreateOrderEnvelope{
		Success: true,
		Message: "Order placed successfully",
		OrderID: o.OrderID,
	})
}

func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		httpError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, OrdersEnvelope{Success: true, Orders: orders})
}
