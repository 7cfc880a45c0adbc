package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/localmart/api/internal/application/review"
	"github.com/localmart/api/internal/domain"
	"github.com/localmart/api/internal/pkg/validate"
	"github.com/localmart/api/internal/transport/http/middleware"
)

// ReviewHandler handles product review endpoints. Listing is public,
// submission requires an authenticated buyer.
type ReviewHandler struct {
	svc review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler { return &ReviewHandler{svc: svc} }

func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListByProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		httpError(w, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, ReviewsEnvelope{Success: true, Reviews: reviews})
}

func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var buyerID string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		buyerID = claims.UserID
	}
	rv, err := h.svc.Submit(r.Context(), chi.URLParam(r, "productId"), buyerID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReviewEnvelope{Success: true, Review: rv})
}
