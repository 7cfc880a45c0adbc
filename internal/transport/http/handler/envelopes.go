package handler

import (
	"encoding/json"
	"net/http"

	"github.com/localmart/api/internal/domain"
)

// MessageEnvelope is the generic success wrapper.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OTPEnvelope wraps send-otp responses. OTP is only populated when code
// echoing is enabled (development mode).
type OTPEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OTP     string `json:"otp,omitempty"`
}

// VerifyEnvelope wraps verify-otp responses. Token is present when the
// verified contact matched a profile and a signer is configured.
type VerifyEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

// AuthEnvelope wraps login and registration responses.
type AuthEnvelope struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	UserID  string       `json:"userId,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

type UserEnvelope struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

type ProductEnvelope struct {
	Success bool            `json:"success"`
	Product *domain.Product `json:"product"`
}

type ProductsEnvelope struct {
	Success  bool             `json:"success"`
	Products []domain.Product `json:"products"`
}

type CreateProductEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ProductID string `json:"productId"`
}

type ImageEnvelope struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

type CreateOrderEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OrderID string `json:"orderId"`
}

type OrdersEnvelope struct {
	Success bool           `json:"success"`
	Orders  []domain.Order `json:"orders"`
}

type ReviewEnvelope struct {
	Success bool           `json:"success"`
	Review  *domain.Review `json:"review"`
}

type ReviewsEnvelope struct {
	Success bool            `json:"success"`
	Reviews []domain.Review `json:"reviews"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
