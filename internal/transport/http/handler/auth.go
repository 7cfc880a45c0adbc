package handler

import (
	"encoding/json"
	"net/http"

	"github.com/localmart/api/internal/application/auth"
)

// AuthHandler handles OTP issuance/verification and email/password login.
type AuthHandler struct {
	svc auth.Service
	// echoOTP returns generated codes in responses. Development shortcut,
	// off in production where delivery is out-of-band only.
	echoOTP bool
}

func NewAuthHandler(svc auth.Service, echoOTP bool) *AuthHandler {
	return &AuthHandler{svc: svc, echoOTP: echoOTP}
}

func (h *AuthHandler) SendPhoneOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.PhoneNumber == "" {
		writeError(w, http.StatusBadRequest, "Phone number is required")
		return
	}
	code, err := h.svc.SendPhoneOTP(r.Context(), body.PhoneNumber)
	if err != nil {
		httpError(w, err)
		return
	}
	resp := OTPEnvelope{Success: true, Message: "OTP sent successfully"}
	if h.echoOTP {
		resp.OTP = code
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) VerifyPhoneOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PhoneNumber string `json:"phoneNumber"`
		OTP         string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.PhoneNumber == "" || body.OTP == "" {
		writeError(w, http.StatusBadRequest, "Phone number and OTP are required")
		return
	}
	token, err := h.svc.VerifyPhoneOTP(r.Context(), body.PhoneNumber, body.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{Success: true, Message: "Phone verified successfully", Token: token})
}

func (h *AuthHandler) SendEmailOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	code, err := h.svc.SendEmailOTP(r.Context(), body.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	resp := OTPEnvelope{Success: true, Message: "OTP sent successfully"}
	if h.echoOTP {
		resp.OTP = code
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) VerifyEmailOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" || body.OTP == "" {
		writeError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}
	token, err := h.svc.VerifyEmailOTP(r.Context(), body.Email, body.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{Success: true, Message: "Email verified successfully", Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	token, user, err := h.svc.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Success: true, Token: token, User: user})
}
