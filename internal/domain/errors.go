package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// OTP verification outcomes. ErrExpired also signals the record was removed;
	// ErrMismatch leaves it in place so the caller can retry until expiry.
	ErrExpired  = errors.New("expired")
	ErrMismatch = errors.New("mismatch")
)
