package handler

import "net/http"

// HealthHandler handles the root health-check endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

type healthEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthEnvelope{
		Status:  "ok",
		Message: "LocalMart API is running!",
		Version: "1.0.0",
	})
}
