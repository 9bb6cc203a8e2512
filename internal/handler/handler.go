// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fcci/mockidentity/internal/fixture"
	"github.com/fcci/mockidentity/internal/handler/dto"
)

// Version is reported by the info endpoint.
const Version = "0.1.0"

// Handler serves the mock's own informational endpoints.
type Handler struct {
	fixtures *fixture.Set
}

// New creates a new Handler instance.
func New(fixtures *fixture.Set) *Handler {
	return &Handler{fixtures: fixtures}
}

// Info describes the running mock and its fixture set.
// GET /_mock/
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.InfoResponse{
		Service:         "mockidentity",
		Version:         Version,
		Fixtures:        h.fixtures.Name,
		FixturesVersion: h.fixtures.Version,
	})
}

// Fixtures returns the full fixture set the canned responses are built from.
// GET /_mock/fixtures
func (h *Handler) Fixtures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.fixtures)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure here can only be a
	// broken connection.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
