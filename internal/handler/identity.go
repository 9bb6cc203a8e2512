package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/fcci/mockidentity/internal/handler/dto"
	"github.com/fcci/mockidentity/internal/metrics"
	"github.com/fcci/mockidentity/internal/middleware"
	"github.com/fcci/mockidentity/internal/service"
)

// allowedMethods is the Allow value for every path: the catch-all takes GET
// and POST, HEAD follows GET, and OPTIONS is answered here.
const allowedMethods = "GET, HEAD, OPTIONS, POST"

// IdentityHandler serves the mocked identity-provider routes.
type IdentityHandler struct {
	svc     *service.IdentityService
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(svc *service.IdentityService, recorder metrics.Recorder, logger *slog.Logger) *IdentityHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &IdentityHandler{
		svc:     svc,
		metrics: recorder,
		logger:  logger,
	}
}

// Routes registers the identity routes on r. Anything they do not match,
// including a known path with another method, goes to Fallback.
func (h *IdentityHandler) Routes(r chi.Router) {
	r.NotFound(h.Fallback)
	r.MethodNotAllowed(h.Fallback)

	r.Post("/idb/identity/authenticate", h.Authenticate)
	r.Post("/identity/config/v2/actions/EmailCheck/invoke", h.EmailCheck)
	r.Get("/identity/scim/*", h.SCIMUser)
	r.Get("/organization/scim/v1/Orgs/*", h.OrgSSO)
	r.Get("/idb/idbconfig/*", h.PasswordResetInfo)
}

// Authenticate handles POST /idb/identity/authenticate.
// The request body is ignored; every caller gets the same token.
func (h *IdentityHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, h.svc.Authenticate())
}

// EmailCheck handles POST /identity/config/v2/actions/EmailCheck/invoke.
func (h *IdentityHandler) EmailCheck(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.handleServiceError(w, r, &service.BadRequestError{Reason: "read body", Err: err})
		return
	}

	var req dto.EmailCheckRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.handleServiceError(w, r, &service.BadRequestError{Reason: "invalid JSON body", Err: err})
		return
	}

	result, err := h.svc.EmailCheck(service.EmailCheckInput{Email: req.Email})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Debug("email_check", "organization_id", result.OrganizationID)
	writeJSON(w, http.StatusOK, result)
}

// SCIMUser handles GET /identity/scim/*.
func (h *IdentityHandler) SCIMUser(w http.ResponseWriter, r *http.Request) {
	path, ok := wildcardPath(r)
	if !ok {
		h.Fallback(w, r)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.SCIMUser(path))
}

// OrgSSO handles GET /organization/scim/v1/Orgs/*.
func (h *IdentityHandler) OrgSSO(w http.ResponseWriter, r *http.Request) {
	org, ok := wildcardPath(r)
	if !ok {
		h.Fallback(w, r)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.SSOStatus(org))
}

// PasswordResetInfo handles GET /idb/idbconfig/*.
func (h *IdentityHandler) PasswordResetInfo(w http.ResponseWriter, r *http.Request) {
	path, ok := wildcardPath(r)
	if !ok {
		h.Fallback(w, r)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.PasswordResetInfo(path))
}

// Fallback echoes the request body back for GET and POST on any unmapped route.
// OPTIONS gets an empty 200 listing the allowed methods.
func (h *IdentityHandler) Fallback(w http.ResponseWriter, r *http.Request) {
	middleware.MarkFallback(r.Context())

	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	case http.MethodOptions:
		w.Header().Set("Allow", allowedMethods)
		w.WriteHeader(http.StatusOK)
		return
	default:
		w.Header().Set("Allow", allowedMethods)
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.handleServiceError(w, r, &service.BadRequestError{Reason: "read body", Err: err})
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)

	n, _ := w.Write(body)
	h.metrics.AddEchoedBytes(n)

	h.logger.Debug("echo_fallback",
		"method", r.Method,
		"path", r.URL.Path,
		"bytes", len(body),
	)
}

// handleServiceError maps service errors to HTTP responses.
func (h *IdentityHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		missing *service.MissingFieldError
		tooBig  *http.MaxBytesError
	)

	switch {
	case errors.As(err, &tooBig):
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
	case errors.As(err, &missing):
		writeError(w, http.StatusBadRequest, "MISSING_FIELD", fmt.Sprintf("Missing required field: %s", missing.Field))
	case errors.Is(err, service.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
	default:
		h.logger.Error("internal_error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// wildcardPath returns the decoded remainder matched by a trailing "/*".
// An empty remainder is reported as not ok.
func wildcardPath(r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "*")
	if raw == "" {
		return "", false
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded, true
	}
	return raw, true
}
