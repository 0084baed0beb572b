package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the console account and analytics endpoints.
type Handler struct {
	service         *Service
	logger          *slog.Logger
	defaultEmail    string
	defaultPassword string
}

// NewHandler creates the console HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// WithDefaultCredentials enables the create_default endpoint with the
// configured bootstrap credentials.
func (h *Handler) WithDefaultCredentials(email, password string) *Handler {
	h.defaultEmail = email
	h.defaultPassword = password
	return h
}

// PublicRoutes mounts the endpoints reachable without a console token,
// expected under /admin.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/create_default", h.CreateDefault)
}

// Routes mounts the protected endpoints, expected under /admin.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/analytics", h.Analytics)
}

// Login handles POST /admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, adm, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Error("admin login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"admin": map[string]string{
			"id":    adm.ID,
			"name":  adm.Name,
			"email": adm.Email,
		},
	})
}

// CreateDefault handles POST /admin/create_default. It recreates the
// bootstrap account if it was deleted; existing accounts are left alone.
func (h *Handler) CreateDefault(w http.ResponseWriter, r *http.Request) {
	if h.defaultEmail == "" || h.defaultPassword == "" {
		writeError(w, http.StatusBadRequest, "Default admin is not configured")
		return
	}

	if err := h.service.EnsureDefault(r.Context(), h.defaultEmail, h.defaultPassword); err != nil {
		h.logger.Error("default admin create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Default admin created successfully",
		"email":   h.defaultEmail,
	})
}

// Analytics handles GET /admin/analytics.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Analytics(r.Context())
	if err != nil {
		h.logger.Error("analytics failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
