package feedback

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellnesscare/wellness-platform/internal/observability/metrics"
	"github.com/wellnesscare/wellness-platform/internal/patients"
)

// Handler exposes the patient-facing feedback endpoints.
type Handler struct {
	repo     Repository
	patients patients.Repository
	logger   *slog.Logger
	metrics  *metrics.ChatMetrics
}

// NewHandler creates the feedback HTTP handler. The patient repository is
// used to verify that text feedback comes from a known account.
func NewHandler(repo Repository, patientRepo patients.Repository, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{repo: repo, patients: patientRepo, logger: logger}
}

// WithMetrics attaches submission counters. Nil-safe when never called.
func (h *Handler) WithMetrics(m *metrics.ChatMetrics) *Handler {
	h.metrics = m
	return h
}

// ChatRoutes mounts the per-message feedback endpoint on r.
func (h *Handler) ChatRoutes(r chi.Router) {
	r.Post("/chat/feedback", h.SubmitMessage)
}

// APIRoutes mounts the text feedback endpoint on r, expected under /api.
func (h *Handler) APIRoutes(r chi.Router) {
	r.Post("/feedback", h.SubmitText)
}

// SubmitMessage handles POST /chat/feedback.
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID       string `json:"chat_id"`
		MessageIndex int    `json:"message_index"`
		Rating       int    `json:"rating"`
		Comment      string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ChatID == "" {
		writeError(w, http.StatusBadRequest, "Chat ID is required")
		return
	}

	_, err := h.repo.SaveMessage(r.Context(), MessageFeedback{
		ChatID:       req.ChatID,
		MessageIndex: req.MessageIndex,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Chat ID is required")
			return
		}
		h.logger.Error("message feedback save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.metrics.ObserveFeedback("message")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback saved successfully"})
}

// SubmitText handles POST /api/feedback.
func (h *Handler) SubmitText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		Rating   int    `json:"rating"`
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Feedback == "" {
		writeError(w, http.StatusBadRequest, "User ID and feedback required")
		return
	}

	patient, err := h.patients.GetByID(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found. Please log in again.")
			return
		}
		h.logger.Error("feedback user lookup failed", "error", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	_, err = h.repo.SaveText(r.Context(), TextFeedback{
		UserID:   patient.ID,
		UserName: patient.Name,
		Rating:   req.Rating,
		Feedback: req.Feedback,
	})
	if err != nil {
		h.logger.Error("text feedback save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.metrics.ObserveFeedback("text")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback submitted successfully!"})
}

// AdminHandler exposes the feedback monitoring endpoints.
type AdminHandler struct {
	repo   Repository
	logger *slog.Logger
}

// NewAdminHandler creates the admin feedback HTTP handler.
func NewAdminHandler(repo Repository, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{repo: repo, logger: logger}
}

// Routes mounts the endpoints on r, expected under /admin.
func (h *AdminHandler) Routes(r chi.Router) {
	r.Get("/feedback", h.ListMessage)
	r.Get("/text_feedbacks", h.ListText)
}

// ListMessage handles GET /admin/feedback.
func (h *AdminHandler) ListMessage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.ListMessage(r.Context())
	if err != nil {
		h.logger.Error("feedback list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if entries == nil {
		entries = []MessageFeedback{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// ListText handles GET /admin/text_feedbacks.
func (h *AdminHandler) ListText(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.ListText(r.Context())
	if err != nil {
		h.logger.Error("text feedback list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if entries == nil {
		entries = []TextFeedback{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
