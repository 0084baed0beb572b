package keywords

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellnesscare/wellness-platform/pkg/logging"
)

// Handler handles HTTP requests for the admin keyword console
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new keywords handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /admin/keywords
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list keywords", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if snap == nil {
		snap = Snapshot{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

// UpsertRequest is the body for POST /admin/keywords.
type UpsertRequest struct {
	Keyword  string `json:"keyword"`
	Response string `json:"response"`
}

// Upsert handles POST /admin/keywords
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Keyword == "" || req.Response == "" {
		http.Error(w, "both keyword and response are required", http.StatusBadRequest)
		return
	}

	entry, err := h.repo.Upsert(r.Context(), req.Keyword, req.Response)
	if err != nil {
		if errors.Is(err, ErrEmptyKeyword) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to upsert keyword", "error", err, "keyword", req.Keyword)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("keyword upserted", "keyword", entry.Keyword, "id", entry.ID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entry)
}

// ReplaceRequest is the body for PUT /admin/keywords/{id}.
type ReplaceRequest struct {
	Keyword   string   `json:"keyword"`
	Responses []string `json:"responses"`
}

// Replace handles PUT /admin/keywords/{id}
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ReplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Keyword == "" || len(req.Responses) == 0 {
		http.Error(w, "keyword and responses list required", http.StatusBadRequest)
		return
	}

	entry, err := h.repo.Replace(r.Context(), id, req.Keyword, req.Responses)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			http.Error(w, "keyword not found", http.StatusNotFound)
		case errors.Is(err, ErrEmptyKeyword), errors.Is(err, ErrEmptyResponses):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to replace keyword", "error", err, "id", id)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entry)
}

// Delete handles DELETE /admin/keywords/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "keyword not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete keyword", "error", err, "id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "keyword deleted successfully"})
}
