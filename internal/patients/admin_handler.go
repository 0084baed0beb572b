package patients

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminHandler exposes the admin-side patient management endpoints.
type AdminHandler struct {
	repo   Repository
	logger *slog.Logger
}

// NewAdminHandler creates the admin patient HTTP handler.
func NewAdminHandler(repo Repository, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{repo: repo, logger: logger}
}

// Routes mounts the endpoints on r, expected under /admin.
func (h *AdminHandler) Routes(r chi.Router) {
	r.Get("/users/pending", h.Pending)
	r.Put("/users/approve/{patientID}", h.Approve)
	r.Delete("/users/reject/{patientID}", h.Reject)
	r.Get("/patients", h.List)
	r.Put("/patients/{patientID}", h.Update)
	r.Delete("/patients/{patientID}", h.Delete)
}

// Pending handles GET /admin/users/pending.
func (h *AdminHandler) Pending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.repo.ListPending(r.Context())
	if err != nil {
		h.logger.Error("pending list failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if pending == nil {
		pending = []Patient{}
	}
	writeBody(w, http.StatusOK, pending)
}

// Approve handles PUT /admin/users/approve/{patientID}.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")

	if err := h.repo.Approve(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "Patient not found")
			return
		}
		h.logger.Error("approve failed", "error", err, "patient_id", id)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeMessage(w, http.StatusOK, "User approved successfully")
}

// Reject handles DELETE /admin/users/reject/{patientID}.
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "Patient not found")
			return
		}
		h.logger.Error("reject failed", "error", err, "patient_id", id)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeMessage(w, http.StatusOK, "User rejected and removed")
}

// List handles GET /admin/patients.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("patient list failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if all == nil {
		all = []Patient{}
	}
	writeBody(w, http.StatusOK, all)
}

// Update handles PUT /admin/patients/{patientID}.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")

	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if update.Empty() {
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.repo.Update(r.Context(), id, update); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "Patient not found")
			return
		}
		h.logger.Error("patient update failed", "error", err, "patient_id", id)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeMessage(w, http.StatusOK, "Patient updated successfully")
}

// Delete handles DELETE /admin/patients/{patientID}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "Patient not found")
			return
		}
		h.logger.Error("patient delete failed", "error", err, "patient_id", id)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeMessage(w, http.StatusOK, "Patient deleted successfully")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeBody(w, status, map[string]string{"error": message})
}
