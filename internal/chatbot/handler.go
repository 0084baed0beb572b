package chatbot

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wellnesscare/wellness-platform/internal/chat"
)

// Handler exposes the chat endpoints.
type Handler struct {
	service *Service
	store   chat.Store
	logger  *slog.Logger
}

// NewHandler creates the chat HTTP handler.
func NewHandler(service *Service, store chat.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, store: store, logger: logger}
}

// Routes mounts the chat endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/chat/send", h.Send)
	r.Get("/chat/history", h.History)
	r.Get("/chat/search", h.Search)
	r.Get("/chat/{chatID}", h.Get)
	r.Delete("/chat/{chatID}", h.Delete)
}

// Send handles POST /chat/send.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Send(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "User ID and message required")
			return
		}
		if errors.Is(err, chat.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Chat not found")
			return
		}
		h.logger.Error("chat send failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// History handles GET /chat/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	chats, err := h.store.ListByOwner(r.Context(), userID)
	if err != nil {
		h.logger.Error("chat history failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if chats == nil {
		chats = []chat.Summary{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"chats": chats})
}

// Get handles GET /chat/{chatID}. A transcript with no messages is reported
// as not found, matching the not-found-as-empty store policy.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	messages, err := h.store.Get(r.Context(), chatID)
	if err != nil {
		h.logger.Error("chat fetch failed", "error", err, "chat_id", chatID)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(messages) == 0 {
		writeError(w, http.StatusNotFound, "Chat not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// Delete handles DELETE /chat/{chatID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	if err := h.store.Delete(r.Context(), chatID); err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Chat not found")
			return
		}
		h.logger.Error("chat delete failed", "error", err, "chat_id", chatID)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Chat permanently deleted"})
}

// Search handles GET /chat/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	results, err := h.store.Search(r.Context(), userID, query)
	if err != nil {
		h.logger.Error("chat search failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if results == nil {
		results = []chat.SearchResult{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":     results,
		"total_found": len(results),
		"query":       query,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
