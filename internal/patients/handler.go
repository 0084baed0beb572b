package patients

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the signup and login endpoints.
type Handler struct {
	repo   Repository
	auth   *Authenticator
	logger *slog.Logger
}

// NewHandler creates the patient auth HTTP handler.
func NewHandler(repo Repository, auth *Authenticator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{repo: repo, auth: auth, logger: logger}
}

// Routes mounts the endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

// Signup handles POST /api/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hashing failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	created, err := h.repo.Create(r.Context(), Patient{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Age:              req.Age,
		Gender:           req.Gender,
		PasswordHash:     hash,
		EmergencyContact: req.EmergencyContact,
		BloodGroup:       req.BloodGroup,
		Address:          req.Address,
		MedicalHistory:   req.MedicalHistory,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			writeMessage(w, http.StatusBadRequest, "Email already registered!")
		case errors.Is(err, ErrPhoneTaken):
			writeMessage(w, http.StatusBadRequest, "Phone number already registered!")
		default:
			h.logger.Error("signup failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeBody(w, http.StatusCreated, map[string]string{
		"message":   "Account created successfully!",
		"patientId": created.ID,
	})
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	req.Email = normalizeEmail(req.Email)
	patient, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Error("login lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !h.auth.CheckPassword(patient.PasswordHash, req.Password) {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.auth.IssueToken(patient)
	if err != nil {
		h.logger.Error("token issue failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeBody(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    publicProfile(patient),
	})
}

func publicProfile(p Patient) map[string]any {
	return map[string]any{
		"id":               p.ID,
		"name":             p.Name,
		"email":            p.Email,
		"phone":            p.Phone,
		"age":              p.Age,
		"gender":           p.Gender,
		"bloodGroup":       p.BloodGroup,
		"emergencyContact": p.EmergencyContact,
		"address":          p.Address,
		"medicalHistory":   p.MedicalHistory,
	}
}

func writeBody(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeBody(w, status, map[string]string{"message": message})
}
