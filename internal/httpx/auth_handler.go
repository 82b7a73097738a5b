package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/slicehouse/go-pizza-orders/internal/auth"
)

type UserStore interface {
	Register(ctx context.Context, name, email, password string, role auth.Role) error
	Authenticate(ctx context.Context, email, password string) (*auth.User, error)
}

type AuthHandler struct {
	Users  UserStore
	Tokens *auth.TokenCodec
}

type registerReq struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.Users.Register(ctx, req.Name, req.Email, req.Password, req.Role)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email already registered"})
	case errors.Is(err, auth.ErrInvalidRole):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid role"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Registration failed"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "User not found"})
	case errors.Is(err, auth.ErrWrongPassword):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Incorrect password"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error"})
	default:
		token := h.Tokens.Issue(auth.Identity{ID: u.ID, Name: u.Name, Role: u.Role})
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   token,
			"role":    u.Role,
		})
	}
}
