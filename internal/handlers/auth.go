package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/nvtrung/forum-api/internal/auth"
	"github.com/nvtrung/forum-api/internal/metrics"
	"github.com/nvtrung/forum-api/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users *repo.UserRepo
	Auth  auth.Authenticator
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	if input.Username == "" || input.Password == "" {
		JSONError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Users.Create(r.Context(), input.Username, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			JSONError(w, "username already taken", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "registration successful",
		"username": user.Username,
	})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	if input.Username == "" || input.Password == "" {
		JSONError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	// "no such user" and "wrong password" get the same answer, so the endpoint
	// does not leak which usernames exist.
	user, err := h.Users.GetByUsername(r.Context(), input.Username)
	if err != nil {
		metrics.IncLogins("failure")
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		metrics.IncLogins("failure")
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.Auth.Issue(w, user.Username)
	if err != nil {
		slog.Error("login: issue proof", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncLogins("success")

	resp := map[string]interface{}{
		"message":  "login successful",
		"username": user.Username,
	}
	// Session mode delivers the proof as a cookie; only token mode has a body token.
	if token != "" {
		resp["token"] = token
	}
	JSON(w, http.StatusOK, resp)
}

// ==========================
// Logout (idempotent)
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Revoke(w, r)
	JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
