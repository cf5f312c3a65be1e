package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kkiihun/global-board/internal/auth"
	"github.com/kkiihun/global-board/internal/db"
	"github.com/kkiihun/global-board/internal/logger"
)

type AuthHandler struct {
	store  *db.Store
	tokens *auth.Tokens
	log    *logger.Logger
}

func NewAuthHandler(store *db.Store, tokens *auth.Tokens, log *logger.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, log: log}
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new user. Duplicate emails are rejected before any
// write, and the unique constraint backs that check up against races.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password required")
		return
	}

	existing, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Error("signup lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "db error")
		return
	}
	if existing != nil {
		respondError(w, http.StatusBadRequest, "email already registered")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error("password hash failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	if _, err := h.store.CreateUser(r.Context(), req.Email, hashed); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			respondError(w, http.StatusBadRequest, "email already registered")
			return
		}
		h.log.Error("create user failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	respondMsg(w, http.StatusOK, "signup complete")
}

// Login verifies credentials and sets the HTTP-only session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Error("login lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "db error")
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.HashedPassword) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error("token issue failed", "error", err)
		respondError(w, http.StatusInternalServerError, "token error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	respondMsg(w, http.StatusOK, "login successful")
}

// Logout clears the session cookie. Tokens stay valid until expiry since
// they are stateless; logout only forgets the cookie client-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	respondMsg(w, http.StatusOK, "logged out")
}
