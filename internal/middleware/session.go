package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kkiihun/global-board/internal/auth"
	"github.com/kkiihun/global-board/internal/db"
	"github.com/kkiihun/global-board/internal/models"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// Session resolves the access_token cookie to a stored user and injects it
// into the request context. Requests without a valid session get 401;
// handlers behind this middleware can assume UserFrom succeeds.
func Session(store *db.Store, tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookie string
			if c, err := r.Cookie(auth.SessionCookie); err == nil {
				cookie = c.Value
			}

			user, err := auth.CurrentUser(r.Context(), store, tokens, cookie)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthorized) {
					writeError(w, http.StatusUnauthorized, "login required")
				} else {
					writeError(w, http.StatusInternalServerError, "db error")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the user injected by Session, if any.
func UserFrom(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	return user, ok && user != nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
