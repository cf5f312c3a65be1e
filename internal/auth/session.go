package auth

import (
	"context"
	"errors"

	"github.com/kkiihun/global-board/internal/db"
	"github.com/kkiihun/global-board/internal/models"
)

// ErrUnauthorized is returned by CurrentUser when the request carries no
// usable session: missing cookie, bad token, or a subject that no longer
// exists in the store.
var ErrUnauthorized = errors.New("login required")

// CurrentUser resolves a session cookie value to a stored user. It is the
// strict variant used to gate every mutating operation.
func CurrentUser(ctx context.Context, store *db.Store, tokens *Tokens, cookie string) (*models.User, error) {
	if cookie == "" {
		return nil, ErrUnauthorized
	}
	userID, err := tokens.Decode(cookie)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// CurrentUserOptional is the render-path variant: it never fails, returning
// nil whenever CurrentUser would have returned an error.
func CurrentUserOptional(ctx context.Context, store *db.Store, tokens *Tokens, cookie string) *models.User {
	user, err := CurrentUser(ctx, store, tokens, cookie)
	if err != nil {
		return nil
	}
	return user
}
