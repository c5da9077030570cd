// Package identity carries the acting user through a request context.
package identity

import (
	"context"
	"errors"

	"github.com/nhle/loan-checklist/internal/model"
)

// ErrNoUser is returned when no user is attached to the context.
var ErrNoUser = errors.New("no authenticated user")

type ctxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the user attached by WithUser.
func FromContext(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(model.User)
	return u, ok
}

// ContextSession resolves the current user from the request context.
type ContextSession struct{}

// CurrentUser returns the user attached to ctx.
func (ContextSession) CurrentUser(ctx context.Context) (*model.User, error) {
	u, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoUser
	}
	return &u, nil
}

// StaticSession always acts as one user. Used by the CLI.
type StaticSession struct {
	User model.User
}

// CurrentUser returns the configured user.
func (s StaticSession) CurrentUser(context.Context) (*model.User, error) {
	u := s.User
	return &u, nil
}
