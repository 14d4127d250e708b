package auth

import "context"

// TokenGenerator issues bearer tokens for authenticated users.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
