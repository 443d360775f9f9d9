package handler

import (
	"context"

	"github.com/hollowdeep/garrison/internal/player"
)

type identityContextKey struct{}

// WithIdentity stores the caller identity in the context. The server's
// identity middleware calls this from the forwarded headers.
func WithIdentity(ctx context.Context, id player.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext retrieves the caller identity from the context. The
// zero Identity means the gateway forwarded no user.
func IdentityFromContext(ctx context.Context) player.Identity {
	if id, ok := ctx.Value(identityContextKey{}).(player.Identity); ok {
		return id
	}
	return player.Identity{}
}
