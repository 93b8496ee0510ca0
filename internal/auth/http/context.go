// Package http provides HTTP middleware and handlers for API key authentication.
package http

import (
	"context"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
)

// apiKeyContextKey is a context key type for storing authenticated API keys.
type apiKeyContextKey struct{}

// WithAPIKey stores an authenticated API key in the context.
// This is typically called by the authentication middleware after successful key validation.
func WithAPIKey(ctx context.Context, apiKey *authDomain.APIKey) context.Context {
	return context.WithValue(ctx, apiKeyContextKey{}, apiKey)
}

// GetAPIKey retrieves an authenticated API key from the context.
// Returns (apiKey, true) if a key is present, or (nil, false) if no key was set.
// This is typically called by handlers or subsequent middleware that need the caller identity.
func GetAPIKey(ctx context.Context) (*authDomain.APIKey, bool) {
	apiKey, ok := ctx.Value(apiKeyContextKey{}).(*authDomain.APIKey)
	return apiKey, ok
}
