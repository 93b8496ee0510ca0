// Package http provides HTTP middleware and handlers for API key authentication.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
	authUseCase "github.com/syntorio/synthid/internal/auth/usecase"
	apperrors "github.com/syntorio/synthid/internal/errors"
	"github.com/syntorio/synthid/internal/httputil"
)

// APIKeyHeader is the request header carrying the plain API key.
const APIKeyHeader = "X-API-Key"

// AuthenticationMiddleware provides authentication via API key in the X-API-Key header.
//
// The middleware:
// 1. Extracts the plain key from the X-API-Key header
// 2. Validates the key using apiKeyUseCase.Authenticate()
// 3. Stores the authenticated API key in the request context
// 4. Records the key's last-used timestamp (best effort)
// 5. Allows downstream handlers to access the key via GetAPIKey()
//
// Error handling:
//   - Missing X-API-Key header → 401 Unauthorized
//   - Unknown/expired/revoked key → 401 Unauthorized (from APIKeyUseCase.Authenticate)
//   - Other errors → 500 Internal Server Error
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(apiKeyUseCase, logger))
//	router.GET("/protected", func(c *gin.Context) {
//	    apiKey, ok := GetAPIKey(c.Request.Context())
//	    if !ok {
//	        // Should never happen if middleware is working correctly
//	        c.JSON(401, gin.H{"error": "unauthorized"})
//	        return
//	    }
//	    // Use apiKey for attribution and role checks
//	})
func AuthenticationMiddleware(
	apiKeyUseCase authUseCase.APIKeyUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainKey := c.GetHeader(APIKeyHeader)
		if plainKey == "" {
			logger.Debug("authentication failed: missing api key header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		apiKey, err := apiKeyUseCase.Authenticate(c.Request.Context(), plainKey)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Record last use; failures must not block the request.
		if err := apiKeyUseCase.TouchLastUsed(c.Request.Context(), apiKey.ID); err != nil {
			logger.Debug("failed to record api key last use",
				slog.String("api_key_id", apiKey.ID.String()),
				slog.String("error", err.Error()))
		}

		// Store authenticated key in context
		ctx := WithAPIKey(c.Request.Context(), apiKey)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("api_key_id", apiKey.ID.String()),
			slog.String("api_key_name", apiKey.Name))

		c.Next()
	}
}

// AdminRequiredMiddleware restricts a route to API keys with the admin role.
//
// This middleware MUST be used after AuthenticationMiddleware, as it requires an
// authenticated API key to be present in the request context.
//
// Error handling:
//   - No key in context → 401 Unauthorized (AuthenticationMiddleware not run)
//   - Key lacks admin role → 403 Forbidden
func AdminRequiredMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey, ok := GetAPIKey(c.Request.Context())
		if !ok || apiKey == nil {
			logger.Debug("authorization failed: no authenticated api key in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !apiKey.IsAdmin() {
			logger.Debug("authorization failed: admin role required",
				slog.String("api_key_id", apiKey.ID.String()),
				slog.String("api_key_name", apiKey.Name),
				slog.String("role", string(apiKey.Role)))
			httputil.HandleErrorGin(c, authDomain.ErrAdminRequired, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
