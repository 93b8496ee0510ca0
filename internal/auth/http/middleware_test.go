package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
	"github.com/syntorio/synthid/internal/auth/http/mocks"
)

func setupTestRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware...)
	router.GET("/protected", func(c *gin.Context) {
		apiKey, ok := GetAPIKey(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no api key in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"api_key_id": apiKey.ID.String()})
	})
	return router
}

func TestAuthenticationMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Success", func(t *testing.T) {
		mockUseCase := new(mocks.MockAPIKeyUseCase)
		apiKey := testStoredAPIKey()
		mockUseCase.On("Authenticate", mock.Anything, "sk_valid-key").Return(apiKey, nil)
		mockUseCase.On("TouchLastUsed", mock.Anything, apiKey.ID).Return(nil)

		router := setupTestRouter(AuthenticationMiddleware(mockUseCase, logger))
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(APIKeyHeader, "sk_valid-key")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), apiKey.ID.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_LastUsedFailureDoesNotBlock", func(t *testing.T) {
		mockUseCase := new(mocks.MockAPIKeyUseCase)
		apiKey := testStoredAPIKey()
		mockUseCase.On("Authenticate", mock.Anything, "sk_valid-key").Return(apiKey, nil)
		mockUseCase.On("TouchLastUsed", mock.Anything, apiKey.ID).Return(assert.AnError)

		router := setupTestRouter(AuthenticationMiddleware(mockUseCase, logger))
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(APIKeyHeader, "sk_valid-key")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		mockUseCase := new(mocks.MockAPIKeyUseCase)

		router := setupTestRouter(AuthenticationMiddleware(mockUseCase, logger))
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockUseCase.AssertNotCalled(t, "Authenticate")
	})

	t.Run("Error_InvalidKey", func(t *testing.T) {
		mockUseCase := new(mocks.MockAPIKeyUseCase)
		mockUseCase.On("Authenticate", mock.Anything, "sk_bad-key").
			Return(nil, authDomain.ErrInvalidAPIKey)

		router := setupTestRouter(AuthenticationMiddleware(mockUseCase, logger))
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(APIKeyHeader, "sk_bad-key")
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockUseCase.AssertNotCalled(t, "TouchLastUsed")
	})
}

func TestAdminRequiredMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authenticateAs := func(apiKey *authDomain.APIKey) gin.HandlerFunc {
		return func(c *gin.Context) {
			ctx := WithAPIKey(c.Request.Context(), apiKey)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		}
	}

	t.Run("Success_AdminRole", func(t *testing.T) {
		apiKey := testStoredAPIKey()
		apiKey.Role = authDomain.RoleAdmin

		router := setupTestRouter(authenticateAs(apiKey), AdminRequiredMiddleware(logger))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Error_UserRole", func(t *testing.T) {
		apiKey := testStoredAPIKey()

		router := setupTestRouter(authenticateAs(apiKey), AdminRequiredMiddleware(logger))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("Error_NoAuthenticatedKey", func(t *testing.T) {
		router := setupTestRouter(AdminRequiredMiddleware(logger))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authenticateAs := func(apiKey *authDomain.APIKey) gin.HandlerFunc {
		return func(c *gin.Context) {
			ctx := WithAPIKey(c.Request.Context(), apiKey)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		}
	}

	t.Run("Success_WithinLimit", func(t *testing.T) {
		apiKey := testStoredAPIKey()
		router := setupTestRouter(authenticateAs(apiKey), RateLimitMiddleware(10, 5, logger))

		for i := 0; i < 5; i++ {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/protected", nil))
			assert.Equal(t, http.StatusOK, recorder.Code)
		}
	})

	t.Run("Error_BurstExceeded", func(t *testing.T) {
		apiKey := testStoredAPIKey()
		router := setupTestRouter(authenticateAs(apiKey), RateLimitMiddleware(0.001, 2, logger))

		for i := 0; i < 2; i++ {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/protected", nil))
			assert.Equal(t, http.StatusOK, recorder.Code)
		}

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
	})

	t.Run("Error_NoAuthenticatedKey", func(t *testing.T) {
		router := setupTestRouter(RateLimitMiddleware(10, 5, logger))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
