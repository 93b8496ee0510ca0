package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
	"github.com/syntorio/synthid/internal/auth/http/mocks"
)

func setupTestHandler() (*APIKeyHandler, *mocks.MockAPIKeyUseCase) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(mocks.MockAPIKeyUseCase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewAPIKeyHandler(mockUseCase, logger)
	return handler, mockUseCase
}

func createTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	var reqBody io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	c.Request = httptest.NewRequest(method, path, reqBody)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}

	return c, recorder
}

func testStoredAPIKey() *authDomain.APIKey {
	return &authDomain.APIKey{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       "ci-pipeline",
		LookupHash: "a1b2c3",
		KeyHash:    "$argon2id$v=19$m=65536,t=2,p=2$salt$hash",
		Role:       authDomain.RoleUser,
		Status:     authDomain.StatusActive,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestAPIKeyHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler()

		apiKey := testStoredAPIKey()
		output := &authDomain.CreateAPIKeyOutput{
			APIKey:   apiKey,
			PlainKey: "sk_plain-key-shown-once",
		}
		mockUseCase.On("Create", mock.Anything, mock.MatchedBy(func(input *authDomain.CreateAPIKeyInput) bool {
			return input.Name == "ci-pipeline" && input.Role == authDomain.RoleUser
		})).Return(output, nil)

		c, recorder := createTestContext(http.MethodPost, "/v1/admin/api-keys", map[string]any{
			"name": "ci-pipeline",
			"role": "user",
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "sk_plain-key-shown-once", response["key"])
		assert.Equal(t, apiKey.ID.String(), response["id"])
		assert.Equal(t, "active", response["status"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingName", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler()

		c, recorder := createTestContext(http.MethodPost, "/v1/admin/api-keys", map[string]any{
			"role": "user",
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("Error_UnknownRole", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler()

		c, recorder := createTestContext(http.MethodPost, "/v1/admin/api-keys", map[string]any{
			"name": "ci-pipeline",
			"role": "superuser",
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler()

		mockUseCase.On("Create", mock.Anything, mock.AnythingOfType("*domain.CreateAPIKeyInput")).
			Return(nil, assert.AnError)

		c, recorder := createTestContext(http.MethodPost, "/v1/admin/api-keys", map[string]any{
			"name": "ci-pipeline",
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestAPIKeyHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler()

		apiKeys := []*authDomain.APIKey{testStoredAPIKey(), testStoredAPIKey()}
		mockUseCase.On("List", mock.Anything, 0, 50).Return(apiKeys, nil)

		c, recorder := createTestContext(http.MethodGet, "/v1/admin/api-keys", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string][]map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Len(t, response["data"], 2)
		// Secret material must never leave the server on list.
		_, hasKey := response["data"][0]["key"]
		assert.False(t, hasKey)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler()

		c, recorder := createTestContext(http.MethodGet, "/v1/admin/api-keys?limit=500", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		mockUseCase.AssertNotCalled(t, "List")
	})
}

func TestAPIKeyHandler_RevokeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler()

		apiKeyID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Revoke", mock.Anything, apiKeyID).Return(nil)

		c, recorder := createTestContext(http.MethodDelete, "/v1/admin/api-keys/"+apiKeyID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: apiKeyID.String()}}
		handler.RevokeHandler(c)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler()

		c, recorder := createTestContext(http.MethodDelete, "/v1/admin/api-keys/not-a-uuid", nil)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
		handler.RevokeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		mockUseCase.AssertNotCalled(t, "Revoke")
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler()

		apiKeyID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Revoke", mock.Anything, apiKeyID).Return(authDomain.ErrAPIKeyNotFound)

		c, recorder := createTestContext(http.MethodDelete, "/v1/admin/api-keys/"+apiKeyID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: apiKeyID.String()}}
		handler.RevokeHandler(c)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		mockUseCase.AssertExpectations(t)
	})
}
