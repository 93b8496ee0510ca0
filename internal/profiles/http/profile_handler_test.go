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

	"github.com/syntorio/synthid/internal/engine/finance"
	"github.com/syntorio/synthid/internal/engine/identity"
	apperrors "github.com/syntorio/synthid/internal/errors"
	"github.com/syntorio/synthid/internal/export"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
	"github.com/syntorio/synthid/internal/profiles/http/dto"
	"github.com/syntorio/synthid/internal/profiles/http/mocks"
	profilesUseCase "github.com/syntorio/synthid/internal/profiles/usecase"
)

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*ProfileHandler, *mocks.MockProfileUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockProfileUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewProfileHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func testProfile() *profilesDomain.Profile {
	return &profilesDomain.Profile{
		ID:   uuid.Must(uuid.NewV7()),
		Seed: 42,
		Identity: identity.Payload{
			Personal: identity.PersonalInfo{
				FirstName:  "Иван",
				LastName:   "Иванов",
				MiddleName: "Петрович",
				Gender:     identity.GenderMale,
			},
		},
		CreatedAt: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestProfileHandler_GenerateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		seed := int64(42)
		profile := testProfile()
		request := dto.GenerateProfileRequest{
			Seed:   &seed,
			Gender: "male",
			Region: "77",
		}

		mockUseCase.On("Generate", mock.Anything, mock.MatchedBy(func(input profilesUseCase.GenerateInput) bool {
			return input.Seed != nil && *input.Seed == seed &&
				input.Identity.Gender == identity.GenderMale &&
				input.Identity.Region == "77" &&
				!input.IncludeFinance
		})).Return(profile, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/profiles", request)
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, profile.ID.String(), response.ID)
		assert.Equal(t, seed, response.Seed)
		assert.Equal(t, "Иван", response.Identity.Personal.FirstName)
		assert.Nil(t, response.Finance)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_EmptyBody", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		profile := testProfile()
		mockUseCase.On("Generate", mock.Anything, mock.AnythingOfType("usecase.GenerateInput")).
			Return(profile, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/profiles", nil)
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_WithFinance", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		profile := testProfile()
		profile.Finance = &finance.Payload{
			Cards: []finance.Card{{ID: "card-1", PersonID: profile.ID.String()}},
		}

		request := dto.GenerateProfileRequest{
			IncludeFinance: true,
			Currency:       "KZT",
			CardsRange:     &dto.RangeRequest{Min: 2, Max: 3},
		}

		mockUseCase.On("Generate", mock.Anything, mock.MatchedBy(func(input profilesUseCase.GenerateInput) bool {
			return input.IncludeFinance &&
				input.Currency == "KZT" &&
				input.CardsRange != nil && input.CardsRange.Min == 2 && input.CardsRange.Max == 3
		})).Return(profile, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/profiles", request)
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.Finance)
		assert.Len(t, response.Finance.Cards, 1)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidGender", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.GenerateProfileRequest{Gender: "other"}

		c, w := createTestContext(http.MethodPost, "/v1/profiles", request)
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Generate")
	})

	t.Run("Error_InvalidRange", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.GenerateProfileRequest{
			AgeRange: &dto.RangeRequest{Min: 50, Max: 20},
		}

		c, w := createTestContext(http.MethodPost, "/v1/profiles", request)
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Generate")
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Generate", mock.Anything, mock.AnythingOfType("usecase.GenerateInput")).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "bad params")).Once()

		c, w := createTestContext(http.MethodPost, "/v1/profiles", dto.GenerateProfileRequest{})
		handler.GenerateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestProfileHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		profile := testProfile()
		mockUseCase.On("Get", mock.Anything, profile.ID).Return(profile, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/profiles/"+profile.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: profile.ID.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, profile.ID.String(), response.ID)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/profiles/not-a-uuid", nil)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Get")
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		profileID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Get", mock.Anything, profileID).
			Return(nil, profilesDomain.ErrProfileNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/profiles/"+profileID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: profileID.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProfileHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		profiles := []*profilesDomain.Profile{testProfile(), testProfile()}
		mockUseCase.On("List", mock.Anything, 0, 50).Return(profiles, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/profiles", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListProfilesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
		assert.Equal(t, "Иванов Иван Петрович", response.Data[0].FullName)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_CustomPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, 10, 25).
			Return([]*profilesDomain.Profile{}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/profiles?offset=10&limit=25", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/profiles?limit=500", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "List")
	})
}

func TestProfileHandler_DeleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		profileID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Delete", mock.Anything, profileID).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/profiles/"+profileID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: profileID.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		profileID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Delete", mock.Anything, profileID).
			Return(profilesDomain.ErrProfileNotFound).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/profiles/"+profileID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: profileID.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProfileHandler_ExportHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		exportedAt := time.Date(2025, time.June, 20, 9, 0, 0, 0, time.UTC)
		originalNow := timeNow
		timeNow = func() time.Time { return exportedAt }
		defer func() { timeNow = originalNow }()

		profile := testProfile()
		mockUseCase.On("Get", mock.Anything, profile.ID).Return(profile, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/profiles/"+profile.ID.String()+"/export", nil)
		c.Params = gin.Params{{Key: "id", Value: profile.ID.String()}}
		handler.ExportHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t,
			`attachment; filename="profile-`+profile.ID.String()+`.json"`,
			w.Header().Get("Content-Disposition"),
		)

		var bundle export.Bundle
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bundle))
		assert.Equal(t, export.FormatVersion, bundle.FormatVersion)
		assert.Equal(t, profile.ID.String(), bundle.ProfileID)
		assert.Equal(t, profile.Seed, bundle.Seed)
		assert.Equal(t, exportedAt, bundle.ExportedAt)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		profileID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Get", mock.Anything, profileID).
			Return(nil, profilesDomain.ErrProfileNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/profiles/"+profileID.String()+"/export", nil)
		c.Params = gin.Params{{Key: "id", Value: profileID.String()}}
		handler.ExportHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
