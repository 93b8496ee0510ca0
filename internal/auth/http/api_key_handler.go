package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/syntorio/synthid/internal/auth/http/dto"
	authUseCase "github.com/syntorio/synthid/internal/auth/usecase"
	apperrors "github.com/syntorio/synthid/internal/errors"
	"github.com/syntorio/synthid/internal/httputil"
	"github.com/syntorio/synthid/internal/validation"
)

// APIKeyHandler handles HTTP requests for API key management.
type APIKeyHandler struct {
	apiKeyUseCase authUseCase.APIKeyUseCase
	logger        *slog.Logger
}

// NewAPIKeyHandler creates a new API key handler instance.
func NewAPIKeyHandler(apiKeyUseCase authUseCase.APIKeyUseCase, logger *slog.Logger) *APIKeyHandler {
	return &APIKeyHandler{apiKeyUseCase: apiKeyUseCase, logger: logger}
}

// CreateHandler handles POST /v1/admin/api-keys requests.
// The plain key appears in the response exactly once and is never stored.
func (h *APIKeyHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()), h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, validation.WrapValidationError(err), h.logger)
		return
	}

	input := req.ToCreateInput()
	output, err := h.apiKeyUseCase.Create(c.Request.Context(), &input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreateOutputToResponse(output))
}

// ListHandler handles GET /v1/admin/api-keys requests.
func (h *APIKeyHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	apiKeys, err := h.apiKeyUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAPIKeysToListResponse(apiKeys))
}

// RevokeHandler handles DELETE /v1/admin/api-keys/:id requests.
func (h *APIKeyHandler) RevokeHandler(c *gin.Context) {
	apiKeyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid api key id"), h.logger)
		return
	}

	if err := h.apiKeyUseCase.Revoke(c.Request.Context(), apiKeyID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
