// Package http provides HTTP handlers for profile generation and retrieval.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/syntorio/synthid/internal/export"
	"github.com/syntorio/synthid/internal/httputil"
	"github.com/syntorio/synthid/internal/profiles/http/dto"
	profilesUseCase "github.com/syntorio/synthid/internal/profiles/usecase"
	customValidation "github.com/syntorio/synthid/internal/validation"
)

// timeNow is swapped in tests to freeze export timestamps.
var timeNow = time.Now

// ProfileHandler handles HTTP requests for profile operations.
type ProfileHandler struct {
	profileUseCase profilesUseCase.ProfileUseCase
	logger         *slog.Logger
}

// NewProfileHandler creates a new profile handler with required dependencies.
func NewProfileHandler(
	profileUseCase profilesUseCase.ProfileUseCase,
	logger *slog.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// parseProfileID extracts and validates the profile ID path parameter.
func parseProfileID(c *gin.Context) (uuid.UUID, error) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid profile id: must be a UUID")
	}
	return profileID, nil
}

// GenerateHandler generates a new profile and persists it.
// POST /v1/profiles
// Returns 201 Created with the full generated payload.
func (h *ProfileHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateProfileRequest

	// An empty body is a valid request: everything falls back to defaults.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := profilesUseCase.GenerateInput{
		Seed:              req.Seed,
		Identity:          req.IdentityParams(),
		IncludeFinance:    req.IncludeFinance,
		Currency:          req.Currency,
		CardsRange:        req.CardsRange.ToEngineRange(),
		TransactionsRange: req.TransactionsRange.ToEngineRange(),
	}

	profile, err := h.profileUseCase.Generate(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProfileToResponse(profile))
}

// GetHandler retrieves a stored profile by ID.
// GET /v1/profiles/:id
// Returns 200 OK with the full stored payload.
func (h *ProfileHandler) GetHandler(c *gin.Context) {
	profileID, err := parseProfileID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	profile, err := h.profileUseCase.Get(c.Request.Context(), profileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProfileToResponse(profile))
}

// ListHandler retrieves profiles with pagination support.
// GET /v1/profiles?offset=0&limit=50
// Returns 200 OK with profile summaries, newest first.
func (h *ProfileHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	profiles, err := h.profileUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProfilesToListResponse(profiles))
}

// DeleteHandler soft deletes a stored profile by ID.
// DELETE /v1/profiles/:id
// Returns 204 No Content.
func (h *ProfileHandler) DeleteHandler(c *gin.Context) {
	profileID, err := parseProfileID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.profileUseCase.Delete(c.Request.Context(), profileID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ExportHandler renders a stored profile as a downloadable JSON bundle.
// GET /v1/profiles/:id/export
// Returns 200 OK with a Content-Disposition attachment header.
func (h *ProfileHandler) ExportHandler(c *gin.Context) {
	profileID, err := parseProfileID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	profile, err := h.profileUseCase.Get(c.Request.Context(), profileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	bundle := export.NewBundle(profile, timeNow())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bundle.Filename()))
	c.JSON(http.StatusOK, bundle)
}
