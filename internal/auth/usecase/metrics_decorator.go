package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/syntorio/synthid/internal/auth/domain"
	"github.com/syntorio/synthid/internal/metrics"
)

// apiKeyUseCaseWithMetrics decorates APIKeyUseCase with metrics instrumentation.
type apiKeyUseCaseWithMetrics struct {
	next    APIKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewAPIKeyUseCaseWithMetrics wraps an APIKeyUseCase with metrics recording.
func NewAPIKeyUseCaseWithMetrics(useCase APIKeyUseCase, m metrics.BusinessMetrics) APIKeyUseCase {
	return &apiKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *apiKeyUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Create records metrics for API key creation operations.
func (a *apiKeyUseCaseWithMetrics) Create(
	ctx context.Context,
	input *authDomain.CreateAPIKeyInput,
) (*authDomain.CreateAPIKeyOutput, error) {
	start := time.Now()
	output, err := a.next.Create(ctx, input)
	a.record(ctx, "api_key_create", start, err)
	return output, err
}

// Authenticate records metrics for API key authentication operations.
func (a *apiKeyUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	plainKey string,
) (*authDomain.APIKey, error) {
	start := time.Now()
	apiKey, err := a.next.Authenticate(ctx, plainKey)
	a.record(ctx, "api_key_authenticate", start, err)
	return apiKey, err
}

// Revoke records metrics for API key revocation operations.
func (a *apiKeyUseCaseWithMetrics) Revoke(ctx context.Context, apiKeyID uuid.UUID) error {
	start := time.Now()
	err := a.next.Revoke(ctx, apiKeyID)
	a.record(ctx, "api_key_revoke", start, err)
	return err
}

// List records metrics for API key listing operations.
func (a *apiKeyUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.APIKey, error) {
	start := time.Now()
	apiKeys, err := a.next.List(ctx, offset, limit)
	a.record(ctx, "api_key_list", start, err)
	return apiKeys, err
}

// TouchLastUsed records metrics for last-used tracking operations.
func (a *apiKeyUseCaseWithMetrics) TouchLastUsed(ctx context.Context, apiKeyID uuid.UUID) error {
	start := time.Now()
	err := a.next.TouchLastUsed(ctx, apiKeyID)
	a.record(ctx, "api_key_touch_last_used", start, err)
	return err
}
