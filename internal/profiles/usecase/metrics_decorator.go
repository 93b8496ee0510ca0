package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/syntorio/synthid/internal/metrics"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
)

// profileUseCaseWithMetrics decorates ProfileUseCase with metrics instrumentation.
type profileUseCaseWithMetrics struct {
	next    ProfileUseCase
	metrics metrics.BusinessMetrics
}

// NewProfileUseCaseWithMetrics wraps a ProfileUseCase with metrics recording.
func NewProfileUseCaseWithMetrics(useCase ProfileUseCase, m metrics.BusinessMetrics) ProfileUseCase {
	return &profileUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *profileUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.metrics.RecordOperation(ctx, "profiles", operation, status)
	p.metrics.RecordDuration(ctx, "profiles", operation, time.Since(start), status)
}

// Generate records metrics for profile generation operations.
func (p *profileUseCaseWithMetrics) Generate(
	ctx context.Context,
	input GenerateInput,
) (*profilesDomain.Profile, error) {
	start := time.Now()
	profile, err := p.next.Generate(ctx, input)
	p.record(ctx, "profile_generate", start, err)
	return profile, err
}

// Get records metrics for profile retrieval operations.
func (p *profileUseCaseWithMetrics) Get(
	ctx context.Context,
	profileID uuid.UUID,
) (*profilesDomain.Profile, error) {
	start := time.Now()
	profile, err := p.next.Get(ctx, profileID)
	p.record(ctx, "profile_get", start, err)
	return profile, err
}

// List records metrics for profile listing operations.
func (p *profileUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*profilesDomain.Profile, error) {
	start := time.Now()
	profiles, err := p.next.List(ctx, offset, limit)
	p.record(ctx, "profile_list", start, err)
	return profiles, err
}

// Delete records metrics for profile deletion operations.
func (p *profileUseCaseWithMetrics) Delete(ctx context.Context, profileID uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, profileID)
	p.record(ctx, "profile_delete", start, err)
	return err
}

// CleanExpired records metrics for profile cleanup operations.
func (p *profileUseCaseWithMetrics) CleanExpired(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	start := time.Now()
	affected, err := p.next.CleanExpired(ctx, retention)
	p.record(ctx, "profile_clean_expired", start, err)
	return affected, err
}

// CountExpired records metrics for profile cleanup preview operations.
func (p *profileUseCaseWithMetrics) CountExpired(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	start := time.Now()
	count, err := p.next.CountExpired(ctx, retention)
	p.record(ctx, "profile_count_expired", start, err)
	return count, err
}
