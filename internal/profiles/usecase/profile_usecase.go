package usecase

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/syntorio/synthid/internal/database"
	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/finance"
	"github.com/syntorio/synthid/internal/engine/identity"
	"github.com/syntorio/synthid/internal/engine/random"
	profilesDomain "github.com/syntorio/synthid/internal/profiles/domain"
)

// profileUseCase implements the ProfileUseCase interface.
type profileUseCase struct {
	txManager      database.TxManager
	registry       *dictionary.Registry
	identityModule *identity.Module
	financeModule  *finance.Module
	profileRepo    ProfileRepository
	logger         *slog.Logger

	// seedSource drives the seed lineage when the caller does not pin a
	// seed. nil means seeds are derived from the wall clock.
	seedSource *random.Source
	seedMu     sync.Mutex

	now func() time.Time
}

// NewProfileUseCase creates a new profile use case instance. baseSeed zero
// disables the seed lineage and derives per-call seeds from the clock.
func NewProfileUseCase(
	txManager database.TxManager,
	registry *dictionary.Registry,
	identityModule *identity.Module,
	financeModule *finance.Module,
	profileRepo ProfileRepository,
	logger *slog.Logger,
	baseSeed int64,
	now func() time.Time,
) ProfileUseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = slog.Default()
	}
	uc := &profileUseCase{
		txManager:      txManager,
		registry:       registry,
		identityModule: identityModule,
		financeModule:  financeModule,
		profileRepo:    profileRepo,
		logger:         logger,
		now:            now,
	}
	if baseSeed != 0 {
		uc.seedSource = random.New(baseSeed)
	}
	return uc
}

// resolveSeed materializes the seed for one generation call so the stored
// profile can always be regenerated from it.
func (p *profileUseCase) resolveSeed(requested *int64) int64 {
	if requested != nil {
		return *requested
	}
	if p.seedSource != nil {
		p.seedMu.Lock()
		defer p.seedMu.Unlock()
		return int64(p.seedSource.Next() * math.MaxInt32)
	}
	return p.now().UnixNano()
}

// Generate runs the identity module, optionally the finance module, and
// persists the combined profile.
func (p *profileUseCase) Generate(
	ctx context.Context,
	input GenerateInput,
) (*profilesDomain.Profile, error) {
	seed := p.resolveSeed(input.Seed)
	engineCtx := engine.NewContext(random.New(seed), p.registry, p.now)

	identityResult, err := p.identityModule.Generate(input.Identity, engineCtx)
	if err != nil {
		return nil, err
	}

	profileID := uuid.Must(uuid.NewV7())

	profile := &profilesDomain.Profile{
		ID:        profileID,
		Seed:      seed,
		Identity:  identityResult.Payload,
		APIKeyID:  input.APIKeyID,
		CreatedAt: p.now().UTC(),
	}

	if input.IncludeFinance {
		financeResult, err := p.financeModule.Generate(finance.Params{
			PersonID:          profileID.String(),
			Person:            &identityResult.Payload,
			Currency:          input.Currency,
			CardsRange:        input.CardsRange,
			TransactionsRange: input.TransactionsRange,
		}, engineCtx)
		if err != nil {
			return nil, err
		}
		profile.Finance = &financeResult.Payload
	}

	if validation := p.identityModule.Validate(&profile.Identity); !validation.Valid {
		p.logger.Warn("generated identity failed self-validation",
			"profile_id", profileID.String(),
			"issues", len(validation.Issues),
		)
	}

	if err := p.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// Get retrieves a stored profile by its identifier.
func (p *profileUseCase) Get(
	ctx context.Context,
	profileID uuid.UUID,
) (*profilesDomain.Profile, error) {
	return p.profileRepo.Get(ctx, profileID)
}

// List retrieves stored profiles, newest first, with pagination.
func (p *profileUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*profilesDomain.Profile, error) {
	return p.profileRepo.List(ctx, offset, limit)
}

// Delete performs a soft delete on a stored profile.
func (p *profileUseCase) Delete(ctx context.Context, profileID uuid.UUID) error {
	// The existence check and the soft delete run in one transaction.
	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := p.profileRepo.Get(ctx, profileID); err != nil {
			return err
		}
		return p.profileRepo.Delete(ctx, profileID)
	})
}

// CleanExpired soft-deletes profiles generated before now minus retention.
func (p *profileUseCase) CleanExpired(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	cutoff := p.now().UTC().Add(-retention)
	return p.profileRepo.DeleteOlderThan(ctx, cutoff)
}

// CountExpired reports how many profiles fall outside the retention period.
func (p *profileUseCase) CountExpired(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	cutoff := p.now().UTC().Add(-retention)
	return p.profileRepo.CountOlderThan(ctx, cutoff)
}
