package app

import (
	"fmt"

	profilesHTTP "github.com/syntorio/synthid/internal/profiles/http"
	profilesRepository "github.com/syntorio/synthid/internal/profiles/repository"
	profilesUseCase "github.com/syntorio/synthid/internal/profiles/usecase"
)

// ProfileRepository returns the profile repository based on database driver.
func (c *Container) ProfileRepository() (profilesUseCase.ProfileRepository, error) {
	var err error
	c.profileRepositoryInit.Do(func() {
		c.profileRepository, err = c.initProfileRepository()
		if err != nil {
			c.initErrors["profileRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["profileRepository"]; exists {
		return nil, storedErr
	}
	return c.profileRepository, nil
}

// ProfileUseCase returns the profile use case.
func (c *Container) ProfileUseCase() (profilesUseCase.ProfileUseCase, error) {
	var err error
	c.profileUseCaseInit.Do(func() {
		c.profileUseCase, err = c.initProfileUseCase()
		if err != nil {
			c.initErrors["profileUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["profileUseCase"]; exists {
		return nil, storedErr
	}
	return c.profileUseCase, nil
}

// ProfileHandler returns the profile HTTP handler.
func (c *Container) ProfileHandler() (*profilesHTTP.ProfileHandler, error) {
	useCase, err := c.ProfileUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile use case for profile handler: %w", err)
	}
	return profilesHTTP.NewProfileHandler(useCase, c.Logger()), nil
}

// initProfileRepository creates the profile repository instance.
func (c *Container) initProfileRepository() (profilesUseCase.ProfileRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for profile repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return profilesRepository.NewMySQLProfileRepository(db), nil
	case "postgres":
		return profilesRepository.NewPostgreSQLProfileRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initProfileUseCase creates the profile use case with all its dependencies.
func (c *Container) initProfileUseCase() (profilesUseCase.ProfileUseCase, error) {
	profileRepo, err := c.ProfileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile repository for profile use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for profile use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for profile use case: %w", err)
	}

	useCase := profilesUseCase.NewProfileUseCase(
		txManager,
		c.DictionaryRegistry(),
		c.IdentityModule(),
		c.FinanceModule(),
		profileRepo,
		c.Logger(),
		c.config.GenerationSeed,
		nil,
	)

	return profilesUseCase.NewProfileUseCaseWithMetrics(useCase, businessMetrics), nil
}
