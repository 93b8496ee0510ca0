package app

import (
	"fmt"

	authHTTP "github.com/syntorio/synthid/internal/auth/http"
	authRepository "github.com/syntorio/synthid/internal/auth/repository"
	authService "github.com/syntorio/synthid/internal/auth/service"
	authUseCase "github.com/syntorio/synthid/internal/auth/usecase"
)

// KeyService returns the API key hashing service.
func (c *Container) KeyService() authService.KeyService {
	c.keyServiceInit.Do(func() {
		c.keyService = authService.NewKeyService()
	})
	return c.keyService
}

// APIKeyRepository returns the API key repository based on database driver.
func (c *Container) APIKeyRepository() (authUseCase.APIKeyRepository, error) {
	var err error
	c.apiKeyRepositoryInit.Do(func() {
		c.apiKeyRepository, err = c.initAPIKeyRepository()
		if err != nil {
			c.initErrors["apiKeyRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyRepository"]; exists {
		return nil, storedErr
	}
	return c.apiKeyRepository, nil
}

// APIKeyUseCase returns the API key use case.
func (c *Container) APIKeyUseCase() (authUseCase.APIKeyUseCase, error) {
	var err error
	c.apiKeyUseCaseInit.Do(func() {
		c.apiKeyUseCase, err = c.initAPIKeyUseCase()
		if err != nil {
			c.initErrors["apiKeyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyUseCase"]; exists {
		return nil, storedErr
	}
	return c.apiKeyUseCase, nil
}

// APIKeyHandler returns the API key HTTP handler.
func (c *Container) APIKeyHandler() (*authHTTP.APIKeyHandler, error) {
	useCase, err := c.APIKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key use case for api key handler: %w", err)
	}
	return authHTTP.NewAPIKeyHandler(useCase, c.Logger()), nil
}

// initAPIKeyRepository creates the API key repository instance.
func (c *Container) initAPIKeyRepository() (authUseCase.APIKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for api key repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLAPIKeyRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLAPIKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAPIKeyUseCase creates the API key use case with all its dependencies.
func (c *Container) initAPIKeyUseCase() (authUseCase.APIKeyUseCase, error) {
	apiKeyRepo, err := c.APIKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key repository for api key use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for api key use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for api key use case: %w", err)
	}

	useCase := authUseCase.NewAPIKeyUseCase(txManager, apiKeyRepo, c.KeyService())

	return authUseCase.NewAPIKeyUseCaseWithMetrics(useCase, businessMetrics), nil
}
