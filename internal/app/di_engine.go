package app

import (
	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/finance"
	"github.com/syntorio/synthid/internal/engine/identity"
)

// DictionaryRegistry returns the reference dataset registry. A configured
// dictionary path overrides the embedded snapshot.
func (c *Container) DictionaryRegistry() *dictionary.Registry {
	c.registryInit.Do(func() {
		if c.config.DictionaryPath != "" {
			c.registry = dictionary.NewRegistry(dictionary.NewDirLoader(c.config.DictionaryPath))
			return
		}
		c.registry = dictionary.NewEmbeddedRegistry()
	})
	return c.registry
}

// IdentityModule returns the identity generation module.
func (c *Container) IdentityModule() *identity.Module {
	c.identityModuleInit.Do(func() {
		c.identityModule = identity.New()
	})
	return c.identityModule
}

// FinanceModule returns the finance generation module.
func (c *Container) FinanceModule() *finance.Module {
	c.financeModuleInit.Do(func() {
		c.financeModule = finance.New()
	})
	return c.financeModule
}
