// Package di provides dependency injection configuration for the Bookish
// engine.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookishapp/bookish-core/internal/config"
	"github.com/bookishapp/bookish-core/internal/di/providers"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Persistence and notifications
	do.Provide(injector, providers.ProvideAdapter)
	do.Provide(injector, providers.ProvideBus)

	// State stores
	do.Provide(injector, providers.ProvideLibrary)
	do.Provide(injector, providers.ProvideSocial)
	do.Provide(injector, providers.ProvideChallenges)
	do.Provide(injector, providers.ProvideTheme)
	do.Provide(injector, providers.ProvideProfile)

	// Search
	do.Provide(injector, providers.ProvideSearchIndex)

	// Backup and restore
	do.Provide(injector, providers.ProvideBackup)
	do.Provide(injector, providers.ProvideRestorer)

	// Services
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideSocialService)
	do.Provide(injector, providers.ProvideChallengesService)

	// First-run fixtures
	do.Provide(injector, providers.ProvideSeed)

	return injector
}

// Bootstrap initializes all services and returns nil on success. This
// triggers lazy initialization of every provider so configuration or
// database problems surface at startup, not first use.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.AdapterHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.BusHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.LibraryHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SocialHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.ChallengesHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.ThemeHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.ProfileHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.LibraryService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.SocialService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.ChallengesService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SeedResult](injector); err != nil {
		return err
	}
	return nil
}
