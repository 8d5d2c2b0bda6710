// Package di provides dependency injection configuration for the LitNotes server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/litnotes/litnotes/internal/config"
	"github.com/litnotes/litnotes/internal/di/providers"
	"github.com/litnotes/litnotes/internal/library"
	"github.com/litnotes/litnotes/internal/notify"
	"github.com/litnotes/litnotes/internal/onboarding"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()
	do.Provide(injector, providers.ProvideConfig)
	Register(injector)
	return injector
}

// Register adds every provider except the configuration, which the caller
// supplies (see NewContainer, or do.ProvideValue in tests).
func Register(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideLogger)

	// Persistence
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideNotifier)
	do.Provide(injector, providers.ProvideLibrary)
	do.Provide(injector, providers.ProvideOnboarding)

	// Observers
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSSEManager)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
}

// Bootstrap initializes all services and returns once the HTTP server is listening in the background.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.LoggerHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*notify.Notifier](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*library.Repository](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*onboarding.Flag](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SSEManagerHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
