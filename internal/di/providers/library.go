package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/litnotes/litnotes/internal/library"
	"github.com/litnotes/litnotes/internal/notify"
	"github.com/litnotes/litnotes/internal/onboarding"
)

// ProvideNotifier provides the change notifier shared by every observer.
func ProvideNotifier(i do.Injector) (*notify.Notifier, error) {
	log := do.MustInvoke[*LoggerHandle](i)
	return notify.New(log.Logger), nil
}

// ProvideLibrary loads the persisted state into the repository.
func ProvideLibrary(i do.Injector) (*library.Repository, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	notifier := do.MustInvoke[*notify.Notifier](i)
	log := do.MustInvoke[*LoggerHandle](i)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	return library.Open(ctx, library.Options{
		Store:    storeHandle.Store,
		Notifier: notifier,
		Logger:   log.With("component", "library"),
	})
}

// ProvideOnboarding provides the first-run flag.
func ProvideOnboarding(i do.Injector) (*onboarding.Flag, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*LoggerHandle](i)
	return onboarding.New(storeHandle.Store, log.Logger), nil
}
