// Package onboarding tracks whether the reader has finished the first-run flow.
package onboarding

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/litnotes/litnotes/internal/store"
)

// Flag reads and writes the first-run flag under its own store key.
type Flag struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a Flag over s. A nil logger discards output.
func New(s store.Store, logger *slog.Logger) *Flag {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Flag{store: s, logger: logger}
}

// Completed reports whether onboarding has been completed.
// A missing or unreadable value counts as not completed.
func (f *Flag) Completed(ctx context.Context) bool {
	data, err := f.store.Get(ctx, store.KeyOnboarding)
	if store.IsNotFound(err) {
		return false
	}
	if err != nil {
		f.logger.Warn("failed to read onboarding flag", slog.String("error", err.Error()))
		return false
	}

	done, err := strconv.ParseBool(string(data))
	if err != nil {
		f.logger.Warn("invalid onboarding flag", slog.String("value", string(data)))
		return false
	}
	return done
}

// SetCompleted stores the flag.
func (f *Flag) SetCompleted(ctx context.Context, done bool) error {
	if err := f.store.Set(ctx, store.KeyOnboarding, []byte(strconv.FormatBool(done))); err != nil {
		return fmt.Errorf("set onboarding flag: %w", err)
	}
	return nil
}
