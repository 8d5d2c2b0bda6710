package store

import (
	"context"
	"sync"
	"sync/atomic"
)

// Failing wraps a Store and can be switched to fail writes and/or reads.
// It exists to exercise the core's persistence-failure handling.
type Failing struct {
	Store

	failWrites atomic.Bool
	failReads  atomic.Bool

	mu       sync.Mutex
	failKeys map[string]bool
}

// NewFailing wraps inner. Failure injection starts off.
func NewFailing(inner Store) *Failing {
	return &Failing{Store: inner}
}

// FailWrites toggles failure of Set and Delete.
func (f *Failing) FailWrites(fail bool) {
	f.failWrites.Store(fail)
}

// FailReads toggles failure of Get.
func (f *Failing) FailReads(fail bool) {
	f.failReads.Store(fail)
}

// FailReadsOf toggles failure of Get for a single key.
func (f *Failing) FailReadsOf(key string, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKeys == nil {
		f.failKeys = make(map[string]bool)
	}
	f.failKeys[key] = fail
}

// Get implements Store.
func (f *Failing) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failReads.Load() || f.keyFails(key) {
		return nil, ErrInjected
	}
	return f.Store.Get(ctx, key)
}

// Set implements Store.
func (f *Failing) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites.Load() {
		return ErrInjected
	}
	return f.Store.Set(ctx, key, value)
}

// Delete implements Store.
func (f *Failing) Delete(ctx context.Context, key string) error {
	if f.failWrites.Load() {
		return ErrInjected
	}
	return f.Store.Delete(ctx, key)
}

func (f *Failing) keyFails(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failKeys[key]
}
