package storage

import (
	"context"
	"errors"
)

// ErrNotLoaded is returned when a provider is used before Init or Load
var ErrNotLoaded = errors.New("storage not loaded")

// Provider is an opaque string key-value store. Values are whole documents;
// there is no sub-key update primitive.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	// CompareAndSwap writes value only if the current value of key still
	// equals old (or, when oldPresent is false, the key is still absent).
	// It reports whether the write happened.
	CompareAndSwap(ctx context.Context, key, old string, oldPresent bool, value string) (bool, error)
	RemoveItem(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)

	// Utils
	GetConfigPath() string
}
