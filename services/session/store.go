package session

import (
	"context"
	"errors"
)

// ErrEmptyClientID is returned when a store is scoped to no client.
var ErrEmptyClientID = errors.New("session: empty client id")

// Store is one client's local key-value storage. Values are plain strings
// with no expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Backend holds the stores of many clients.
type Backend interface {
	Scope(clientID string) (Store, error)
}
