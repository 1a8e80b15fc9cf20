package session

import (
	"context"
	"errors"
)

var (
	ErrUnknownKey = errors.New("unknown session key")
)

// Store is durable key/value storage for session fields. Last write wins; there is no
// expiry. Removing an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key Key) (value string, ok bool, err error)
	Set(ctx context.Context, key Key, value string) error
	Remove(ctx context.Context, keys ...Key) error
}

// BatchStore is implemented by stores that apply several fields in one step. Readers,
// including other processes sharing the store, see either none or all of a batch.
type BatchStore interface {
	SetMany(ctx context.Context, values map[Key]string) error
	GetMany(ctx context.Context, keys ...Key) (map[Key]string, error)
}

// Watcher is implemented by stores shared between processes. Each value on the returned
// channel is the set of keys one write by another process changed. The channel is closed
// when ctx ends.
type Watcher interface {
	Watch(ctx context.Context) (<-chan []Key, error)
}
