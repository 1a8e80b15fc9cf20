package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Origin tells subscribers who made a change.
type Origin int

const (
	OriginLocal  Origin = iota // Written through this Manager
	OriginRemote               // Written by another process sharing the store
)

// Event reports keys whose stored value changed.
type Event struct {
	Keys   []Key
	Origin Origin
}

const subscriberBuffer = 16

// Manager is the single owner of session state. All reads and writes of session fields go
// through it, writes are serialized, and every change is announced to subscribers.
type Manager struct {
	store Store
	log   zerolog.Logger

	writeLock sync.Mutex

	subsLock sync.RWMutex
	subs     map[int]chan Event
	nextSub  int
}

type ManagerOption func(*Manager)

func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		log:   zerolog.Nop(),
		subs:  make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the value stored under key, or "" when absent.
func (m *Manager) Get(ctx context.Context, key Key) (string, error) {
	if !IsKnownKey(key) {
		return "", fmt.Errorf("[Manager Get] %q: %w", key, ErrUnknownKey)
	}
	value, _, err := m.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("[Manager Get] %s: %w", key, err)
	}
	return value, nil
}

func (m *Manager) Set(ctx context.Context, key Key, value string) error {
	return m.Put(ctx, map[Key]string{key: value})
}

// Put writes several fields as one change.
func (m *Manager) Put(ctx context.Context, values map[Key]string) error {
	keys := make([]Key, 0, len(values))
	for _, key := range allKeys {
		if _, ok := values[key]; ok {
			keys = append(keys, key)
		}
	}
	if len(keys) != len(values) {
		return fmt.Errorf("[Manager Put]: %w", ErrUnknownKey)
	}

	m.writeLock.Lock()
	defer m.writeLock.Unlock()

	if batch, ok := m.store.(BatchStore); ok {
		if err := batch.SetMany(ctx, values); err != nil {
			return fmt.Errorf("[Manager Put]: %w", err)
		}
		m.publish(Event{Keys: keys, Origin: OriginLocal})
		return nil
	}

	for _, key := range keys {
		if err := m.store.Set(ctx, key, values[key]); err != nil {
			return fmt.Errorf("[Manager Put] %s: %w", key, err)
		}
	}
	m.publish(Event{Keys: keys, Origin: OriginLocal})
	return nil
}

func (m *Manager) Remove(ctx context.Context, keys ...Key) error {
	for _, key := range keys {
		if !IsKnownKey(key) {
			return fmt.Errorf("[Manager Remove] %q: %w", key, ErrUnknownKey)
		}
	}

	m.writeLock.Lock()
	defer m.writeLock.Unlock()

	if err := m.store.Remove(ctx, keys...); err != nil {
		return fmt.Errorf("[Manager Remove]: %w", err)
	}
	m.publish(Event{Keys: keys, Origin: OriginLocal})
	return nil
}

// Clear removes every session key.
func (m *Manager) Clear(ctx context.Context) error {
	return m.Remove(ctx, AllKeys()...)
}

// Snapshot reads every field. Absent keys read as "".
func (m *Manager) Snapshot(ctx context.Context) (Session, error) {
	var s Session
	if batch, ok := m.store.(BatchStore); ok {
		values, err := batch.GetMany(ctx, allKeys...)
		if err != nil {
			return Session{}, fmt.Errorf("[Manager Snapshot]: %w", err)
		}
		for key, value := range values {
			s.set(key, value)
		}
		return s, nil
	}

	for _, key := range allKeys {
		value, _, err := m.store.Get(ctx, key)
		if err != nil {
			return Session{}, fmt.Errorf("[Manager Snapshot] %s: %w", key, err)
		}
		s.set(key, value)
	}
	return s, nil
}

func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	return m.Get(ctx, KeyAccessToken)
}

// Subscribe registers for change events. Events are dropped for subscribers that fall
// behind. The returned func unsubscribes and closes the channel.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	m.subsLock.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.subsLock.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.subsLock.Lock()
			delete(m.subs, id)
			m.subsLock.Unlock()
			close(ch)
		})
	}
}

// Run relays changes made by other processes when the store is a Watcher. It returns nil
// immediately for stores that are not shared, otherwise it blocks until ctx ends.
func (m *Manager) Run(ctx context.Context) error {
	watcher, ok := m.store.(Watcher)
	if !ok {
		return nil
	}
	changes, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("[Manager Run] watch: %w", err)
	}
	for keys := range changes {
		m.publish(Event{Keys: keys, Origin: OriginRemote})
	}
	return nil
}

func (m *Manager) publish(event Event) {
	m.subsLock.RLock()
	defer m.subsLock.RUnlock()

	for id, ch := range m.subs {
		select {
		case ch <- event:
		default:
			m.log.Warn().Int("subscriber", id).Msg("session event dropped, subscriber is not keeping up")
		}
	}
}
