package redisstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/tcms-client/session"
	"github.com/redis/go-redis/v9"
)

var (
	_ session.Store      = (*Store)(nil)
	_ session.BatchStore = (*Store)(nil)
	_ session.Watcher    = (*Store)(nil)
)

const DefaultPrefix = "tcms"

// Client is the subset of the go-redis client used by the store.
type Client interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// Store keeps session fields in a Redis hash shared by every process using the same
// prefix. Each write runs in a MULTI/EXEC together with its announcement on a pub/sub
// channel, so other processes see a login or logout whole and learn about it without
// polling.
type Store struct {
	client Client
	hash   string
	events string
	origin string
}

func New(client Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		client: client,
		hash:   fmt.Sprintf("%s:session", prefix),
		events: fmt.Sprintf("%s:session:events", prefix),
		origin: uuid.New().String(),
	}
}

func (s *Store) Get(ctx context.Context, key session.Key) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.hash, string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("[redisstore Get] %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key session.Key, value string) error {
	return s.SetMany(ctx, map[session.Key]string{key: value})
}

// SetMany writes all values with one HSET and one PUBLISH inside a transaction.
func (s *Store) SetMany(ctx context.Context, values map[session.Key]string) error {
	if len(values) == 0 {
		return nil
	}
	keys := make([]session.Key, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	fields := make([]interface{}, 0, 2*len(keys))
	for _, key := range keys {
		fields = append(fields, string(key), values[key])
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.hash, fields...)
		pipe.Publish(ctx, s.events, s.payload(keys))
		return nil
	})
	if err != nil {
		return fmt.Errorf("[redisstore SetMany]: %w", err)
	}
	return nil
}

// GetMany reads keys with a single HMGET. Absent keys are left out.
func (s *Store) GetMany(ctx context.Context, keys ...session.Key) (map[session.Key]string, error) {
	out := make(map[session.Key]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	fields := make([]string, len(keys))
	for i, key := range keys {
		fields[i] = string(key)
	}

	values, err := s.client.HMGet(ctx, s.hash, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("[redisstore GetMany]: %w", err)
	}
	for i, v := range values {
		if str, ok := v.(string); ok && i < len(keys) {
			out[keys[i]] = str
		}
	}
	return out, nil
}

func (s *Store) Remove(ctx context.Context, keys ...session.Key) error {
	if len(keys) == 0 {
		return nil
	}
	fields := make([]string, len(keys))
	for i, key := range keys {
		fields[i] = string(key)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, s.hash, fields...)
		pipe.Publish(ctx, s.events, s.payload(keys))
		return nil
	})
	if err != nil {
		return fmt.Errorf("[redisstore Remove]: %w", err)
	}
	return nil
}

// Watch subscribes to changes made by other Store instances.
func (s *Store) Watch(ctx context.Context) (<-chan []session.Key, error) {
	ps := s.client.Subscribe(ctx, s.events)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("[redisstore Watch] subscribe %s: %w", s.events, err)
	}

	out := make(chan []session.Key)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				origin, list, found := strings.Cut(msg.Payload, "|")
				if !found || origin == s.origin || list == "" {
					continue
				}
				var keys []session.Key
				for _, key := range strings.Split(list, ",") {
					keys = append(keys, session.Key(key))
				}
				select {
				case out <- keys:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// payload is "<origin>|<key>,<key>...".
func (s *Store) payload(keys []session.Key) string {
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = string(key)
	}
	return s.origin + "|" + strings.Join(names, ",")
}
