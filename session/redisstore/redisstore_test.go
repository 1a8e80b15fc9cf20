package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/tcms-client/session"
	"github.com/jrsteele09/tcms-client/session/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return rdb
}

func TestGetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := redisstore.New(newRedis(t), "test")

	_, ok, err := s.Get(ctx, session.KeyRole)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, session.KeyRole, "district_manager"))
	value, ok, err := s.Get(ctx, session.KeyRole)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "district_manager", value)

	require.NoError(t, s.Remove(ctx, session.KeyRole, session.KeyDistrict))
	_, ok, err = s.Get(ctx, session.KeyRole)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoresWithSamePrefixShareState(t *testing.T) {
	ctx := context.Background()
	rdb := newRedis(t)
	a := redisstore.New(rdb, "shared")
	b := redisstore.New(rdb, "shared")
	other := redisstore.New(rdb, "other")

	require.NoError(t, a.Set(ctx, session.KeyAccessToken, "a1"))

	value, ok, err := b.Get(ctx, session.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a1", value)

	_, ok, err = other.Get(ctx, session.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWatchDeliversOnlyOtherWritersChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := newRedis(t)
	watcher := redisstore.New(rdb, "shared")
	writer := redisstore.New(rdb, "shared")

	changes, err := watcher.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, watcher.Set(ctx, session.KeyRole, "admin"))
	require.NoError(t, writer.Remove(ctx, session.KeyAccessToken))

	select {
	case keys := <-changes:
		require.Equal(t, []session.Key{session.KeyAccessToken}, keys)
	case <-time.After(2 * time.Second):
		t.Fatal("no change delivered")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-changes
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}

func TestManagerRelaysRemoteLogout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := newRedis(t)
	local := session.NewManager(redisstore.New(rdb, "shared"))
	remote := session.NewManager(redisstore.New(rdb, "shared"))

	events, unsubscribe := local.Subscribe()
	defer unsubscribe()

	done := make(chan error, 1)
	go func() { done <- local.Run(ctx) }()

	require.Eventually(t, func() bool {
		n, err := rdb.PubSubNumSub(ctx, "shared:session:events").Result()
		return err == nil && n["shared:session:events"] == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, remote.Set(ctx, session.KeyAccessToken, "a1"))

	select {
	case ev := <-events:
		require.Equal(t, session.OriginRemote, ev.Origin)
		require.Equal(t, []session.Key{session.KeyAccessToken}, ev.Keys)
	case <-time.After(2 * time.Second):
		t.Fatal("remote change not relayed")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestSetManyAndGetMany(t *testing.T) {
	ctx := context.Background()
	s := redisstore.New(newRedis(t), "test")

	require.NoError(t, s.SetMany(ctx, map[session.Key]string{
		session.KeyAccessToken: "a1",
		session.KeyRole:        "admin",
		session.KeyDistrict:    "",
	}))

	values, err := s.GetMany(ctx, session.AllKeys()...)
	require.NoError(t, err)
	require.Equal(t, map[session.Key]string{
		session.KeyAccessToken: "a1",
		session.KeyRole:        "admin",
		session.KeyDistrict:    "",
	}, values)
}

func TestRemoteManagerSeesLoginAsOneChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := newRedis(t)
	writer := session.NewManager(redisstore.New(rdb, "shared"))
	reader := session.NewManager(redisstore.New(rdb, "shared"))

	events, unsubscribe := reader.Subscribe()
	defer unsubscribe()

	done := make(chan error, 1)
	go func() { done <- reader.Run(ctx) }()

	require.Eventually(t, func() bool {
		n, err := rdb.PubSubNumSub(ctx, "shared:session:events").Result()
		return err == nil && n["shared:session:events"] == 1
	}, 2*time.Second, 10*time.Millisecond)

	login := map[session.Key]string{
		session.KeyAccessToken:  "a1",
		session.KeyRefreshToken: "r1",
		session.KeyRole:         "district_manager",
		session.KeyDistrict:     "Colombo",
		session.KeyCenterID:     "",
		session.KeyCenterName:   "",
	}
	require.NoError(t, writer.Put(ctx, login))

	select {
	case ev := <-events:
		require.Equal(t, session.OriginRemote, ev.Origin)
		require.ElementsMatch(t, []session.Key{
			session.KeyAccessToken, session.KeyRefreshToken, session.KeyRole,
			session.KeyDistrict, session.KeyCenterID, session.KeyCenterName,
		}, ev.Keys)
	case <-time.After(2 * time.Second):
		t.Fatal("login not relayed")
	}

	snap, err := reader.Snapshot(ctx)
	require.NoError(t, err)
	require.True(t, snap.Authenticated())
	require.Equal(t, "district_manager", snap.Role)
	require.Equal(t, "Colombo", snap.District)

	select {
	case ev := <-events:
		t.Fatalf("unexpected second event %v", ev.Keys)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}
