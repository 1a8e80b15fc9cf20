package reqstate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/tcms-client/reqstate"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend down")

func TestDo(t *testing.T) {
	ok := reqstate.Do(context.Background(), func(context.Context) (int, error) { return 3, nil })
	require.True(t, ok.OK())
	require.Equal(t, 3, ok.Data)

	failed := reqstate.Do(context.Background(), func(context.Context) (int, error) { return 9, errBackend })
	require.False(t, failed.OK())
	require.ErrorIs(t, failed.Err, errBackend)
	require.Equal(t, 0, failed.Data)
}

func TestTrackerIsLoadingWhileRunning(t *testing.T) {
	var tracker reqstate.Tracker[[]string]
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan reqstate.Result[[]string])

	go func() {
		done <- tracker.Run(context.Background(), func(context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"Colombo"}, nil
		})
	}()

	<-started
	require.True(t, tracker.Result().Loading)
	close(release)

	res := <-done
	require.True(t, res.OK())
	require.Equal(t, []string{"Colombo"}, tracker.Result().Data)
	require.False(t, tracker.Result().Loading)
}

func TestTrackerKeepsDataOnError(t *testing.T) {
	var tracker reqstate.Tracker[string]
	tracker.Run(context.Background(), func(context.Context) (string, error) { return "first", nil })

	res := tracker.Run(context.Background(), func(context.Context) (string, error) { return "", errBackend })
	require.ErrorIs(t, res.Err, errBackend)
	require.Equal(t, "first", tracker.Result().Data)
	require.ErrorIs(t, tracker.Result().Err, errBackend)

	tracker.Reset()
	require.Equal(t, reqstate.Result[string]{}, tracker.Result())
}

func TestTrackerResetWinsOverRunInFlight(t *testing.T) {
	var tracker reqstate.Tracker[int]
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		tracker.Run(context.Background(), func(context.Context) (int, error) {
			close(started)
			<-release
			return 42, nil
		})
	}()

	<-started
	tracker.Reset()
	close(release)
	<-done

	require.Equal(t, reqstate.Result[int]{}, tracker.Result())
}
