package observe

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Update[T]) Update[T] {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "stream closed unexpectedly")
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
	}
	return Update[T]{}
}

func TestQuery_EmitsOnSubscribeAndOnInvalidation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier()
	var calls atomic.Int32
	stream := Query(ctx, n, func(context.Context) (int32, error) {
		return calls.Add(1), nil
	}, TableBooks)

	assert.Equal(t, int32(1), receive(t, stream).Value)

	n.Notify(TableBooks)
	assert.Equal(t, int32(2), receive(t, stream).Value)
}

func TestQuery_IgnoresUnrelatedTables(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier()
	var calls atomic.Int32
	stream := Query(ctx, n, func(context.Context) (int32, error) {
		return calls.Add(1), nil
	}, TableQuotes)

	receive(t, stream)
	n.Notify(TableGenres)

	select {
	case u := <-stream:
		t.Fatalf("unexpected emission %v", u)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestQuery_ErrorDoesNotEndStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier()
	fail := errors.New("locked")
	var calls atomic.Int32
	stream := Query(ctx, n, func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", fail
		}
		return "ok", nil
	}, TableAuthors)

	assert.ErrorIs(t, receive(t, stream).Err, fail)

	n.Notify(TableAuthors)
	u := receive(t, stream)
	assert.NoError(t, u.Err)
	assert.Equal(t, "ok", u.Value)
}

func TestQuery_CancelClosesAndUnsubscribes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	n := NewNotifier()
	stream := Query(ctx, n, func(context.Context) (int, error) { return 1, nil }, TableBooks)
	receive(t, stream)
	assert.Equal(t, 1, n.Subscribers())

	cancel()

	select {
	case _, ok := <-stream:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after cancel")
	}
	assert.Eventually(t, func() bool { return n.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestNotifier_CoalescesPendingSignals(t *testing.T) {
	n := NewNotifier()
	id, signal := n.Subscribe(TableBooks)
	defer n.Unsubscribe(id)

	n.Notify(TableBooks)
	n.Notify(TableBooks)
	n.Notify(TableBooks)

	<-signal
	select {
	case <-signal:
		t.Fatal("signals were not coalesced")
	default:
	}
}

func TestJust(t *testing.T) {
	stream := Just(context.Background(), []string{"a"})
	u := receive(t, stream)
	assert.Equal(t, []string{"a"}, u.Value)

	_, ok := <-stream
	assert.False(t, ok)
}

func TestFirst_ClosedStream(t *testing.T) {
	ch := make(chan Update[int])
	close(ch)
	_, err := First(context.Background(), ch)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestGet(t *testing.T) {
	n := NewNotifier()
	v, err := Get(context.Background(), func(ctx context.Context) <-chan Update[string] {
		return Query(ctx, n, func(context.Context) (string, error) { return "value", nil }, TableBooks)
	})
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Eventually(t, func() bool { return n.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}
