package presentation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const waitTimeout = 2 * time.Second

// await reads stream until match accepts a value.
func await[T any](t *testing.T, stream <-chan T, match func(T) bool) T {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case v, ok := <-stream:
			require.True(t, ok, "stream closed")
			if match(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timed out waiting for state")
			var zero T
			return zero
		}
	}
}

func receive[E any](t *testing.T, events <-chan E) E {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for event")
		var zero E
		return zero
	}
}

func TestStore_UpdatesAreSerialised(t *testing.T) {
	store := NewStore(0)

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			for j := 0; j < 20; j++ {
				store.Update(func(n int) int { return n + 1 })
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 1000, store.Snapshot())
}

func TestStore_SubscribeReplaysLatest(t *testing.T) {
	store := NewStore("a")
	store.Update(func(string) string { return "b" })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Equal(t, "b", <-store.Subscribe(ctx))
}

func TestStore_SlowSubscriberSeesNewest(t *testing.T) {
	store := NewStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := store.Subscribe(ctx)
	for i := 1; i <= 10; i++ {
		store.Update(func(int) int { return i })
	}
	assert.Equal(t, 10, <-sub)
}

func TestStore_SubscriptionClosesWithContext(t *testing.T) {
	store := NewStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	sub := store.Subscribe(ctx)
	<-sub
	cancel()

	select {
	case _, ok := <-sub:
		assert.False(t, ok)
	case <-time.After(waitTimeout):
		t.Fatal("subscription not closed")
	}
}

func TestEvents_ConsumedOnce(t *testing.T) {
	events := NewEvents[int](2)
	ctx := context.Background()

	require.True(t, events.Emit(ctx, 1))
	require.True(t, events.Emit(ctx, 2))
	assert.Equal(t, 1, <-events.C())
	assert.Equal(t, 2, <-events.C())

	select {
	case v := <-events.C():
		t.Fatalf("event %d replayed", v)
	default:
	}
}

func TestEvents_EmitGivesUpOnCancel(t *testing.T) {
	events := NewEvents[int](1)
	require.True(t, events.Emit(context.Background(), 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, events.Emit(ctx, 2))
}

func TestScope_CloseCancelsAndWaits(t *testing.T) {
	scope := NewScope(context.Background())
	var finished atomic.Int32

	for i := 0; i < 3; i++ {
		scope.Launch(func(ctx context.Context) {
			<-ctx.Done()
			finished.Add(1)
		})
	}
	scope.Close()
	assert.Equal(t, int32(3), finished.Load())

	ran := false
	scope.Launch(func(context.Context) { ran = true })
	assert.False(t, ran, "launch after close is ignored")
}

func TestScope_SwitchCancelsPrevious(t *testing.T) {
	scope := NewScope(context.Background())
	defer scope.Close()

	var slot Slot
	first := make(chan struct{})
	scope.Switch(&slot, func(ctx context.Context) {
		<-ctx.Done()
		close(first)
	})
	scope.Switch(&slot, func(ctx context.Context) {
		<-ctx.Done()
	})

	select {
	case <-first:
	case <-time.After(waitTimeout):
		t.Fatal("first task not cancelled")
	}
}

func TestScope_Bind(t *testing.T) {
	scope := NewScope(context.Background())
	ctx := scope.Bind(context.Background())
	scope.Close()

	select {
	case <-ctx.Done():
	case <-time.After(waitTimeout):
		t.Fatal("bound context not cancelled by scope")
	}
}

func TestToListState(t *testing.T) {
	boom := errors.New("boom")

	assert.Equal(t, Loading[int]{}, ToListState[int](true, nil, nil))
	assert.Equal(t, Empty[int]{}, ToListState[int](false, nil, nil))
	assert.Equal(t, ShowList[int]{Items: []int{1}}, ToListState(false, []int{1}, nil))
	assert.Equal(t, Failed[int]{Err: boom}, ToListState(false, []int{1}, boom))

	assert.Equal(t, "loading", Kind[int](Loading[int]{}))
	assert.Equal(t, "empty", Kind[int](Empty[int]{}))
	assert.Equal(t, "show_list", Kind[int](ShowList[int]{}))
	assert.Equal(t, "failed", Kind[int](Failed[int]{}))
}

func TestCheck_OnlyTouchedFields(t *testing.T) {
	rules := []rule{
		{field: FieldTitle, value: "", tag: "required", err: ErrTitleRequired},
		{field: FieldPage, value: "12a", tag: "required,number", err: ErrPageRequired},
	}

	assert.Empty(t, check(Touched{}, rules...))
	assert.Equal(t, map[Field]error{FieldTitle: ErrTitleRequired}, check(Touched{FieldTitle: true}, rules...))
	assert.Len(t, check(Touched{}.With(FieldTitle, FieldPage), rules...), 2)
}
