package relay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTakeReturnsLatest(t *testing.T) {
	r := New[string]()
	r.Put("A")
	r.Put("B")
	r.Put("C")

	item, seq, err := r.Take(context.Background())
	require.NoError(t, err)
	require.Equal(t, "C", item)
	require.Equal(t, uint64(3), seq)
	require.Equal(t, uint64(2), r.Dropped())
}

func TestTakeNeverDuplicates(t *testing.T) {
	r := New[int]()
	r.Put(1)
	item, _, err := r.Take(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, item)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _, err = r.Take(ctx)
	require.Equal(t, context.DeadlineExceeded, err)
}

func TestTakeBlocksUntilPut(t *testing.T) {
	r := New[int]()
	resultCh := make(chan int, 1)
	go func() {
		item, _, err := r.Take(context.Background())
		if err == nil {
			resultCh <- item
		}
	}()
	time.Sleep(10 * time.Millisecond)
	r.Put(42)
	select {
	case item := <-resultCh:
		require.Equal(t, 42, item)
	case <-time.After(time.Second):
		t.Fatal("Take didn't return")
	}
}

func TestLatest(t *testing.T) {
	var r Relay[int]
	_, _, ok := r.Latest()
	require.False(t, ok)
	r.Put(5)
	item, seq, ok := r.Latest()
	require.True(t, ok)
	require.Equal(t, 5, item)
	require.Equal(t, uint64(1), seq)
	// Latest doesn't consume.
	item, _, err := r.Take(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, item)
	_, _, ok = r.Latest()
	require.False(t, ok)
}

func TestConcurrentConsumers(t *testing.T) {
	r := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const consumers = 4
	var wg sync.WaitGroup
	seen := make(chan uint64, 100)
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, seq, err := r.Take(ctx)
				if err != nil {
					return
				}
				seen <- seq
			}
		}()
	}
	for i := 0; i < 50; i++ {
		r.Put(i)
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	cancel()
	wg.Wait()
	close(seen)

	unique := make(map[uint64]bool)
	for seq := range seen {
		require.False(t, unique[seq], "seq %d taken twice", seq)
		unique[seq] = true
	}
	total := uint64(len(unique)) + r.Dropped()
	if _, _, pending := r.Latest(); pending {
		total++
	}
	require.Equal(t, uint64(50), total)
}

func TestRun(t *testing.T) {
	r := New[int]()
	errStop := errors.New("stop")
	n := 0
	err := r.Run(context.Background(), ProduceFunc[int](func(context.Context) (int, error) {
		if n == 3 {
			return 0, errStop
		}
		n++
		return n, nil
	}))
	require.Equal(t, errStop, err)
	item, seq, err := r.Take(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, item)
	require.Equal(t, uint64(3), seq)
}

func TestRunStopsOnCancel(t *testing.T) {
	r := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx, ProduceFunc[int](func(context.Context) (int, error) {
			time.Sleep(time.Millisecond)
			return 1, nil
		}))
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("Run didn't stop")
	}
}

func TestCloseWakesTake(t *testing.T) {
	r := New[int]()
	errDead := errors.New("device gone")
	done := make(chan error, 1)
	go func() {
		_, _, err := r.Take(context.Background())
		done <- err
	}()
	time.Sleep(5 * time.Millisecond)
	r.Close(errDead)
	select {
	case err := <-done:
		require.Equal(t, errDead, err)
	case <-time.After(time.Second):
		t.Fatal("Take didn't wake up")
	}
	require.Equal(t, errDead, r.Err())

	_, _, err := r.Take(context.Background())
	require.Equal(t, errDead, err)
}

func TestCloseKeepsPendingItem(t *testing.T) {
	r := New[int]()
	r.Put(7)
	r.Close(nil)
	item, _, err := r.Take(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, item)
	_, _, err = r.Take(context.Background())
	require.Equal(t, ErrClosed, err)
}
