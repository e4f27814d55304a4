package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// scriptedSource отдаёт заранее заданные результаты Poll.
type scriptedSource struct {
	mu       sync.Mutex
	fetches  []*Fetch
	pollErr  error
	timeouts []time.Duration
}

func (s *scriptedSource) Submit(context.Context, int) bool { return true }

func (s *scriptedSource) Poll(_ context.Context, timeout time.Duration) (*Fetch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeouts = append(s.timeouts, timeout)
	if len(s.fetches) == 0 {
		if s.pollErr != nil {
			return nil, s.pollErr
		}
		return nil, nil
	}
	f := s.fetches[0]
	s.fetches = s.fetches[1:]
	return f, nil
}

func batch(offsets ...int64) []*domain.Message {
	out := make([]*domain.Message, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, msg(o, "", nil))
	}
	return out
}

func TestDrainLoop_ProcessesEachFetchAsBatch(t *testing.T) {
	src := &scriptedSource{fetches: []*Fetch{
		NewFetch(batch(1, 2), nil),
		NewFetch(nil, nil), // пустая выборка пропускается
		NewFetch(batch(3), nil),
	}}

	var batches [][]int64
	loop := NewDrainLoop(src, 0, func(_ context.Context, msgs []*domain.Message) {
		batches = append(batches, offsets(msgs))
	}, nopLogger{})

	n := loop.Run(context.Background())
	assert.Equal(t, 3, n)
	assert.Equal(t, [][]int64{{1, 2}, {3}}, batches)
	assert.Equal(t, DrainIdle, loop.State())
	for _, timeout := range src.timeouts {
		assert.Zero(t, timeout, "zero MaxWait means non-blocking polls")
	}
}

// Сбой выборки логируется, цикл завершается
func TestDrainLoop_FetchFaultStopsLoop(t *testing.T) {
	src := &scriptedSource{fetches: []*Fetch{
		NewFetch(batch(1), nil),
		NewFetch(nil, errors.New("broker gone")),
		NewFetch(batch(2), nil),
	}}

	var processed int
	loop := NewDrainLoop(src, time.Millisecond, func(_ context.Context, msgs []*domain.Message) {
		processed += len(msgs)
	}, nopLogger{})

	assert.Equal(t, 1, loop.Run(context.Background()))
	assert.Equal(t, 1, processed)
}

func TestDrainLoop_InterruptedPoll(t *testing.T) {
	src := &scriptedSource{pollErr: context.Canceled}
	loop := NewDrainLoop(src, time.Second, func(context.Context, []*domain.Message) {
		t.Fatal("nothing to process")
	}, nopLogger{})
	assert.Zero(t, loop.Run(context.Background()))
}

func TestDrainLoop_StateDuringProcessing(t *testing.T) {
	src := &scriptedSource{fetches: []*Fetch{NewFetch(batch(1), nil)}}
	var seen DrainState
	var loop *DrainLoop
	loop = NewDrainLoop(src, 0, func(context.Context, []*domain.Message) {
		seen = loop.State()
	}, nopLogger{})

	loop.Run(context.Background())
	assert.Equal(t, DrainProcessing, seen)
}

func TestBackgroundFetcher_PollZeroTimeoutDoesNotBlock(t *testing.T) {
	f := NewBackgroundFetcher(newFakeConsumer(), 1, 0)
	start := time.Now()
	fetch, err := f.Poll(context.Background(), 0)
	require.NoError(t, err)
	assert.Nil(t, fetch)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestBackgroundFetcher_SubmitThenPoll(t *testing.T) {
	consumer := newFakeConsumer(batch(1, 2, 3)...)
	f := NewBackgroundFetcher(consumer, 1, 0)

	f.Submit(context.Background(), 2)
	fetch, err := f.Poll(context.Background(), time.Second)
	require.NoError(t, err)
	require.NotNil(t, fetch)

	msgs, err := fetch.Result()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, offsets(msgs))

	// за timeout ничего не завершилось
	fetch, err = f.Poll(context.Background(), 5*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, fetch)
}

func TestBackgroundFetcher_PollCanceled(t *testing.T) {
	f := NewBackgroundFetcher(newFakeConsumer(), 1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Poll(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

// slowConsumer — поток из limit сообщений с задержкой Receive; считает одновременные вызовы Receive.
type slowConsumer struct {
	*fakeConsumer
	delay time.Duration
	limit int64

	smu    sync.Mutex
	next   int64
	active int
	peak   int
}

func newSlowConsumer(limit int64, delay time.Duration) *slowConsumer {
	return &slowConsumer{fakeConsumer: newFakeConsumer(), delay: delay, limit: limit}
}

func (c *slowConsumer) Receive(context.Context, time.Duration) (*domain.Message, error) {
	c.smu.Lock()
	c.active++
	if c.active > c.peak {
		c.peak = c.active
	}
	c.smu.Unlock()

	time.Sleep(c.delay)

	c.smu.Lock()
	defer c.smu.Unlock()
	c.active--
	if c.next >= c.limit {
		return nil, nil
	}
	c.next++
	return msg(c.next, fmt.Sprintf(`{"id":%d}`, c.next), nil), nil
}

func (c *slowConsumer) Peak() int {
	c.smu.Lock()
	defer c.smu.Unlock()
	return c.peak
}

// requireContiguous — батчи идут подряд: первый оффсет батча следует за последним оффсетом предыдущего.
func requireContiguous(t *testing.T, batches [][]int64) {
	t.Helper()
	var last int64
	for i, b := range batches {
		require.NotEmpty(t, b, "batch %d", i)
		for j, off := range b {
			require.Equal(t, last+1, off, "batch %d position %d: %v", i, j, batches)
			last = off
		}
	}
}

func TestBackgroundFetcher_OneFetchInFlight(t *testing.T) {
	consumer := newSlowConsumer(200, time.Millisecond)
	f := NewBackgroundFetcher(consumer, 1, 20*time.Millisecond)
	ctx := context.Background()

	require.True(t, f.Submit(ctx, 0))
	assert.False(t, f.Submit(ctx, 0), "second fetch must wait for the first one")
	for i := 0; i < 30; i++ {
		f.Submit(ctx, 0)
		time.Sleep(2 * time.Millisecond)
	}

	var batches [][]int64
	for {
		fetch, err := f.Poll(ctx, 300*time.Millisecond)
		require.NoError(t, err)
		if fetch == nil {
			break
		}
		msgs, err := fetch.Result()
		require.NoError(t, err)
		if len(msgs) > 0 {
			batches = append(batches, offsets(msgs))
		}
	}

	assert.Equal(t, 1, consumer.Peak(), "fetches must not overlap")
	requireContiguous(t, batches)
}

// Без MaxMessages выборка ограничена временем, а не иссякшим потоком
func TestBackgroundFetcher_BudgetEndsUnboundedFetch(t *testing.T) {
	consumer := newSlowConsumer(1_000_000, time.Millisecond)
	f := NewBackgroundFetcher(consumer, 1, 30*time.Millisecond)

	start := time.Now()
	require.True(t, f.Submit(context.Background(), 0))
	fetch, err := f.Poll(context.Background(), 2*time.Second)
	require.NoError(t, err)
	require.NotNil(t, fetch)

	msgs, err := fetch.Result()
	require.NoError(t, err)
	assert.NotEmpty(t, msgs)
	assert.Less(t, time.Since(start), time.Second)
}
