package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports/mocks"
)

func TestResolveAckPolicy(t *testing.T) {
	tests := []struct {
		sub   SubscriptionType
		async bool
		want  AckPolicy
	}{
		{SubscriptionShared, false, AckEachSync},
		{SubscriptionKeyShared, false, AckEachSync},
		{SubscriptionShared, true, AckEachAsync},
		{SubscriptionExclusive, false, AckCumulativeSync},
		{SubscriptionFailover, false, AckCumulativeSync},
		{SubscriptionExclusive, true, AckCumulativeAsync},
		{SubscriptionFailover, true, AckCumulativeAsync},
	}
	for _, tt := range tests {
		t.Run(string(tt.sub)+"/"+tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAckPolicy(tt.sub, tt.async))
		})
	}
}

func TestParseSubscriptionType(t *testing.T) {
	got, err := ParseSubscriptionType(" Key-Shared ")
	require.NoError(t, err)
	assert.Equal(t, SubscriptionKeyShared, got)

	got, err = ParseSubscriptionType("")
	require.NoError(t, err)
	assert.Equal(t, SubscriptionExclusive, got)

	_, err = ParseSubscriptionType("broadcast")
	assert.Error(t, err)
}

// shared: каждое сообщение отдельно; Finish ничего не делает
func TestAckCoordinator_SharedSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	consumer := mocks.NewMockConsumer(ctrl)
	m1, m2 := msg(1, "", nil), msg(2, "", nil)

	gomock.InOrder(
		consumer.EXPECT().Acknowledge(gomock.Any(), m1).Return(nil),
		consumer.EXPECT().Acknowledge(gomock.Any(), m2).Return(errors.New("lost")),
	)

	acker := NewAckCoordinator(consumer, ResolveAckPolicy(SubscriptionShared, false), nil, nopLogger{})
	acker.Accounted(context.Background(), []*domain.Message{m1, m2})
	acker.Finish(context.Background(), m2)
}

// exclusive: Accounted ничего не делает, Finish — один кумулятивный ack
func TestAckCoordinator_ExclusiveSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	consumer := mocks.NewMockConsumer(ctrl)
	last := msg(9, "", nil)

	consumer.EXPECT().AcknowledgeCumulative(gomock.Any(), last).Return(nil).Times(1)

	acker := NewAckCoordinator(consumer, ResolveAckPolicy(SubscriptionExclusive, false), nil, nopLogger{})
	acker.Accounted(context.Background(), []*domain.Message{msg(1, "", nil), last})
	acker.Finish(context.Background(), last)
}

// async: вызовы уходят в пул и выполняются воркерами
func TestAckCoordinator_AsyncThroughPool(t *testing.T) {
	consumer := newFakeConsumer()
	pool := NewAckPool(2, 1, nopLogger{})

	acker := NewAckCoordinator(consumer, ResolveAckPolicy(SubscriptionShared, true), pool, nopLogger{})
	acker.Accounted(context.Background(), []*domain.Message{msg(1, "", nil), msg(2, "", nil), msg(3, "", nil)})
	pool.Close()

	assert.ElementsMatch(t, []ackCall{{1, false}, {2, false}, {3, false}}, consumer.Acks())
}

func TestAckPool_CloseDrainsQueue(t *testing.T) {
	pool := NewAckPool(1, 8, nopLogger{})
	var done atomic.Int32

	for i := 0; i < 5; i++ {
		ok := pool.Submit(context.Background(), AckJob{
			Message: msg(int64(i), "", nil),
			Mode:    "single",
			Pending: func() <-chan error {
				time.Sleep(time.Millisecond)
				done.Add(1)
				ch := make(chan error, 1)
				ch <- nil
				return ch
			},
		})
		require.True(t, ok)
	}
	// nil-канал не блокирует воркер
	require.True(t, pool.Submit(context.Background(), AckJob{
		Message: msg(6, "", nil), Mode: "single",
		Pending: func() <-chan error { return nil },
	}))

	pool.Close()
	assert.Equal(t, int32(5), done.Load())

	assert.False(t, pool.Submit(context.Background(), AckJob{Message: msg(7, "", nil)}), "closed pool rejects jobs")
	pool.Close()
}

func TestAckPool_SubmitRespectsContext(t *testing.T) {
	block := make(chan struct{})
	pool := NewAckPool(1, 0, nopLogger{})
	defer func() {
		close(block)
		pool.Close()
	}()

	// воркер занят
	require.True(t, pool.Submit(context.Background(), AckJob{
		Message: msg(1, "", nil),
		Pending: func() <-chan error {
			<-block
			return nil
		},
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.False(t, pool.Submit(ctx, AckJob{Message: msg(2, "", nil), Pending: func() <-chan error { return nil }}))
}
