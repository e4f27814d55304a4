package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/wb_records/internal/kafka/mocks"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
)

func newTestClient(r reader) *Client {
	return newClient(r, "records", 5*time.Millisecond)
}

func fetchOK(r *mocks.Mockreader, msgs ...kafka.Message) {
	for _, m := range msgs {
		r.EXPECT().FetchMessage(gomock.Any()).Return(m, nil)
	}
}

// Таймаут опроса → (nil, nil), а не ошибка
func TestReceive_TimeoutIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})

	msg, err := newTestClient(r).Receive(context.Background(), 0)
	if err != nil || msg != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", msg, err)
	}
}

// Отмена родительского контекста — ошибка
func TestReceive_ParentCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestClient(r).Receive(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestReceive_BrokerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, errors.New("broker down"))

	if _, err := newTestClient(r).Receive(context.Background(), time.Second); err == nil {
		t.Fatalf("want error")
	}
}

// Заголовки → свойства; schema/schema.format → встроенная схема
func TestReceive_ConvertsMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	fetchOK(r, kafka.Message{
		Topic: "records", Partition: 2, Offset: 10, Key: []byte("k"), Value: []byte(`{"a":1}`),
		Headers: []kafka.Header{
			{Key: "tenant", Value: []byte("acme")},
			{Key: HeaderSchema, Value: []byte(`{"type":"record","fields":[]}`)},
			{Key: HeaderSchemaFormat, Value: []byte("avro")},
		},
	})

	msg, err := newTestClient(r).Receive(context.Background(), time.Second)
	if err != nil || msg == nil {
		t.Fatalf("unexpected: %v %v", msg, err)
	}
	if msg.Key != "k" || !msg.HasKey || msg.Partition != 2 || msg.Offset != 10 || msg.Sequence != 1 {
		t.Fatalf("bad message: %+v", msg)
	}
	if v, _ := msg.Property("tenant"); v != "acme" {
		t.Fatalf("tenant property lost: %v", msg.Properties)
	}
	if _, ok := msg.Property(HeaderSchema); ok {
		t.Fatalf("schema header must not be a property")
	}
	if msg.Schema == nil || msg.Schema.Format != "avro" {
		t.Fatalf("embedded schema lost: %+v", msg.Schema)
	}
}

// Ack одного сообщения не коммитит более ранние неподтверждённые
func TestAcknowledge_CommitsOnlyContiguousPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	m1 := kafka.Message{Partition: 0, Offset: 1}
	m2 := kafka.Message{Partition: 0, Offset: 2}
	fetchOK(r, m1, m2)

	c := newTestClient(r)
	ctx := context.Background()
	d1, _ := c.Receive(ctx, time.Second)
	d2, _ := c.Receive(ctx, time.Second)

	// ack второго — коммита нет
	if err := c.Acknowledge(ctx, d2); err != nil {
		t.Fatalf("ack m2: %v", err)
	}
	// ack первого — коммитится префикс до m2 включительно
	r.EXPECT().CommitMessages(gomock.Any(), m2).Return(nil)
	if err := c.Acknowledge(ctx, d1); err != nil {
		t.Fatalf("ack m1: %v", err)
	}
	if n := c.Outstanding(); n != 0 {
		t.Fatalf("outstanding=%d, want 0", n)
	}
}

// Кумулятивный ack коммитит всё полученное до сообщения по всем партициям
func TestAcknowledgeCumulative_AllPartitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	a := kafka.Message{Partition: 0, Offset: 5}
	b := kafka.Message{Partition: 1, Offset: 7}
	late := kafka.Message{Partition: 0, Offset: 6}
	fetchOK(r, a, b, late)

	c := newTestClient(r)
	ctx := context.Background()
	_, _ = c.Receive(ctx, time.Second)
	last, _ := c.Receive(ctx, time.Second)
	_, _ = c.Receive(ctx, time.Second) // после «последнего» — не подтверждается

	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			got := map[int]int64{}
			for _, m := range msgs {
				got[m.Partition] = m.Offset
			}
			if got[0] != 5 || got[1] != 7 || len(got) != 2 {
				t.Fatalf("unexpected commits: %v", got)
			}
			return nil
		})

	if err := c.AcknowledgeCumulative(ctx, last); err != nil {
		t.Fatalf("cumulative ack: %v", err)
	}
	if n := c.Outstanding(); n != 1 {
		t.Fatalf("outstanding=%d, want 1", n)
	}
}

// Ошибка коммита возвращается, а подтверждение уходит со следующим коммитом
func TestAcknowledgeAsync_CommitErrorRetriedLater(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	m1 := kafka.Message{Partition: 0, Offset: 1}
	m2 := kafka.Message{Partition: 0, Offset: 2}
	fetchOK(r, m1, m2)

	c := newTestClient(r)
	ctx := context.Background()
	d1, _ := c.Receive(ctx, time.Second)
	d2, _ := c.Receive(ctx, time.Second)

	gomock.InOrder(
		r.EXPECT().CommitMessages(gomock.Any(), m1).Return(errors.New("coordinator moved")),
		r.EXPECT().CommitMessages(gomock.Any(), m2).Return(nil),
	)

	if err := <-c.AcknowledgeAsync(ctx, d1); err == nil {
		t.Fatalf("want commit error")
	}
	if err := <-c.AcknowledgeCumulativeAsync(ctx, d2); err != nil {
		t.Fatalf("second ack: %v", err)
	}
}

// Неподтверждённое сообщение держит партицию: хвост растёт и виден в метрике
func TestAcknowledge_UnackedHeadHoldsBacklog(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	m1 := kafka.Message{Partition: 0, Offset: 1}
	m2 := kafka.Message{Partition: 0, Offset: 2}
	m3 := kafka.Message{Partition: 0, Offset: 3}
	fetchOK(r, m1, m2, m3)

	c := newTestClient(r)
	ctx := context.Background()
	d1, _ := c.Receive(ctx, time.Second)
	d2, _ := c.Receive(ctx, time.Second)
	d3, _ := c.Receive(ctx, time.Second)

	if err := c.Acknowledge(ctx, d2); err != nil {
		t.Fatalf("ack m2: %v", err)
	}
	if err := c.Acknowledge(ctx, d3); err != nil {
		t.Fatalf("ack m3: %v", err)
	}
	if n := c.Outstanding(); n != 3 {
		t.Fatalf("outstanding=%d, want 3", n)
	}
	if got := testutil.ToFloat64(metrics.KafkaOutstanding); got != 3 {
		t.Fatalf("outstanding gauge=%v, want 3", got)
	}
	p, off, ok := c.OldestUnacked()
	if !ok || p != 0 || off != 1 {
		t.Fatalf("oldest unacked: partition=%d offset=%d ok=%t", p, off, ok)
	}

	r.EXPECT().CommitMessages(gomock.Any(), m3).Return(nil)
	if err := c.Acknowledge(ctx, d1); err != nil {
		t.Fatalf("ack m1: %v", err)
	}
	if got := testutil.ToFloat64(metrics.KafkaOutstanding); got != 0 {
		t.Fatalf("outstanding gauge=%v, want 0", got)
	}
	if _, _, ok := c.OldestUnacked(); ok {
		t.Fatalf("nothing must be unacked")
	}
}

func TestClient_CloseOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().Close().Return(nil).Times(1)

	c := newTestClient(r)
	_ = c.Close()
	_ = c.Close()
}
