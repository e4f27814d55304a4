package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/internal/records"
	"github.com/Gunvolt24/wb_records/internal/repo/memory"
	"github.com/Gunvolt24/wb_records/internal/repo/session"
)

const testTopic = "records"

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

type ackCall struct {
	offset     int64
	cumulative bool
}

// fakeConsumer — очередь сообщений в памяти и журнал подтверждений.
type fakeConsumer struct {
	mu      sync.Mutex
	queue   []*domain.Message
	recvErr error
	ackErr  error
	acks    []ackCall
}

func newFakeConsumer(msgs ...*domain.Message) *fakeConsumer {
	return &fakeConsumer{queue: msgs}
}

func (f *fakeConsumer) Receive(context.Context, time.Duration) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recvErr != nil {
		return nil, f.recvErr
	}
	if len(f.queue) == 0 {
		return nil, nil
	}
	m := f.queue[0]
	f.queue = f.queue[1:]
	return m, nil
}

func (f *fakeConsumer) record(msg *domain.Message, cumulative bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks = append(f.acks, ackCall{offset: msg.Offset, cumulative: cumulative})
	return f.ackErr
}

func (f *fakeConsumer) Acknowledge(_ context.Context, msg *domain.Message) error {
	return f.record(msg, false)
}

func (f *fakeConsumer) AcknowledgeCumulative(_ context.Context, msg *domain.Message) error {
	return f.record(msg, true)
}

func (f *fakeConsumer) AcknowledgeAsync(_ context.Context, msg *domain.Message) <-chan error {
	ch := make(chan error, 1)
	ch <- f.record(msg, false)
	return ch
}

func (f *fakeConsumer) AcknowledgeCumulativeAsync(_ context.Context, msg *domain.Message) <-chan error {
	ch := make(chan error, 1)
	ch <- f.record(msg, true)
	return ch
}

func (f *fakeConsumer) Topic() string { return testTopic }

func (f *fakeConsumer) Acks() []ackCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ackCall(nil), f.acks...)
}

// flakyStore — UnitStore, который падает на вызовах с заданными номерами (с 1).
type flakyStore struct {
	*memory.UnitStore
	mu    sync.Mutex
	calls int
	fail  map[int]bool
}

func newFlakyStore(failCalls ...int) *flakyStore {
	fail := make(map[int]bool, len(failCalls))
	for _, n := range failCalls {
		fail[n] = true
	}
	return &flakyStore{UnitStore: memory.NewUnitStore(), fail: fail}
}

func (s *flakyStore) SaveUnits(ctx context.Context, units []*domain.OutputUnit) error {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	if s.fail[n] {
		return errors.New("store unavailable")
	}
	return s.UnitStore.SaveUnits(ctx, units)
}

func msg(offset int64, value string, props map[string]string) *domain.Message {
	return &domain.Message{
		Topic:      testTopic,
		Offset:     offset,
		Value:      []byte(value),
		Properties: props,
		Sequence:   uint64(offset),
	}
}

func tenant(t string) map[string]string { return map[string]string{"tenant": t} }

const embeddedAvro = `{"type":"record","name":"r","fields":[{"name":"id","type":"long"}]}`

// withEmbeddedSchema — сообщение со встроенной схемой: схема разрешается, даже если тело битое.
func withEmbeddedSchema(m *domain.Message) *domain.Message {
	m.Schema = &domain.SchemaInfo{Definition: []byte(embeddedAvro)}
	return m
}

type testEnv struct {
	consumer *fakeConsumer
	store    ports.UnitStore
	units    *memory.UnitStore
	proc     *Processor
}

func newTestEnv(t *testing.T, cfg Config, mapping string, store ports.UnitStore, consumer *fakeConsumer) *testEnv {
	t.Helper()

	var units *memory.UnitStore
	switch s := store.(type) {
	case nil:
		units = memory.NewUnitStore()
		store = units
	case *memory.UnitStore:
		units = s
	case *flakyStore:
		units = s.UnitStore
	}

	readers := records.NewJSONReader()
	writers, err := records.NewWriterFactory(records.Options{WriterFormat: "json"})
	require.NoError(t, err)
	m, err := ParseAttributeMapping(mapping)
	require.NoError(t, err)

	log := nopLogger{}
	proc := NewProcessor(cfg, Deps{
		Consumer: consumer,
		Sessions: session.NewFactory(store),
		Grouper:  NewGrouper(NewSchemaResolver(readers, log), m, log),
		Encoder:  NewEncoder(readers, writers, "kafka://test/"+testTopic, log),
		Log:      log,
	})
	return &testEnv{consumer: consumer, store: store, units: units, proc: proc}
}
