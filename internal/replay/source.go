package replay

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

var _ ports.Consumer = (*Source)(nil)

// Source — брокер в памяти поверх заранее загруженных сообщений.
type Source struct {
	mu       sync.Mutex
	queue    []*domain.Message
	received []*domain.Message
	acked    map[uint64]struct{}
	seq      uint64
}

func NewSource(msgs []*domain.Message) *Source {
	return &Source{queue: append([]*domain.Message(nil), msgs...), acked: make(map[uint64]struct{})}
}

func (s *Source) Topic() string { return "replay" }

// Receive отдаёт следующее сообщение; (nil, nil) — очередь пуста.
func (s *Source) Receive(_ context.Context, _ time.Duration) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, nil
	}
	msg := s.queue[0]
	s.queue = s.queue[1:]
	s.seq++
	msg.Sequence = s.seq
	s.received = append(s.received, msg)
	return msg, nil
}

func (s *Source) Acknowledge(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acked[msg.Sequence] = struct{}{}
	return nil
}

func (s *Source) AcknowledgeCumulative(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.received {
		if m.Sequence <= msg.Sequence {
			s.acked[m.Sequence] = struct{}{}
		}
	}
	return nil
}

func (s *Source) AcknowledgeAsync(ctx context.Context, msg *domain.Message) <-chan error {
	return done(s.Acknowledge(ctx, msg))
}

func (s *Source) AcknowledgeCumulativeAsync(ctx context.Context, msg *domain.Message) <-chan error {
	return done(s.AcknowledgeCumulative(ctx, msg))
}

func done(err error) <-chan error {
	ch := make(chan error, 1)
	ch <- err
	close(ch)
	return ch
}

// Acked — число подтверждённых сообщений.
func (s *Source) Acked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.acked)
}
