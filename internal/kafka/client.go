package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
)

// Заголовки, из которых собирается встроенная схема сообщения.
const (
	HeaderSchema       = "schema"
	HeaderSchemaFormat = "schema.format"
)

var _ ports.Consumer = (*Client)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

type tracked struct {
	seq   uint64
	msg   kafka.Message
	acked bool
}

// Client — ports.Consumer поверх kafka.Reader.
//
// Kafka коммитит оффсеты кумулятивно по партиции, поэтому подтверждения отдельных сообщений
// копятся, и коммитится только непрерывный префикс подтверждённых сообщений каждой партиции.
// Так ack одного сообщения не подтверждает более ранние неподтверждённые.
type Client struct {
	reader       reader
	topic        string
	pollInterval time.Duration

	mu       sync.Mutex
	seq      uint64
	inflight map[int][]*tracked // по партициям, в порядке получения

	closeOnce sync.Once
}

func NewClient(cfg *ConsumerConfig) *Client {
	c := cfg.withDefaults()
	return newClient(kafka.NewReader(cfg.ReaderConfig()), cfg.Topic, c.PollInterval)
}

func newClient(r reader, topic string, poll time.Duration) *Client {
	return &Client{reader: r, topic: topic, pollInterval: poll, inflight: make(map[int][]*tracked)}
}

func (c *Client) Topic() string { return c.topic }

// Receive ждёт сообщение не дольше timeout (timeout <= 0 — короткий опрос pollInterval).
// Истечение ожидания — (nil, nil); отмена ctx — ошибка ctx.
func (c *Client) Receive(ctx context.Context, timeout time.Duration) (*domain.Message, error) {
	wait := timeout
	if wait <= 0 {
		wait = c.pollInterval
	}
	fetchCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	m, err := c.reader.FetchMessage(fetchCtx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch message: %w", err)
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.inflight[m.Partition] = append(c.inflight[m.Partition], &tracked{seq: seq, msg: m})
	metrics.KafkaOutstanding.Set(float64(c.outstandingLocked()))
	c.mu.Unlock()

	return toDomain(m, seq), nil
}

// Acknowledge подтверждает одно сообщение.
func (c *Client) Acknowledge(ctx context.Context, msg *domain.Message) error {
	return c.ack(ctx, func(t *tracked) bool { return t.seq == msg.Sequence })
}

// AcknowledgeCumulative подтверждает msg и все полученные до него сообщения (по всем партициям).
func (c *Client) AcknowledgeCumulative(ctx context.Context, msg *domain.Message) error {
	return c.ack(ctx, func(t *tracked) bool { return t.seq <= msg.Sequence })
}

func (c *Client) AcknowledgeAsync(ctx context.Context, msg *domain.Message) <-chan error {
	return async(func() error { return c.Acknowledge(ctx, msg) })
}

func (c *Client) AcknowledgeCumulativeAsync(ctx context.Context, msg *domain.Message) <-chan error {
	return async(func() error { return c.AcknowledgeCumulative(ctx, msg) })
}

func async(fn func() error) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
		close(ch)
	}()
	return ch
}

// ack отмечает подходящие сообщения и коммитит подтверждённые префиксы партиций.
// Если коммит не удался, сообщения остаются отмеченными и уйдут со следующим коммитом.
func (c *Client) ack(ctx context.Context, match func(*tracked) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, list := range c.inflight {
		for _, t := range list {
			if match(t) {
				t.acked = true
			}
		}
	}

	commits := make([]kafka.Message, 0, len(c.inflight))
	prefix := make(map[int]int, len(c.inflight))
	for partition, list := range c.inflight {
		n := 0
		for n < len(list) && list[n].acked {
			n++
		}
		if n > 0 {
			prefix[partition] = n
			commits = append(commits, list[n-1].msg)
		}
	}
	if len(commits) == 0 {
		return nil
	}

	if err := c.reader.CommitMessages(ctx, commits...); err != nil {
		return fmt.Errorf("commit offsets: %w", err)
	}
	for partition, n := range prefix {
		rest := c.inflight[partition][n:]
		if len(rest) == 0 {
			delete(c.inflight, partition)
			continue
		}
		c.inflight[partition] = rest
	}
	metrics.KafkaOutstanding.Set(float64(c.outstandingLocked()))
	return nil
}

// Outstanding — число полученных, но ещё не закоммиченных сообщений.
func (c *Client) Outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outstandingLocked()
}

func (c *Client) outstandingLocked() int {
	n := 0
	for _, list := range c.inflight {
		n += len(list)
	}
	return n
}

// OldestUnacked — самое раннее неподтверждённое сообщение; именно оно держит префикс своей партиции.
func (c *Client) OldestUnacked() (partition int, offset int64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var oldest *tracked
	for _, list := range c.inflight {
		for _, t := range list {
			if t.acked {
				continue
			}
			if oldest == nil || t.seq < oldest.seq {
				oldest = t
			}
			break
		}
	}
	if oldest == nil {
		return 0, 0, false
	}
	return oldest.msg.Partition, oldest.msg.Offset, true
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Client) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}

func toDomain(m kafka.Message, seq uint64) *domain.Message {
	msg := &domain.Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       string(m.Key),
		HasKey:    m.Key != nil,
		Value:     m.Value,
		Sequence:  seq,
	}

	var schema, format string
	if len(m.Headers) > 0 {
		msg.Properties = make(map[string]string, len(m.Headers))
	}
	for _, h := range m.Headers {
		switch h.Key {
		case HeaderSchema:
			schema = string(h.Value)
		case HeaderSchemaFormat:
			format = string(h.Value)
		default:
			msg.Properties[h.Key] = string(h.Value)
		}
	}
	if schema != "" {
		msg.Schema = &domain.SchemaInfo{Format: format, Definition: []byte(schema)}
	}
	return msg
}
