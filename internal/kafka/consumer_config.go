package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string

	// PollInterval — сколько ждать сообщения при Receive без таймаута (опрос без ожидания).
	PollInterval time.Duration
	// IdleInterval — пауза между триггерами, если предыдущий ничего не забрал.
	IdleInterval time.Duration
	RetryInitial time.Duration
	RetryMax     time.Duration
	// BacklogWarn — сколько полученных, но не закоммиченных сообщений считать застоем.
	BacklogWarn int
}

// ReaderConfig — ручной коммит оффсетов (CommitInterval = 0).
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		CommitInterval: 0,
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}

func (c *ConsumerConfig) withDefaults() ConsumerConfig {
	out := *c
	if out.PollInterval <= 0 {
		out.PollInterval = 50 * time.Millisecond
	}
	if out.IdleInterval <= 0 {
		out.IdleInterval = 200 * time.Millisecond
	}
	if out.RetryInitial <= 0 {
		out.RetryInitial = 1 * time.Second
	}
	if out.RetryMax <= 0 {
		out.RetryMax = 30 * time.Second
	}
	if out.BacklogWarn <= 0 {
		out.BacklogWarn = 10000
	}
	return out
}
