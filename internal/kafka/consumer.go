package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_records/internal/ports"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// trigger — один запуск обработки батча (pipeline.Processor).
type trigger interface {
	Trigger(ctx context.Context) (int, error)
}

// Consumer — планировщик: раз за разом запускает обработку батча поверх Client.
type Consumer struct {
	client       *Client
	processor    trigger
	log          ports.Logger
	idle         time.Duration
	retryInitial time.Duration
	retryMax     time.Duration
	jitterRand   *rand.Rand
	backlogWarn  int
	stalled      bool
	closeOnce    sync.Once
}

func NewConsumer(cfg *ConsumerConfig, client *Client, processor trigger, log ports.Logger) *Consumer {
	c := cfg.withDefaults()
	return &Consumer{
		client:       client,
		processor:    processor,
		log:          log,
		idle:         c.IdleInterval,
		retryInitial: c.RetryInitial,
		retryMax:     c.RetryMax,
		// jitterRand — источник случайности, чтобы рассинхронизировать экспоненциальный backoff.
		jitterRand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		backlogWarn: c.BacklogWarn,
	}
}

// Run — основной цикл:
// 1) триггер: забрать батч и обработать его (коммит вывода, затем подтверждения);
// 2) пустой триггер → короткая пауза;
// 3) ошибка брокера → экспоненциальный backoff с equal-jitter.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.client.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	retry := c.retryInitial
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := c.processor.Trigger(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "trigger failed: %v (will retry in %s)", err, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		c.checkBacklog(ctx)
		if n == 0 && !c.sleepWithBackoff(ctx, c.idle) {
			return ctx.Err()
		}
	}
}

// checkBacklog пишет в лог переход незакоммиченного хвоста через порог и обратно.
// Неподтверждённое сообщение держит коммит партиции, и всё полученное после него копится.
func (c *Consumer) checkBacklog(ctx context.Context) {
	if c.backlogWarn <= 0 {
		return
	}
	n := c.client.Outstanding()
	switch {
	case n >= c.backlogWarn && !c.stalled:
		c.stalled = true
		if p, off, ok := c.client.OldestUnacked(); ok {
			c.log.Warnf(ctx, "%d messages received but not committed (threshold %d), oldest unacknowledged partition=%d offset=%d",
				n, c.backlogWarn, p, off)
			return
		}
		c.log.Warnf(ctx, "%d messages received but not committed (threshold %d)", n, c.backlogWarn)
	case n < c.backlogWarn && c.stalled:
		c.stalled = false
		c.log.Infof(ctx, "uncommitted backlog back to %d messages", n)
	}
}

// Close - закрывает клиента. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.client.Close()
	})
	return retErr
}
