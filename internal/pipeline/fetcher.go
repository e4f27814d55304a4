package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

// ReceiveBatch забирает до max сообщений (max <= 0 — без ограничения), пока Receive что-то отдаёт.
// При ошибке брокера частичный батч не возвращается.
func ReceiveBatch(ctx context.Context, consumer ports.Consumer, max int, timeout time.Duration) ([]*domain.Message, error) {
	return receiveBatch(ctx, consumer, max, timeout, 0)
}

// receiveBatch: budget > 0 — набор непустого батча прекращается, когда budget истёк.
func receiveBatch(ctx context.Context, consumer ports.Consumer, max int, timeout, budget time.Duration) ([]*domain.Message, error) {
	var deadline time.Time
	if budget > 0 {
		deadline = time.Now().Add(budget)
	}

	var msgs []*domain.Message
	for max <= 0 || len(msgs) < max {
		if !deadline.IsZero() && len(msgs) > 0 && time.Now().After(deadline) {
			break
		}
		msg, err := consumer.Receive(ctx, timeout)
		if err != nil {
			return nil, err
		}
		if msg == nil {
			break
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Fetch — завершённая фоновая выборка.
type Fetch struct {
	messages []*domain.Message
	err      error
}

// NewFetch — готовый результат выборки (используется и источниками в тестах).
func NewFetch(msgs []*domain.Message, err error) *Fetch {
	return &Fetch{messages: msgs, err: err}
}

func (f *Fetch) Result() ([]*domain.Message, error) { return f.messages, f.err }

// BackgroundFetcher выполняет выборки в фоне и складывает завершённые в очередь.
// Одновременно выполняется не больше одной выборки: последовательности сообщений
// следующего батча всегда больше, чем у предыдущего, и кумулятивный ack батча
// не задевает сообщения, которые ещё не обработаны.
type BackgroundFetcher struct {
	consumer ports.Consumer
	budget   time.Duration
	done     chan *Fetch
	inflight atomic.Bool
}

// NewBackgroundFetcher — queue ограничивает число завершённых, но ещё не забранных выборок;
// budget ограничивает время набора одной выборки (<= 0 — пока Receive что-то отдаёт).
func NewBackgroundFetcher(consumer ports.Consumer, queue int, budget time.Duration) *BackgroundFetcher {
	if queue <= 0 {
		queue = 1
	}
	return &BackgroundFetcher{consumer: consumer, budget: budget, done: make(chan *Fetch, queue)}
}

// Submit запускает выборку до max сообщений; результат появится в Poll.
// Пока предыдущая выборка не сдана в очередь, вызов ничего не делает и возвращает false.
func (f *BackgroundFetcher) Submit(ctx context.Context, max int) bool {
	if !f.inflight.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer f.inflight.Store(false)
		msgs, err := receiveBatch(ctx, f.consumer, max, 0, f.budget)
		select {
		case f.done <- NewFetch(msgs, err):
		case <-ctx.Done():
		}
	}()
	return true
}

// Poll ждёт завершённую выборку не дольше timeout; timeout <= 0 — без ожидания.
// (nil, nil) — за отведённое время ничего не завершилось.
func (f *BackgroundFetcher) Poll(ctx context.Context, timeout time.Duration) (*Fetch, error) {
	if timeout <= 0 {
		select {
		case fetch := <-f.done:
			return fetch, nil
		default:
			return nil, nil
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case fetch := <-f.done:
		return fetch, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
