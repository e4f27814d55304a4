package pipeline

import (
	"context"
	"sync"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
)

// AckJob — одна асинхронная операция подтверждения.
type AckJob struct {
	Message *domain.Message
	Mode    string
	Pending func() <-chan error
}

// AckPool — фиксированный пул воркеров над ограниченной очередью.
// Submit не ждёт результата; заполненная очередь блокирует отправителя (backpressure).
// Ошибки видны только в логах и метриках.
type AckPool struct {
	jobs      chan AckJob
	log       ports.Logger
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewAckPool запускает workers воркеров; queue — глубина очереди.
func NewAckPool(workers, queue int, log ports.Logger) *AckPool {
	if workers <= 0 {
		workers = 1
	}
	if queue < 0 {
		queue = 0
	}
	p := &AckPool{jobs: make(chan AckJob, queue), log: log}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

// Submit ставит задачу в очередь. Возвращает false, если пул закрыт или ctx отменён.
func (p *AckPool) Submit(ctx context.Context, job AckJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.log.Warnf(ctx, "ack pool closed, acknowledgment dropped offset=%d", job.Message.Offset)
		return false
	}

	metrics.AckQueueDepth.Inc()
	select {
	case p.jobs <- job:
		return true
	case <-ctx.Done():
		metrics.AckQueueDepth.Dec()
		p.log.Warnf(ctx, "ack submit canceled offset=%d: %v", job.Message.Offset, ctx.Err())
		return false
	}
}

func (p *AckPool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		metrics.AckQueueDepth.Dec()
		p.run(job)
	}
}

func (p *AckPool) run(job AckJob) {
	ctx := context.Background()
	ch := job.Pending()
	if ch == nil {
		return
	}
	if err := <-ch; err != nil {
		metrics.Acknowledgments.WithLabelValues(job.Mode, "error").Inc()
		p.log.Warnf(ctx, "%v: async mode=%s topic=%s offset=%d: %v",
			domain.ErrAcknowledge, job.Mode, job.Message.Topic, job.Message.Offset, err)
		return
	}
	metrics.Acknowledgments.WithLabelValues(job.Mode, "ok").Inc()
}

// Close — перестать принимать задачи и дождаться выполнения очереди.
func (p *AckPool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
		p.wg.Wait()
	})
}
