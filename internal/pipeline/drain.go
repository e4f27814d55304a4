package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

// FetchSource — источник завершённых фоновых выборок.
type FetchSource interface {
	Submit(ctx context.Context, max int) bool
	Poll(ctx context.Context, timeout time.Duration) (*Fetch, error)
}

// DrainState — состояние цикла вычерпывания.
type DrainState int32

const (
	DrainIdle DrainState = iota
	DrainPolling
	DrainProcessing
)

func (s DrainState) String() string {
	switch s {
	case DrainIdle:
		return "idle"
	case DrainPolling:
		return "polling"
	case DrainProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// DrainLoop (только async) забирает завершённые выборки и обрабатывает каждую как отдельный батч,
// пока за timeout не перестанут появляться новые.
type DrainLoop struct {
	source  FetchSource
	timeout time.Duration
	process func(ctx context.Context, msgs []*domain.Message)
	log     ports.Logger
	state   atomic.Int32
}

func NewDrainLoop(source FetchSource, timeout time.Duration, process func(context.Context, []*domain.Message), log ports.Logger) *DrainLoop {
	return &DrainLoop{source: source, timeout: timeout, process: process, log: log}
}

func (d *DrainLoop) State() DrainState { return DrainState(d.state.Load()) }

// Run: Idle → Polling → Processing → Polling → … → Idle.
// Сбой выборки или отмена контекста логируются, цикл завершается без ошибки.
// Возвращает число обработанных сообщений.
func (d *DrainLoop) Run(ctx context.Context) int {
	defer d.state.Store(int32(DrainIdle))

	total := 0
	for {
		d.state.Store(int32(DrainPolling))
		fetch, err := d.source.Poll(ctx, d.timeout)
		if err != nil {
			d.log.Errorf(ctx, "trouble consuming messages: %v", err)
			return total
		}
		if fetch == nil {
			return total
		}

		msgs, err := fetch.Result()
		if err != nil {
			d.log.Errorf(ctx, "trouble consuming messages: %v", err)
			return total
		}
		if len(msgs) == 0 {
			continue
		}

		d.state.Store(int32(DrainProcessing))
		d.process(ctx, msgs)
		total += len(msgs)
	}
}
