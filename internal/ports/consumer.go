package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// Consumer — возможности клиента брокера, нужные пайплайну.
// Вызовы Acknowledge* должны быть безопасны параллельно с Receive.
type Consumer interface {
	// Receive — следующее сообщение или (nil, nil), если за timeout ничего нет.
	// timeout <= 0 — опрос без ожидания.
	Receive(ctx context.Context, timeout time.Duration) (*domain.Message, error)

	Acknowledge(ctx context.Context, msg *domain.Message) error
	AcknowledgeAsync(ctx context.Context, msg *domain.Message) <-chan error

	// AcknowledgeCumulative подтверждает msg и все более ранние неподтверждённые сообщения.
	AcknowledgeCumulative(ctx context.Context, msg *domain.Message) error
	AcknowledgeCumulativeAsync(ctx context.Context, msg *domain.Message) <-chan error

	Topic() string
}
