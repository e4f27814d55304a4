package ports

import "context"

// MessageConsumer — долгоживущий цикл потребления (планировщик триггеров пайплайна).
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
