package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
)

// SubscriptionType — тип подписки на стороне брокера.
type SubscriptionType string

const (
	SubscriptionExclusive SubscriptionType = "exclusive"
	SubscriptionFailover  SubscriptionType = "failover"
	SubscriptionShared    SubscriptionType = "shared"
	SubscriptionKeyShared SubscriptionType = "key_shared"
)

// ParseSubscriptionType — регистр и пробелы не важны; "key-shared" и "key_shared" эквивалентны.
func ParseSubscriptionType(s string) (SubscriptionType, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch SubscriptionType(norm) {
	case SubscriptionExclusive, SubscriptionFailover, SubscriptionShared, SubscriptionKeyShared:
		return SubscriptionType(norm), nil
	case "":
		return SubscriptionExclusive, nil
	default:
		return "", fmt.Errorf("unknown subscription type %q", s)
	}
}

// Shared — кумулятивный ack на таких подписках запрещён брокером.
func (t SubscriptionType) Shared() bool {
	return t == SubscriptionShared || t == SubscriptionKeyShared
}

// AckPolicy — политика подтверждений, вычисляется один раз на батч.
type AckPolicy int

const (
	// AckEachSync — каждое сообщение отдельно, блокирующий вызов (shared × sync).
	AckEachSync AckPolicy = iota
	// AckEachAsync — каждое сообщение отдельно через пул (shared × async).
	AckEachAsync
	// AckCumulativeSync — один кумулятивный ack последнего сообщения батча (exclusive/failover × sync).
	AckCumulativeSync
	// AckCumulativeAsync — то же через пул (exclusive/failover × async).
	AckCumulativeAsync
)

// ResolveAckPolicy — {тип подписки × режим исполнения} → политика.
func ResolveAckPolicy(sub SubscriptionType, async bool) AckPolicy {
	switch {
	case sub.Shared() && async:
		return AckEachAsync
	case sub.Shared():
		return AckEachSync
	case async:
		return AckCumulativeAsync
	default:
		return AckCumulativeSync
	}
}

func (p AckPolicy) PerMessage() bool { return p == AckEachSync || p == AckEachAsync }
func (p AckPolicy) Async() bool      { return p == AckEachAsync || p == AckCumulativeAsync }

func (p AckPolicy) String() string {
	switch p {
	case AckEachSync:
		return "each-sync"
	case AckEachAsync:
		return "each-async"
	case AckCumulativeSync:
		return "cumulative-sync"
	case AckCumulativeAsync:
		return "cumulative-async"
	default:
		return "unknown"
	}
}

// AckCoordinator подтверждает сообщения согласно политике батча.
// Ошибки подтверждения только логируются: уже сохранённый вывод не откатывается.
type AckCoordinator struct {
	consumer  ports.Consumer
	policy    AckPolicy
	pool      *AckPool
	log       ports.Logger
	accounted []*domain.Message // учтённые, но ещё не подтверждённые (кумулятивные политики)
}

func NewAckCoordinator(consumer ports.Consumer, policy AckPolicy, pool *AckPool, log ports.Logger) *AckCoordinator {
	return &AckCoordinator{consumer: consumer, policy: policy, pool: pool, log: log}
}

func (a *AckCoordinator) Policy() AckPolicy { return a.policy }

// Accounted — сообщения надёжно учтены (юнит закоммичен).
// Для shared-подписки подтверждается каждое; иначе — запоминаются до Finish/FinishEach.
func (a *AckCoordinator) Accounted(ctx context.Context, msgs []*domain.Message) {
	if !a.policy.PerMessage() {
		a.accounted = append(a.accounted, msgs...)
		return
	}
	for _, msg := range msgs {
		a.Acknowledge(ctx, msg, false)
	}
}

// Finish — конец батча: для exclusive/failover один кумулятивный ack последнего сообщения.
func (a *AckCoordinator) Finish(ctx context.Context, last *domain.Message) {
	if a.policy.PerMessage() || last == nil {
		return
	}
	a.Acknowledge(ctx, last, true)
}

// FinishEach — конец батча без кумулятивного ack: каждое учтённое сообщение подтверждается отдельно.
// Нужен, когда в потоке до last остались сообщения с незакоммиченным выводом.
func (a *AckCoordinator) FinishEach(ctx context.Context) {
	if a.policy.PerMessage() {
		return
	}
	for _, msg := range a.accounted {
		a.Acknowledge(ctx, msg, false)
	}
	a.accounted = nil
}

// Acknowledge — синхронно или через пул, в зависимости от политики.
func (a *AckCoordinator) Acknowledge(ctx context.Context, msg *domain.Message, cumulative bool) {
	mode := "single"
	if cumulative {
		mode = "cumulative"
	}

	if a.policy.Async() && a.pool != nil {
		a.pool.Submit(ctx, AckJob{Message: msg, Mode: mode, Pending: a.pending(ctx, msg, cumulative)})
		return
	}

	var err error
	if cumulative {
		err = a.consumer.AcknowledgeCumulative(ctx, msg)
	} else {
		err = a.consumer.Acknowledge(ctx, msg)
	}
	if err != nil {
		metrics.Acknowledgments.WithLabelValues(mode, "error").Inc()
		a.log.Warnf(ctx, "%v: mode=%s topic=%s offset=%d: %v", domain.ErrAcknowledge, mode, msg.Topic, msg.Offset, err)
		return
	}
	metrics.Acknowledgments.WithLabelValues(mode, "ok").Inc()
}

// pending откладывает асинхронный вызов до момента, когда его возьмёт воркер.
func (a *AckCoordinator) pending(ctx context.Context, msg *domain.Message, cumulative bool) func() <-chan error {
	return func() <-chan error {
		if cumulative {
			return a.consumer.AcknowledgeCumulativeAsync(ctx, msg)
		}
		return a.consumer.AcknowledgeAsync(ctx, msg)
	}
}
