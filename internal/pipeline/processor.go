package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
)

const tracerName = "github.com/Gunvolt24/wb_records/internal/pipeline"

// Config — параметры обработки батча.
type Config struct {
	// MaxMessages — максимум сообщений за один триггер; 0 — без ограничения.
	MaxMessages int
	// Demarcator — разделитель сырых данных в юните parse_failure.
	Demarcator []byte
	// MaxWait — сколько drain-цикл ждёт завершения очередной фоновой выборки.
	MaxWait      time.Duration
	Async        bool
	Subscription SubscriptionType
}

// Deps — зависимости процессора.
// Fetcher и Acks нужны только в async-режиме.
type Deps struct {
	Consumer ports.Consumer
	Sessions ports.SessionFactory
	Grouper  *Grouper
	Encoder  *Encoder
	Fetcher  FetchSource
	Acks     *AckPool
	Log      ports.Logger
}

// BatchReport — итог обработки одного батча.
type BatchReport struct {
	BatchID  string
	Messages int
	Groups   int
	Records  int
	// Units — закоммиченные юниты success в порядке групп.
	Units []*domain.OutputUnit
	// FailureUnit — закоммиченный юнит parse_failure (nil, если сбоев не было).
	FailureUnit *domain.OutputUnit
	Failed      int
	Policy      AckPolicy
	// CommitFailed — хотя бы один коммит не удался; кумулятивный ack не отправлялся.
	CommitFailed bool
}

// Processor — обработка батча сообщений: группировка, запись, сбои, подтверждения.
type Processor struct {
	cfg      Config
	consumer ports.Consumer
	sessions ports.SessionFactory
	grouper  *Grouper
	encoder  *Encoder
	fetcher  FetchSource
	acks     *AckPool
	drain    *DrainLoop
	log      ports.Logger
	tracer   trace.Tracer

	// uncovered — какой-то батч не закоммитил вывод и не подтверждён. Кумулятивный ack
	// любого следующего батча покрыл бы и его, поэтому до перезапуска подтверждаем по одному.
	uncovered atomic.Bool
}

func NewProcessor(cfg Config, deps Deps) *Processor {
	if cfg.Demarcator == nil {
		cfg.Demarcator = []byte("\n")
	}
	p := &Processor{
		cfg:      cfg,
		consumer: deps.Consumer,
		sessions: deps.Sessions,
		grouper:  deps.Grouper,
		encoder:  deps.Encoder,
		fetcher:  deps.Fetcher,
		acks:     deps.Acks,
		log:      deps.Log,
		tracer:   otel.Tracer(tracerName),
	}
	if deps.Fetcher != nil {
		p.drain = NewDrainLoop(deps.Fetcher, cfg.MaxWait, func(ctx context.Context, msgs []*domain.Message) {
			p.ProcessBatch(ctx, msgs, true)
		}, deps.Log)
	}
	return p
}

// Trigger — один запуск обработки.
// sync: забрать до MaxMessages сообщений без ожидания и обработать их одним батчем;
// async: запустить фоновую выборку и вычерпать завершённые выборки.
// Возвращает число обработанных сообщений; ошибка брокера — ErrBrokerCommunication.
func (p *Processor) Trigger(ctx context.Context) (int, error) {
	if p.cfg.Async && p.drain != nil {
		p.fetcher.Submit(ctx, p.cfg.MaxMessages)
		return p.drain.Run(ctx), nil
	}

	msgs, err := ReceiveBatch(ctx, p.consumer, p.cfg.MaxMessages, 0)
	if err != nil {
		p.log.Errorf(ctx, "unable to consume from topic %s: %v", p.consumer.Topic(), err)
		return 0, fmt.Errorf("%w: %w", domain.ErrBrokerCommunication, err)
	}
	p.ProcessBatch(ctx, msgs, false)
	return len(msgs), nil
}

// ProcessBatch обрабатывает батч.
// Каждый юнит коммитится до подтверждений, которые от него зависят:
// shared — ack каждого сообщения после коммита его юнита; иначе — один кумулятивный ack
// последнего сообщения после всех коммитов (и только если все они прошли).
// После первого батча с неудачным коммитом exclusive/failover подтверждают только
// закоммиченные сообщения, каждое отдельно.
func (p *Processor) ProcessBatch(ctx context.Context, msgs []*domain.Message, async bool) BatchReport {
	policy := ResolveAckPolicy(p.cfg.Subscription, async)
	report := BatchReport{Messages: len(msgs), Policy: policy}
	if len(msgs) == 0 {
		return report
	}

	report.BatchID = uuid.NewString()
	ctx = ctxmeta.WithBatchID(ctx, report.BatchID)
	start := time.Now()
	defer func() { metrics.BatchDuration.Observe(time.Since(start).Seconds()) }()

	topic := p.consumer.Topic()
	ctx, span := p.tracer.Start(ctx, "pipeline.ProcessBatch", trace.WithAttributes(
		attribute.String("topic", topic),
		attribute.Int("messages", len(msgs)),
		attribute.String("ack.policy", policy.String()),
	))
	defer span.End()

	metrics.MessagesReceived.WithLabelValues(topic).Add(float64(len(msgs)))

	acker := NewAckCoordinator(p.consumer, policy, p.acks, p.log)
	session := p.sessions.NewSession()
	failures := &Failures{}

	groups := p.grouper.Group(ctx, msgs, failures)
	report.Groups = len(groups)

	for _, group := range groups {
		res, err := p.encodeGroup(ctx, session, group, failures)
		if err != nil {
			// Сообщения группы уже в failures.
			continue
		}
		if !res.Empty() {
			if err := session.Commit(ctx); err != nil {
				session.Rollback()
				report.CommitFailed = true
				span.RecordError(err)
				p.log.Errorf(ctx, "%v: commit unit of %d messages: %v", domain.ErrOutputWrite, len(res.Written), err)
				continue
			}
			report.Units = append(report.Units, res.Unit)
			report.Records += res.RecordCount
			metrics.RecordsWritten.WithLabelValues(topic).Add(float64(res.RecordCount))
			metrics.UnitsTransferred.WithLabelValues(string(domain.RelSuccess)).Inc()
		}
		acker.Accounted(ctx, res.Written)
	}

	report.Failed = failures.Len()
	if failed := failures.Messages(); len(failed) > 0 {
		unit, err := failures.Flush(session, p.cfg.Demarcator)
		if err == nil {
			err = session.Commit(ctx)
		}
		if err != nil {
			session.Rollback()
			report.CommitFailed = true
			span.RecordError(err)
			p.log.Errorf(ctx, "unable to store %d failed messages: %v", len(failed), err)
		} else {
			report.FailureUnit = unit
			metrics.UnitsTransferred.WithLabelValues(string(domain.RelParseFailure)).Inc()
			acker.Accounted(ctx, failed)
		}
	}

	if report.CommitFailed {
		span.SetStatus(codes.Error, "commit failed")
		if !policy.PerMessage() && p.uncovered.CompareAndSwap(false, true) {
			p.log.Warnf(ctx, "batch %s: not every unit was committed, cumulative acknowledgment disabled until restart", report.BatchID)
		}
	}
	if p.uncovered.Load() {
		acker.FinishEach(ctx)
	} else {
		acker.Finish(ctx, msgs[len(msgs)-1])
	}

	p.log.Infof(ctx, "batch %s processed: messages=%d groups=%d records=%d failed=%d commit_failed=%t",
		report.BatchID, report.Messages, report.Groups, report.Records, report.Failed, report.CommitFailed)
	return report
}

func (p *Processor) encodeGroup(ctx context.Context, session ports.Session, group *Group, failures *Failures) (EncodeResult, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.EncodeGroup", trace.WithAttributes(
		attribute.String("group.key", group.Key.ID()),
		attribute.Int("messages", len(group.Messages)),
	))
	defer span.End()

	res, err := p.encoder.Encode(ctx, session, group, failures)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	span.SetAttributes(attribute.Int("records", res.RecordCount))
	return res, nil
}
