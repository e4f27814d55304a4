package app

import (
	"fmt"

	"github.com/Gunvolt24/wb_records/config"
	"github.com/Gunvolt24/wb_records/internal/pipeline"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/internal/records"
)

// Pipeline — собранный обработчик батчей и его пул асинхронных подтверждений.
type Pipeline struct {
	Processor *pipeline.Processor
	Acks      *pipeline.AckPool
}

// Close останавливает пул подтверждений, дождавшись поставленных задач.
func (p *Pipeline) Close() {
	if p != nil && p.Acks != nil {
		p.Acks.Close()
	}
}

// NewPipeline собирает pipeline.Processor по секции Consumer поверх клиента брокера.
// provenance — источник для атрибута provenance.uri.
func NewPipeline(
	cc config.Consumer,
	consumer ports.Consumer,
	sessions ports.SessionFactory,
	provenance string,
	log ports.Logger,
) (*Pipeline, error) {
	mapping, err := pipeline.ParseAttributeMapping(cc.AttributeMapping)
	if err != nil {
		return nil, fmt.Errorf("attribute mapping: %w", err)
	}
	sub, err := pipeline.ParseSubscriptionType(cc.Subscription)
	if err != nil {
		return nil, err
	}

	opts := records.Options{
		ReaderFormat: cc.ReaderFormat,
		WriterFormat: cc.WriterFormat,
		CSVFields:    cc.CSVFields,
		CSVComma:     cc.Comma(),
		Compression:  cc.Compression,
	}
	readers, err := records.NewReader(opts)
	if err != nil {
		return nil, err
	}
	writers, err := records.NewWriterFactory(opts)
	if err != nil {
		return nil, err
	}

	resolver := pipeline.NewSchemaResolver(readers, log)
	grouper := pipeline.NewGrouper(resolver, mapping, log)
	encoder := pipeline.NewEncoder(readers, writers, provenance, log)
	acks := pipeline.NewAckPool(cc.AckWorkers, cc.AckQueue, log)

	deps := pipeline.Deps{
		Consumer: consumer,
		Sessions: sessions,
		Grouper:  grouper,
		Encoder:  encoder,
		Acks:     acks,
		Log:      log,
	}
	if cc.Async {
		deps.Fetcher = pipeline.NewBackgroundFetcher(consumer, cc.FetchQueue, cc.MaxWait)
	}

	processor := pipeline.NewProcessor(pipeline.Config{
		MaxMessages:  cc.MaxMessages,
		Demarcator:   cc.DemarcatorBytes(),
		MaxWait:      cc.MaxWait,
		Async:        cc.Async,
		Subscription: sub,
	}, deps)

	return &Pipeline{Processor: processor, Acks: acks}, nil
}
