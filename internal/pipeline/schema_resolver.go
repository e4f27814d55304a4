package pipeline

import (
	"context"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

// defaultEmbeddedFormat — формат встроенной схемы, если брокер его не указал.
const defaultEmbeddedFormat = "avro"

// SchemaResolver определяет схему сообщения: встроенную или выведенную ридером.
// Ничего не кэширует, вызывается один раз на сообщение.
type SchemaResolver struct {
	readers ports.RecordReaderFactory
	log     ports.Logger
}

func NewSchemaResolver(readers ports.RecordReaderFactory, log ports.Logger) *SchemaResolver {
	return &SchemaResolver{readers: readers, log: log}
}

// Resolve возвращает (schema, true) или (nil, false), если схему получить не удалось.
// Ошибка наружу не пробрасывается: вызывающий отправляет сообщение в failures.
func (r *SchemaResolver) Resolve(ctx context.Context, msg *domain.Message) (*domain.Schema, bool) {
	if msg.Schema != nil && len(msg.Schema.Definition) > 0 {
		format := msg.Schema.Format
		if format == "" {
			format = defaultEmbeddedFormat
		}
		text := string(msg.Schema.Definition)
		return &domain.Schema{
			Format: format,
			Text:   text,
			Fields: domain.ParseSchemaFields(text),
		}, true
	}

	schema, err := r.readers.SchemaOf(msg.Value)
	if err != nil || schema == nil {
		r.log.Warnf(ctx, "unable to determine the schema topic=%s offset=%d: %v", msg.Topic, msg.Offset, err)
		return nil, false
	}
	return schema, true
}
