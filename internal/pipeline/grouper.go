package pipeline

import (
	"context"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
)

// Group — сообщения с одинаковым ключом в порядке поступления и схема ключа.
type Group struct {
	Key      GroupKey
	Schema   *domain.Schema
	Messages []*domain.Message
}

// Grouper разбивает батч на группы по отпечатку (схема + атрибуты).
type Grouper struct {
	resolver *SchemaResolver
	mapping  AttributeMapping
	log      ports.Logger
}

func NewGrouper(resolver *SchemaResolver, mapping AttributeMapping, log ports.Logger) *Grouper {
	return &Grouper{resolver: resolver, mapping: mapping, log: log}
}

// Group — один проход по батчу, O(n).
// Порядок групп — порядок первого появления ключа; внутри группы — порядок поступления.
// Сообщения без схемы в группы не попадают, а сразу уходят в failures.
func (g *Grouper) Group(ctx context.Context, msgs []*domain.Message, failures *Failures) []*Group {
	var groups []*Group
	index := make(map[string]int)

	for _, msg := range msgs {
		attrs := g.mapping.Apply(msg)
		schema, ok := g.resolver.Resolve(ctx, msg)
		if !ok {
			metrics.ParseFailures.WithLabelValues(msg.Topic, "schema").Inc()
			failures.Add(msg)
			continue
		}

		key := Fingerprint(schema, attrs)
		if i, found := index[key.ID()]; found {
			groups[i].Messages = append(groups[i].Messages, msg)
			continue
		}
		index[key.ID()] = len(groups)
		groups = append(groups, &Group{Key: key, Schema: schema, Messages: []*domain.Message{msg}})
	}
	return groups
}
