package pipeline

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strconv"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
)

// EncodeResult — итог записи одной группы.
// Unit == nil означает, что юнит отброшен (ни одной записи).
type EncodeResult struct {
	Unit        *domain.OutputUnit
	RecordCount int
	// Written — сообщения группы, учтённые в юните (все их записи записаны).
	Written []*domain.Message
}

// Empty — группа не дала ни одной записи, юнит откатан.
func (r EncodeResult) Empty() bool { return r.Unit == nil }

// Encoder записывает группу сообщений в один выходной юнит.
type Encoder struct {
	readers    ports.RecordReaderFactory
	writers    ports.RecordWriterFactory
	provenance string
	log        ports.Logger
}

// NewEncoder — provenance попадает в атрибут provenance.uri каждого успешного юнита.
func NewEncoder(readers ports.RecordReaderFactory, writers ports.RecordWriterFactory, provenance string, log ports.Logger) *Encoder {
	return &Encoder{readers: readers, writers: writers, provenance: provenance, log: log}
}

// Encode:
//  1. создаёт юнит и вешает атрибуты группы и текст схемы;
//  2. получает писателя под схему группы (ошибка → вся группа в failures, ErrWriterSetup);
//  3. декодирует сообщения по порядку и проверяет записи писателем до записи первой из них;
//     ошибка декодирования или несовпадение со схемой → сообщение в failures, группа продолжается;
//  4. завершает набор: 0 записей → юнит удаляется, иначе атрибуты писателя + record.count и Transfer в success.
//
// Ошибка записи выходных байт (ErrOutputWrite) отбрасывает юнит только этой группы,
// а её ещё не отправленные в failures сообщения переносятся туда.
func (e *Encoder) Encode(ctx context.Context, session ports.Session, group *Group, failures *Failures) (EncodeResult, error) {
	unit := session.Create()
	attrs := group.Key.Attributes()
	if schemaText, ok := group.Key.SchemaText(); ok {
		attrs[group.Schema.SchemaAttribute()] = schemaText
	}
	session.PutAttributes(unit, attrs)
	out := session.Write(unit)

	writer, err := e.writers.WriterFor(group.Schema, out)
	if err != nil {
		return e.abandon(ctx, session, unit, out, group.Messages, failures, "writer",
			fmt.Errorf("%w: %v", domain.ErrWriterSetup, err))
	}
	if err := writer.BeginSet(); err != nil {
		_ = writer.Close()
		return e.abandon(ctx, session, unit, out, group.Messages, failures, "writer",
			fmt.Errorf("%w: begin record set: %v", domain.ErrWriterSetup, err))
	}

	written := make([]*domain.Message, 0, len(group.Messages))
	for i, msg := range group.Messages {
		records, err := e.readers.RecordsOf(msg.Value)
		if err != nil {
			metrics.ParseFailures.WithLabelValues(msg.Topic, "decode").Inc()
			e.log.Warnf(ctx, "record decode failed topic=%s offset=%d: %v", msg.Topic, msg.Offset, err)
			failures.Add(msg)
			continue
		}
		if err := checkRecords(writer, records); err != nil {
			metrics.ParseFailures.WithLabelValues(msg.Topic, "schema").Inc()
			e.log.Warnf(ctx, "%v: record does not fit schema topic=%s offset=%d: %v", domain.ErrRecordDecode, msg.Topic, msg.Offset, err)
			failures.Add(msg)
			continue
		}

		for _, rec := range records {
			if err := writer.Write(rec); err != nil {
				_ = writer.Close()
				pending := append(written, group.Messages[i:]...)
				return e.abandon(ctx, session, unit, out, pending, failures, "output",
					fmt.Errorf("%w: write record: %v", domain.ErrOutputWrite, err))
			}
		}
		written = append(written, msg)
	}

	result, err := writer.FinishSet()
	closeErr := writer.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return e.abandon(ctx, session, unit, out, written, failures, "output",
			fmt.Errorf("%w: finish record set: %v", domain.ErrOutputWrite, err))
	}
	if err := out.Close(); err != nil {
		session.Remove(unit)
		failures.Add(written...)
		metrics.ParseFailures.WithLabelValues(topicOf(written), "output").Add(float64(len(written)))
		e.log.Errorf(ctx, "unable to finalize output unit: %v", err)
		return EncodeResult{}, fmt.Errorf("%w: close output: %v", domain.ErrOutputWrite, err)
	}

	if result.RecordCount == 0 {
		// Ни одной записи — юнит не передаётся.
		session.Remove(unit)
		return EncodeResult{Written: written}, nil
	}

	final := maps.Clone(result.Attributes)
	if final == nil {
		final = make(map[string]string, 2)
	}
	final[domain.AttrRecordCount] = strconv.Itoa(result.RecordCount)
	if e.provenance != "" {
		final[domain.AttrProvenance] = e.provenance
	}
	session.PutAttributes(unit, final)
	session.Transfer(unit, domain.RelSuccess)

	return EncodeResult{Unit: unit, RecordCount: result.RecordCount, Written: written}, nil
}

// checkRecords — все записи сообщения пишутся либо ни одна.
func checkRecords(writer ports.RecordSetWriter, records []domain.Record) error {
	for i, rec := range records {
		if err := writer.Check(rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// abandon удаляет юнит группы и переносит pending в failures.
func (e *Encoder) abandon(
	ctx context.Context,
	session ports.Session,
	unit *domain.OutputUnit,
	out io.Closer,
	pending []*domain.Message,
	failures *Failures,
	reason string,
	cause error,
) (EncodeResult, error) {
	_ = out.Close()
	session.Remove(unit)
	failures.Add(pending...)
	metrics.ParseFailures.WithLabelValues(topicOf(pending), reason).Add(float64(len(pending)))
	e.log.Errorf(ctx, "group abandoned messages=%d: %v", len(pending), cause)
	return EncodeResult{}, cause
}

func topicOf(msgs []*domain.Message) string {
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0].Topic
}
