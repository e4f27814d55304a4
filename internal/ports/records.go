package ports

import (
	"io"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// RecordReaderFactory — вывод схемы и декодирование записей из сырых байт.
// Каждый вызов независим (без общего состояния).
type RecordReaderFactory interface {
	SchemaOf(data []byte) (*domain.Schema, error)
	RecordsOf(data []byte) ([]domain.Record, error)
}

// RecordSetWriter — писатель набора записей в одну выходную единицу.
type RecordSetWriter interface {
	BeginSet() error
	// Check — запись совместима со схемой писателя; ничего не пишет.
	Check(rec domain.Record) error
	Write(rec domain.Record) error
	FinishSet() (domain.WriteResult, error)
	Close() error
}

// RecordWriterFactory — создаёт писателя под схему группы.
type RecordWriterFactory interface {
	WriterFor(schema *domain.Schema, out io.Writer) (RecordSetWriter, error)
}
