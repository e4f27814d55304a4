package records

import (
	"fmt"
	"io"
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

// Options — настройки читателя и писателя записей.
type Options struct {
	ReaderFormat string   // json|csv
	WriterFormat string   // json|csv|parquet
	CSVFields    []string // поля CSV-читателя; пусто — заголовок из сообщения
	CSVComma     rune
	Compression  string // сжатие parquet
}

// NewReader — фабрика читателей по имени формата.
func NewReader(opts Options) (ports.RecordReaderFactory, error) {
	switch strings.ToLower(opts.ReaderFormat) {
	case "", FormatJSON:
		return NewJSONReader(), nil
	case FormatCSV:
		return NewCSVReader(opts.CSVFields, opts.CSVComma), nil
	default:
		return nil, fmt.Errorf("unknown record reader format %q", opts.ReaderFormat)
	}
}

// WriterFactory создаёт писателей выбранного формата.
type WriterFactory struct {
	format      string
	comma       rune
	compression parquet.WriterOption
}

func NewWriterFactory(opts Options) (*WriterFactory, error) {
	format := strings.ToLower(opts.WriterFormat)
	switch format {
	case "":
		format = FormatJSON
	case FormatJSON, FormatCSV, "parquet":
	default:
		return nil, fmt.Errorf("unknown record writer format %q", opts.WriterFormat)
	}

	compression, err := ParquetCompression(opts.Compression)
	if err != nil {
		return nil, err
	}
	return &WriterFactory{format: format, comma: opts.CSVComma, compression: compression}, nil
}

func (f *WriterFactory) Format() string { return f.format }

func (f *WriterFactory) WriterFor(schema *domain.Schema, out io.Writer) (ports.RecordSetWriter, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: nil schema", domain.ErrWriterSetup)
	}
	switch f.format {
	case FormatCSV:
		w, err := newCSVWriter(schema, out, f.comma)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrWriterSetup, err)
		}
		return w, nil
	case "parquet":
		w, err := newParquetWriter(schema, out, f.compression)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrWriterSetup, err)
		}
		return w, nil
	default:
		return newJSONWriter(schema, out), nil
	}
}
