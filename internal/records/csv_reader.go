package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// FormatCSV — формат схем CSV-читателя.
const FormatCSV = "csv"

// CSVReader читает строки CSV как записи со строковыми полями.
// Поля берутся из конфигурации; если их нет — из первой строки сообщения (заголовка).
type CSVReader struct {
	fields []string
	comma  rune
}

func NewCSVReader(fields []string, comma rune) *CSVReader {
	if comma == 0 {
		comma = ','
	}
	return &CSVReader{fields: fields, comma: comma}
}

func (r *CSVReader) SchemaOf(data []byte) (*domain.Schema, error) {
	names := r.fields
	if len(names) == 0 {
		rows, err := r.rows(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSchemaResolution, err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("%w: csv header is missing", domain.ErrSchemaResolution)
		}
		names = rows[0]
	}

	fields := make([]domain.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, domain.Field{Name: name, Type: domain.FieldString})
	}
	return domain.NewRecordSchema(FormatCSV, fields), nil
}

func (r *CSVReader) RecordsOf(data []byte) ([]domain.Record, error) {
	rows, err := r.rows(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecordDecode, err)
	}

	names := r.fields
	if len(names) == 0 {
		if len(rows) == 0 {
			return nil, nil
		}
		names, rows = rows[0], rows[1:]
	}

	out := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", domain.ErrRecordDecode, i, len(row), len(names))
		}
		rec := make(domain.Record, len(names))
		for j, name := range names {
			rec[name] = row[j]
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *CSVReader) rows(data []byte) ([][]string, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = r.comma
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
