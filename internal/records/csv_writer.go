package records

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// csvSetWriter — заголовок из полей схемы, затем по строке на запись.
type csvSetWriter struct {
	out    *csv.Writer
	fields []string
	count  int
	open   bool
}

func newCSVWriter(schema *domain.Schema, out io.Writer, comma rune) (*csvSetWriter, error) {
	fields := schema.FieldNames()
	if len(fields) == 0 {
		return nil, errors.New("csv writer needs schema fields")
	}
	cw := csv.NewWriter(out)
	if comma != 0 {
		cw.Comma = comma
	}
	return &csvSetWriter{out: cw, fields: fields}, nil
}

func (w *csvSetWriter) BeginSet() error {
	if w.open {
		return errors.New("record set already started")
	}
	w.open = true
	w.count = 0
	return w.out.Write(w.fields)
}

func (w *csvSetWriter) row(rec domain.Record) ([]string, error) {
	row := make([]string, len(w.fields))
	for i, name := range w.fields {
		s, err := formatCell(rec[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		row[i] = s
	}
	return row, nil
}

func (w *csvSetWriter) Check(rec domain.Record) error {
	_, err := w.row(rec)
	return err
}

func (w *csvSetWriter) Write(rec domain.Record) error {
	if !w.open {
		return errors.New("record set is not started")
	}
	row, err := w.row(rec)
	if err != nil {
		return err
	}
	if err := w.out.Write(row); err != nil {
		return err
	}
	w.count++
	return nil
}

func (w *csvSetWriter) FinishSet() (domain.WriteResult, error) {
	if !w.open {
		return domain.WriteResult{}, errors.New("record set is not started")
	}
	w.open = false
	w.out.Flush()
	if err := w.out.Error(); err != nil {
		return domain.WriteResult{}, err
	}
	return domain.WriteResult{
		RecordCount: w.count,
		Attributes:  map[string]string{domain.AttrMimeType: "text/csv"},
	}, nil
}

func (w *csvSetWriter) Close() error {
	w.out.Flush()
	return w.out.Error()
}

func formatCell(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		b, err := json.Marshal(val)
		return string(b), err
	}
}
