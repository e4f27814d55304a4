package records

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// jsonSetWriter пишет набор как JSON-массив; порядок полей — порядок схемы.
type jsonSetWriter struct {
	out    *bufio.Writer
	fields []string
	count  int
	open   bool
}

func newJSONWriter(schema *domain.Schema, out io.Writer) *jsonSetWriter {
	return &jsonSetWriter{out: bufio.NewWriter(out), fields: schema.FieldNames()}
}

func (w *jsonSetWriter) BeginSet() error {
	if w.open {
		return errors.New("record set already started")
	}
	w.open = true
	w.count = 0
	return w.out.WriteByte('[')
}

func (w *jsonSetWriter) names(rec domain.Record) []string {
	if len(w.fields) == 0 {
		return rec.SortedKeys()
	}
	return w.fields
}

func (w *jsonSetWriter) Check(rec domain.Record) error {
	for _, name := range w.names(rec) {
		if _, err := json.Marshal(rec[name]); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
	}
	return nil
}

func (w *jsonSetWriter) Write(rec domain.Record) error {
	if !w.open {
		return errors.New("record set is not started")
	}
	if w.count > 0 {
		if err := w.out.WriteByte(','); err != nil {
			return err
		}
	}

	names := w.names(rec)
	if err := w.out.WriteByte('{'); err != nil {
		return err
	}
	for i, name := range names {
		if i > 0 {
			if err := w.out.WriteByte(','); err != nil {
				return err
			}
		}
		k, _ := json.Marshal(name)
		v, err := json.Marshal(rec[name])
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if _, err := w.out.Write(k); err != nil {
			return err
		}
		if err := w.out.WriteByte(':'); err != nil {
			return err
		}
		if _, err := w.out.Write(v); err != nil {
			return err
		}
	}
	if err := w.out.WriteByte('}'); err != nil {
		return err
	}
	w.count++
	return nil
}

func (w *jsonSetWriter) FinishSet() (domain.WriteResult, error) {
	if !w.open {
		return domain.WriteResult{}, errors.New("record set is not started")
	}
	w.open = false
	if err := w.out.WriteByte(']'); err != nil {
		return domain.WriteResult{}, err
	}
	if err := w.out.Flush(); err != nil {
		return domain.WriteResult{}, err
	}
	return domain.WriteResult{
		RecordCount: w.count,
		Attributes:  map[string]string{domain.AttrMimeType: "application/json"},
	}, nil
}

func (w *jsonSetWriter) Close() error { return w.out.Flush() }
