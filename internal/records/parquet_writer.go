package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// parquetSetWriter пишет набор как один parquet-файл.
// Все колонки optional; вложенные record/array сериализуются в JSON-строку.
type parquetSetWriter struct {
	pw      *parquet.Writer
	columns []domain.Field // в порядке колонок схемы (по имени)
	count   int
	open    bool
	closed  bool
}

func newParquetWriter(schema *domain.Schema, out io.Writer, compression parquet.WriterOption) (*parquetSetWriter, error) {
	if len(schema.Fields) == 0 {
		return nil, errors.New("parquet writer needs schema fields")
	}

	group := make(parquet.Group, len(schema.Fields))
	columns := make([]domain.Field, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		if _, dup := group[f.Name]; dup {
			return nil, fmt.Errorf("duplicate field %q", f.Name)
		}
		group[f.Name] = parquet.Optional(parquetNode(f.Type))
		columns = append(columns, f)
	}
	// Колонки группы упорядочены по имени.
	sort.Slice(columns, func(i, j int) bool { return columns[i].Name < columns[j].Name })

	pw := parquet.NewWriter(out, parquet.NewSchema("record", group), compression)
	return &parquetSetWriter{pw: pw, columns: columns}, nil
}

func parquetNode(t domain.FieldType) parquet.Node {
	switch t {
	case domain.FieldLong:
		return parquet.Int(64)
	case domain.FieldDouble:
		return parquet.Leaf(parquet.DoubleType)
	case domain.FieldBoolean:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

// ParquetCompression — snappy по умолчанию; поддерживаются zstd, gzip и none.
func ParquetCompression(name string) (parquet.WriterOption, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "snappy":
		return parquet.Compression(&parquet.Snappy), nil
	case "zstd":
		return parquet.Compression(&parquet.Zstd), nil
	case "gzip", "gz":
		return parquet.Compression(&parquet.Gzip), nil
	case "none":
		return parquet.Compression(&parquet.Uncompressed), nil
	default:
		return nil, fmt.Errorf("unknown parquet compression %q", name)
	}
}

func (w *parquetSetWriter) BeginSet() error {
	if w.open || w.closed {
		return errors.New("parquet record set can be started once")
	}
	w.open = true
	return nil
}

func (w *parquetSetWriter) row(rec domain.Record) (parquet.Row, error) {
	row := make(parquet.Row, len(w.columns))
	for i, col := range w.columns {
		v, err := parquetValue(col.Type, rec[col.Name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", col.Name, err)
		}
		if v.IsNull() {
			row[i] = v.Level(0, 0, i)
		} else {
			row[i] = v.Level(0, 1, i)
		}
	}
	return row, nil
}

// Check — значения всех колонок приводятся к типам схемы.
func (w *parquetSetWriter) Check(rec domain.Record) error {
	_, err := w.row(rec)
	return err
}

func (w *parquetSetWriter) Write(rec domain.Record) error {
	if !w.open {
		return errors.New("record set is not started")
	}
	row, err := w.row(rec)
	if err != nil {
		return err
	}
	if _, err := w.pw.WriteRows([]parquet.Row{row}); err != nil {
		return err
	}
	w.count++
	return nil
}

func (w *parquetSetWriter) FinishSet() (domain.WriteResult, error) {
	if !w.open {
		return domain.WriteResult{}, errors.New("record set is not started")
	}
	w.open = false
	w.closed = true
	if err := w.pw.Close(); err != nil {
		return domain.WriteResult{}, err
	}
	return domain.WriteResult{
		RecordCount: w.count,
		Attributes:  map[string]string{domain.AttrMimeType: "application/vnd.apache.parquet"},
	}, nil
}

// Close без FinishSet дописывает футер, чтобы не держать буферы писателя.
func (w *parquetSetWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.pw.Close()
}

func parquetValue(t domain.FieldType, v any) (parquet.Value, error) {
	if v == nil {
		return parquet.NullValue(), nil
	}
	switch t {
	case domain.FieldLong:
		switch n := v.(type) {
		case int64:
			return parquet.Int64Value(n), nil
		case int:
			return parquet.Int64Value(int64(n)), nil
		case float64:
			return parquet.Int64Value(int64(n)), nil
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return parquet.Value{}, err
			}
			return parquet.Int64Value(i), nil
		}
	case domain.FieldDouble:
		switch n := v.(type) {
		case float64:
			return parquet.DoubleValue(n), nil
		case int64:
			return parquet.DoubleValue(float64(n)), nil
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return parquet.Value{}, err
			}
			return parquet.DoubleValue(f), nil
		}
	case domain.FieldBoolean:
		switch b := v.(type) {
		case bool:
			return parquet.BooleanValue(b), nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return parquet.Value{}, err
			}
			return parquet.BooleanValue(parsed), nil
		}
	default:
		s, err := formatCell(v)
		if err != nil {
			return parquet.Value{}, err
		}
		return parquet.ByteArrayValue([]byte(s)), nil
	}
	b, _ := json.Marshal(v)
	return parquet.Value{}, fmt.Errorf("value %s does not fit %s column", b, t)
}
