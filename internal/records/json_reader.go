package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// FormatJSON — формат схем, выведенных JSON-читателем.
const FormatJSON = "json"

// JSONReader читает записи из одного JSON-объекта, массива объектов или JSON lines.
// Схема выводится по полям записей; типы, расходящиеся между записями, становятся string.
type JSONReader struct{}

func NewJSONReader() *JSONReader { return &JSONReader{} }

func (r *JSONReader) SchemaOf(data []byte) (*domain.Schema, error) {
	recs, err := r.RecordsOf(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchemaResolution, err)
	}
	return InferSchema(FormatJSON, recs), nil
}

// RecordsOf — пустое сообщение даёт ноль записей без ошибки.
func (r *JSONReader) RecordsOf(data []byte) ([]domain.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if trimmed[0] == '[' {
		var arr []map[string]any
		if err := dec.Decode(&arr); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRecordDecode, err)
		}
		if dec.More() {
			return nil, fmt.Errorf("%w: trailing data after array", domain.ErrRecordDecode)
		}
		out := make([]domain.Record, 0, len(arr))
		for _, obj := range arr {
			out = append(out, normalize(obj))
		}
		return out, nil
	}

	var out []domain.Record
	for {
		var obj map[string]any
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", domain.ErrRecordDecode, len(out), err)
		}
		out = append(out, normalize(obj))
	}
}

// normalize переводит json.Number в int64/float64.
func normalize(obj map[string]any) domain.Record {
	rec := make(domain.Record, len(obj))
	for k, v := range obj {
		rec[k] = normalizeValue(v)
	}
	return rec
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(val.String(), 10, 64); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		return map[string]any(normalize(val))
	case []any:
		for i := range val {
			val[i] = normalizeValue(val[i])
		}
		return val
	default:
		return v
	}
}

// InferSchema — объединение полей всех записей по алфавиту.
func InferSchema(format string, recs []domain.Record) *domain.Schema {
	types := make(map[string]domain.FieldType)
	for _, rec := range recs {
		for name, v := range rec {
			t, ok := typeOf(v)
			prev, seen := types[name]
			switch {
			case !seen:
				if !ok {
					t = ""
				}
				types[name] = t
			case !ok:
				// null не меняет уже выведенный тип
			case prev == "":
				types[name] = t
			case prev != t:
				types[name] = widen(prev, t)
			}
		}
	}

	names := make(domain.Record, len(types))
	for k := range types {
		names[k] = nil
	}
	fields := make([]domain.Field, 0, len(types))
	for _, name := range names.SortedKeys() {
		t := types[name]
		if t == "" {
			t = domain.FieldString
		}
		fields = append(fields, domain.Field{Name: name, Type: t})
	}
	return domain.NewRecordSchema(format, fields)
}

func typeOf(v any) (domain.FieldType, bool) {
	switch v.(type) {
	case nil:
		return "", false
	case string:
		return domain.FieldString, true
	case int64, int, int32:
		return domain.FieldLong, true
	case float64, float32:
		return domain.FieldDouble, true
	case bool:
		return domain.FieldBoolean, true
	case map[string]any, domain.Record:
		return domain.FieldRecord, true
	case []any:
		return domain.FieldArray, true
	default:
		return domain.FieldString, true
	}
}

func widen(a, b domain.FieldType) domain.FieldType {
	if (a == domain.FieldLong && b == domain.FieldDouble) || (a == domain.FieldDouble && b == domain.FieldLong) {
		return domain.FieldDouble
	}
	return domain.FieldString
}
