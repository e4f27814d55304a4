package domain

import (
	"encoding/json"
	"sort"
)

// FieldType — логический тип поля записи.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldLong    FieldType = "long"
	FieldDouble  FieldType = "double"
	FieldBoolean FieldType = "boolean"
	FieldRecord  FieldType = "record"
	FieldArray   FieldType = "array"
)

// Field — поле схемы.
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Schema — схема записей сообщения.
// Text — каноническое текстовое представление: по нему считается отпечаток группы.
type Schema struct {
	Format string
	Text   string
	Fields []Field
}

// SchemaAttribute — имя атрибута, в который кладётся текст схемы (например, avro.schema).
func (s *Schema) SchemaAttribute() string {
	format := "avro"
	if s != nil && s.Format != "" {
		format = s.Format
	}
	return format + ".schema"
}

// FieldNames — имена полей в порядке схемы.
func (s *Schema) FieldNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// recordSchemaText — текстовое представление схемы в стиле avro record.
type recordSchemaText struct {
	Type   string  `json:"type"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// NewRecordSchema собирает схему из полей; Text детерминирован для одинакового набора полей.
func NewRecordSchema(format string, fields []Field) *Schema {
	text, _ := json.Marshal(recordSchemaText{Type: "record", Name: "record", Fields: fields})
	return &Schema{Format: format, Text: string(text), Fields: fields}
}

// ParseSchemaFields пытается извлечь список полей из avro-подобного определения.
// Для прочих форматов возвращает nil — писатель тогда берёт поля из самих записей.
func ParseSchemaFields(text string) []Field {
	var parsed struct {
		Fields []struct {
			Name string          `json:"name"`
			Type json.RawMessage `json:"type"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil
	}
	fields := make([]Field, 0, len(parsed.Fields))
	for _, f := range parsed.Fields {
		if f.Name == "" {
			continue
		}
		fields = append(fields, Field{Name: f.Name, Type: avroType(f.Type)})
	}
	return fields
}

func avroType(raw json.RawMessage) FieldType {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		// union / complex type — пишем как строку
		return FieldString
	}
	switch name {
	case "int", "long":
		return FieldLong
	case "float", "double":
		return FieldDouble
	case "boolean":
		return FieldBoolean
	case "record":
		return FieldRecord
	case "array":
		return FieldArray
	default:
		return FieldString
	}
}

// Record — одна декодированная запись сообщения.
type Record map[string]any

// SortedKeys — ключи записи по алфавиту.
func (r Record) SortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteResult — итог записи набора: количество записей и атрибуты писателя.
type WriteResult struct {
	RecordCount int
	Attributes  map[string]string
}
