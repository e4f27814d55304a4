package pipeline

import (
	"maps"
	"sort"
	"strconv"
	"strings"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// GroupKey — отпечаток группы: текст схемы + отображённые атрибуты.
// Сравнение структурное (через ID), атрибуты после создания не меняются.
type GroupKey struct {
	schemaText string
	format     string
	hasSchema  bool
	attributes map[string]string
	id         string
}

// Fingerprint строит ключ группы. Не имеет побочных эффектов и не падает.
func Fingerprint(schema *domain.Schema, attrs map[string]string) GroupKey {
	key := GroupKey{attributes: maps.Clone(attrs)}
	if key.attributes == nil {
		key.attributes = map[string]string{}
	}
	if schema != nil {
		key.schemaText = schema.Text
		key.format = schema.Format
		key.hasSchema = true
	}
	key.id = key.canonical()
	return key
}

// canonical — однозначная строка: длины префиксуют каждую часть, атрибуты отсортированы.
func (k GroupKey) canonical() string {
	var b strings.Builder
	if k.hasSchema {
		// одинаковый текст схемы в разных форматах — разные группы
		b.WriteString("s")
		b.WriteString(strconv.Itoa(len(k.format)))
		b.WriteByte(':')
		b.WriteString(k.format)
		b.WriteString(strconv.Itoa(len(k.schemaText)))
		b.WriteByte(':')
		b.WriteString(k.schemaText)
	} else {
		b.WriteString("-")
	}

	names := make([]string, 0, len(k.attributes))
	for name := range k.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := k.attributes[name]
		b.WriteString("|")
		b.WriteString(strconv.Itoa(len(name)))
		b.WriteByte(':')
		b.WriteString(name)
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}

// ID — строка для сравнения и использования в качестве ключа map.
func (k GroupKey) ID() string { return k.id }

// Equal — структурное равенство ключей.
func (k GroupKey) Equal(other GroupKey) bool { return k.id == other.id }

// Attributes — копия атрибутов ключа.
func (k GroupKey) Attributes() map[string]string { return maps.Clone(k.attributes) }

// SchemaText — текст схемы; ("", false), если схемы нет.
func (k GroupKey) SchemaText() (string, bool) { return k.schemaText, k.hasSchema }
