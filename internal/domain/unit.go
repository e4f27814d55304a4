package domain

import "time"

// Relationship — направление, в которое передаётся выходной юнит.
type Relationship string

const (
	RelSuccess      Relationship = "success"
	RelParseFailure Relationship = "parse_failure"
)

// Стандартные атрибуты выходных юнитов.
const (
	AttrRecordCount  = "record.count"
	AttrMessageCount = "message.count"
	AttrMimeType     = "mime.type"
	AttrProvenance   = "provenance.uri"
)

// OutputUnit — один выходной артефакт: содержимое + атрибуты.
type OutputUnit struct {
	ID           string            `json:"id"`
	Relationship Relationship      `json:"relationship"`
	Attributes   map[string]string `json:"attributes"`
	Content      []byte            `json:"-"`
	CreatedAt    time.Time         `json:"created_at"`
}
