//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeRecordMessage — kafka-сообщение с одной JSON-записью {"id", "name"}.
func MakeRecordMessage(id int, opts ...func(*kafka.Message)) kafka.Message {
	value, _ := json.Marshal(map[string]any{"id": id, "name": "item-" + UniqSuffix()})
	msg := kafka.Message{
		Key:   []byte("key-" + UniqSuffix()),
		Value: value,
		Time:  time.Now().UTC(),
	}
	for _, fn := range opts {
		fn(&msg)
	}
	return msg
}

// WithHeader — свойство сообщения (заголовок kafka).
func WithHeader(key, value string) func(*kafka.Message) {
	return func(m *kafka.Message) {
		m.Headers = append(m.Headers, kafka.Header{Key: key, Value: []byte(value)})
	}
}

// WithValue — произвольное тело сообщения (например, битый JSON).
func WithValue(v []byte) func(*kafka.Message) {
	return func(m *kafka.Message) { m.Value = v }
}

// MakeUnit — закоммиченный юнит для тестов хранилищ.
func MakeUnit(rel domain.Relationship, content string) *domain.OutputUnit {
	return &domain.OutputUnit{
		ID:           "unit-" + UniqSuffix(),
		Relationship: rel,
		Attributes:   map[string]string{domain.AttrRecordCount: "1", "source": "itest"},
		Content:      []byte(content),
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}
