package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// Envelope — сообщение в файле воспроизведения.
// value — JSON-строка (берутся её байты как есть) или любой JSON (берётся его текст).
type Envelope struct {
	Key        *string           `json:"key,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Schema     *struct {
		Format     string `json:"format"`
		Definition string `json:"definition"`
	} `json:"schema,omitempty"`
	Value json.RawMessage `json:"value"`
}

func (e Envelope) message(offset int64) (*domain.Message, error) {
	value := []byte(e.Value)
	var s string
	if len(value) > 0 && value[0] == '"' {
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		value = []byte(s)
	}

	msg := &domain.Message{
		Topic:      "replay",
		Offset:     offset,
		Value:      value,
		Properties: e.Properties,
	}
	if e.Key != nil {
		msg.Key, msg.HasKey = *e.Key, true
	}
	if e.Schema != nil && e.Schema.Definition != "" {
		msg.Schema = &domain.SchemaInfo{Format: e.Schema.Format, Definition: []byte(e.Schema.Definition)}
	}
	return msg, nil
}

// DetectFormat — auto по расширению; неизвестное расширение считается JSON.
func DetectFormat(path string, format InputFormat) InputFormat {
	if format != FormatAuto && format != "" {
		return format
	}
	if strings.ToLower(filepath.Ext(path)) == ".jsonl" {
		return FormatJSONL
	}
	return FormatJSON
}

// LoadFile читает сообщения из файла.
func LoadFile(path string, format InputFormat) ([]*domain.Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()
	return Load(file, DetectFormat(path, format))
}

// Load читает сообщения: JSON — один конверт или массив конвертов, JSONL — конверт на строку.
// Пустые строки JSONL пропускаются; битая строка — ошибка с её номером.
func Load(r io.Reader, format InputFormat) ([]*domain.Message, error) {
	switch format {
	case FormatJSON, FormatAuto, "":
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return loadJSON(raw)
	case FormatJSONL:
		return loadJSONL(r)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func loadJSON(raw []byte) ([]*domain.Message, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	var envs []Envelope
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &envs); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
	} else {
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		envs = append(envs, env)
	}

	msgs := make([]*domain.Message, 0, len(envs))
	for i, env := range envs {
		msg, err := env.message(int64(i))
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func loadJSONL(r io.Reader) ([]*domain.Message, error) {
	scanner := bufio.NewScanner(r)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var msgs []*domain.Message
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, fmt.Errorf("line %d: invalid json: %w", line, err)
		}
		msg, err := env.message(int64(len(msgs)))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		msgs = append(msgs, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return msgs, nil
}
