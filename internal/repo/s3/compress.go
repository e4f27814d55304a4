package s3

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec — сжатие содержимого юнита перед выгрузкой.
// Name уходит в Content-Encoding объекта ("" — без сжатия).
type Codec struct {
	Name string
	Ext  string
	wrap func(w io.Writer) (io.WriteCloser, error)
}

// CodecByName: none|gzip|zstd|snappy|lz4|br.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return Codec{}, nil
	case "gzip", "gz":
		return Codec{Name: "gzip", Ext: ".gz", wrap: func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		}}, nil
	case "zstd":
		return Codec{Name: "zstd", Ext: ".zst", wrap: func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		}}, nil
	case "snappy":
		return Codec{Name: "snappy", Ext: ".sz", wrap: func(w io.Writer) (io.WriteCloser, error) {
			return snappy.NewBufferedWriter(w), nil
		}}, nil
	case "lz4":
		return Codec{Name: "lz4", Ext: ".lz4", wrap: func(w io.Writer) (io.WriteCloser, error) {
			return lz4.NewWriter(w), nil
		}}, nil
	case "br", "brotli":
		return Codec{Name: "br", Ext: ".br", wrap: func(w io.Writer) (io.WriteCloser, error) {
			return brotli.NewWriterLevel(w, brotli.BestCompression), nil
		}}, nil
	default:
		return Codec{}, fmt.Errorf("unknown compression %q", name)
	}
}

// Encode сжимает data; без кодека возвращает data как есть.
func (c Codec) Encode(data []byte) ([]byte, error) {
	if c.wrap == nil {
		return data, nil
	}
	var buf bytes.Buffer
	w, err := c.wrap(&buf)
	if err != nil {
		return nil, fmt.Errorf("%s writer: %w", c.Name, err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("%s write: %w", c.Name, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s close: %w", c.Name, err)
	}
	return buf.Bytes(), nil
}
