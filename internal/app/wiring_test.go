package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wb_records/config"
	"github.com/Gunvolt24/wb_records/internal/repo"
	"github.com/Gunvolt24/wb_records/internal/repo/memory"
	"github.com/Gunvolt24/wb_records/internal/repo/session"
)

type nopLog struct{}

func (nopLog) Infof(context.Context, string, ...any)  {}
func (nopLog) Warnf(context.Context, string, ...any)  {}
func (nopLog) Errorf(context.Context, string, ...any) {}

func defaults(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadWithPrefix("RECORDS_APP_WIRING_TEST")
	require.NoError(t, err)
	return cfg
}

func TestProvenanceURI(t *testing.T) {
	require.Equal(t, "kafka://k1:9092/records",
		provenanceURI(config.Kafka{Brokers: []string{" k1:9092", "k2:9092"}, Topic: "records"}))
	require.Equal(t, "kafka:///t", provenanceURI(config.Kafka{Topic: "t"}))
}

func TestMetricsServer(t *testing.T) {
	cfg := defaults(t)
	require.NotNil(t, metricsServer(&cfg))

	cfg.Metrics.Addr = cfg.HTTP.Addr
	require.Nil(t, metricsServer(&cfg), "same addr: /metrics is served by the main router")

	cfg.Metrics.Addr = ""
	require.Nil(t, metricsServer(&cfg))
}

func TestNewStores_Memory(t *testing.T) {
	cfg := defaults(t)

	st, err := NewStores(context.Background(), &cfg, nopLog{})
	require.NoError(t, err)
	defer st.Close()

	_, ok := st.Writer.(*memory.UnitStore)
	require.True(t, ok)
	require.Same(t, st.Writer, st.Reader)
}

func TestNewStores_MemoryWithS3Archive(t *testing.T) {
	cfg := defaults(t)
	cfg.S3.Enabled = true
	cfg.S3.Endpoint = "http://127.0.0.1:9000"
	cfg.S3.AccessKey, cfg.S3.SecretKey = "key", "secret"
	cfg.S3.Compression = "zstd"

	st, err := NewStores(context.Background(), &cfg, nopLog{})
	require.NoError(t, err)
	defer st.Close()

	_, ok := st.Writer.(*repo.TeeStore)
	require.True(t, ok, "writer must tee into the archive")
	_, ok = st.Reader.(*memory.UnitStore)
	require.True(t, ok, "reads are served by the primary store")
}

func TestNewStores_Errors(t *testing.T) {
	cfg := defaults(t)
	cfg.Store.Kind = "cassandra"
	_, err := NewStores(context.Background(), &cfg, nopLog{})
	require.Error(t, err)

	cfg = defaults(t)
	cfg.S3.Enabled = true
	cfg.S3.Compression = "deflate"
	_, err = NewStores(context.Background(), &cfg, nopLog{})
	require.Error(t, err)
}

func TestNewPipeline(t *testing.T) {
	cfg := defaults(t)
	sessions := session.NewFactory(memory.NewUnitStore())

	pipe, err := NewPipeline(cfg.Consumer, nil, sessions, "kafka://b/t", nopLog{})
	require.NoError(t, err)
	require.NotNil(t, pipe.Processor)
	pipe.Close()

	cfg.Consumer.Async = true
	cfg.Consumer.WriterFormat = "parquet"
	pipe, err = NewPipeline(cfg.Consumer, nil, sessions, "", nopLog{})
	require.NoError(t, err)
	pipe.Close()
}

func TestNewPipeline_InvalidConfig(t *testing.T) {
	sessions := session.NewFactory(memory.NewUnitStore())

	tests := []struct {
		name  string
		patch func(c *config.Consumer)
	}{
		{"mapping", func(c *config.Consumer) { c.AttributeMapping = "a=,b" }},
		{"subscription", func(c *config.Consumer) { c.Subscription = "broadcast" }},
		{"reader", func(c *config.Consumer) { c.ReaderFormat = "xml" }},
		{"writer", func(c *config.Consumer) { c.WriterFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := defaults(t).Consumer
			tt.patch(&cc)
			_, err := NewPipeline(cc, nil, sessions, "", nopLog{})
			require.Error(t, err)
		})
	}
}
