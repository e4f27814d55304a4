package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/wb_records/config"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/internal/repo"
	"github.com/Gunvolt24/wb_records/internal/repo/memory"
	"github.com/Gunvolt24/wb_records/internal/repo/postgres"
	s3repo "github.com/Gunvolt24/wb_records/internal/repo/s3"
)

// Stores — хранилище для коммита сессий и репозиторий для чтения.
type Stores struct {
	Writer ports.UnitStore
	Reader ports.UnitRepository
	close  func()
}

func (s *Stores) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// NewStores — основное хранилище по Store.Kind и, при S3.Enabled, архив в S3 (TeeStore).
func NewStores(ctx context.Context, cfg *config.Config, log ports.Logger) (*Stores, error) {
	st := &Stores{close: func() {}}

	switch strings.ToLower(strings.TrimSpace(cfg.Store.Kind)) {
	case "", "memory":
		mem := memory.NewUnitStore()
		st.Writer, st.Reader = mem, mem
		log.Warnf(ctx, "memory unit store in use: units are lost on restart")
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
			pool.Close()
			return nil, err
		}
		pg := postgres.NewUnitRepository(pool)
		st.Writer, st.Reader = pg, pg
		st.close = pool.Close
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}

	if !cfg.S3.Enabled {
		return st, nil
	}

	codec, err := s3repo.CodecByName(cfg.S3.Compression)
	if err != nil {
		st.Close()
		return nil, err
	}
	cli, err := s3repo.NewClient(ctx, s3repo.ClientConfig{
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		PathStyle: cfg.S3.PathStyle,

		RoleARN:     cfg.S3.RoleARN,
		SessionName: cfg.S3.SessionName,
		ExternalID:  cfg.S3.ExternalID,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	archive := s3repo.NewUnitStore(cli, cfg.S3.Bucket, cfg.S3.Prefix, codec)
	st.Writer = repo.NewTeeStore(st.Writer, archive)
	log.Infof(ctx, "s3 archive enabled bucket=%s prefix=%s codec=%s", cfg.S3.Bucket, cfg.S3.Prefix, codec.Name)

	return st, nil
}
