package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

var (
	_ ports.UnitStore      = (*UnitRepository)(nil)
	_ ports.UnitRepository = (*UnitRepository)(nil)
)

// UnitRepository — выходные юниты в Postgres (pgxpool).
type UnitRepository struct {
	pool *pgxpool.Pool
}

func NewUnitRepository(pool *pgxpool.Pool) *UnitRepository { return &UnitRepository{pool: pool} }

// SaveUnits — все юниты одной транзакцией; повторная вставка того же id игнорируется.
func (r *UnitRepository) SaveUnits(ctx context.Context, units []*domain.OutputUnit) error {
	if len(units) == 0 {
		return nil
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	batch := &pgx.Batch{}
	for _, u := range units {
		if u == nil || u.ID == "" {
			return errors.New("output unit is empty or id is required")
		}
		attrs := u.Attributes
		if attrs == nil {
			attrs = map[string]string{}
		}
		content := u.Content
		if content == nil {
			content = []byte{}
		}
		batch.Queue(`
			INSERT INTO output_units (id, relationship, attributes, content, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, u.ID, string(u.Relationship), attrs, content, u.CreatedAt)
	}

	if err := transaction.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert units: %w", err)
	}
	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetByID — если не нашли, (nil, nil).
func (r *UnitRepository) GetByID(ctx context.Context, id string) (*domain.OutputUnit, error) {
	var (
		u   domain.OutputUnit
		rel string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, relationship, attributes, content, created_at
		FROM output_units WHERE id = $1
	`, id).Scan(&u.ID, &rel, &u.Attributes, &u.Content, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select unit: %w", err)
	}
	u.Relationship = domain.Relationship(rel)
	return &u, nil
}

// List — страница юнитов (новые первыми), без содержимого; rel == "" — все направления.
func (r *UnitRepository) List(ctx context.Context, rel domain.Relationship, limit, offset int) ([]*domain.OutputUnit, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, relationship, attributes, created_at
		FROM output_units
		WHERE ($1 = '' OR relationship = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, string(rel), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select units: %w", err)
	}
	defer rows.Close()

	units := make([]*domain.OutputUnit, 0, limit)
	for rows.Next() {
		var (
			u  domain.OutputUnit
			rl string
		)
		if err := rows.Scan(&u.ID, &rl, &u.Attributes, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		u.Relationship = domain.Relationship(rl)
		units = append(units, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("units rows: %w", err)
	}
	return units, nil
}
