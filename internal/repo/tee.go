// Пакет repo — композиция хранилищ выходных юнитов.
package repo

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

var _ ports.UnitStore = (*TeeStore)(nil)

// TeeStore сохраняет юниты сначала в архив, затем в основное хранилище.
// Ошибка архива не даёт закоммитить юниты в основное хранилище.
type TeeStore struct {
	archive ports.UnitStore
	primary ports.UnitStore
}

func NewTeeStore(primary, archive ports.UnitStore) *TeeStore {
	return &TeeStore{archive: archive, primary: primary}
}

func (t *TeeStore) SaveUnits(ctx context.Context, units []*domain.OutputUnit) error {
	if t.archive != nil {
		if err := t.archive.SaveUnits(ctx, units); err != nil {
			return fmt.Errorf("archive: %w", err)
		}
	}
	if err := t.primary.SaveUnits(ctx, units); err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	return nil
}
