package ports

import (
	"context"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// UnitStore — надёжное хранилище выходных юнитов (вызывается на Commit сессии).
// Сохранение батча юнитов атомарно: либо все, либо ни одного.
type UnitStore interface {
	SaveUnits(ctx context.Context, units []*domain.OutputUnit) error
}

// UnitRepository — чтение сохранённых юнитов.
type UnitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.OutputUnit, error)
	List(ctx context.Context, rel domain.Relationship, limit, offset int) ([]*domain.OutputUnit, error)
}

// UnitCache — кэш юнитов.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий.
type UnitCache interface {
	Get(ctx context.Context, id string) (*domain.OutputUnit, bool)
	Set(ctx context.Context, unit *domain.OutputUnit) error
}

// UnitReadService — сервис чтения юнитов для внешних слоёв.
type UnitReadService interface {
	GetUnit(ctx context.Context, id string) (*domain.OutputUnit, error)
	ListUnits(ctx context.Context, rel domain.Relationship, limit, offset int) ([]*domain.OutputUnit, error)
}
