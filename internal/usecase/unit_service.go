package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

var _ ports.UnitReadService = (*UnitService)(nil)

// UnitService — чтение сохранённых выходных юнитов (без знаний о транспорте).
type UnitService struct {
	repo  ports.UnitRepository // прямой доступ к хранилищу
	cache ports.UnitCache      // прямой доступ к кэшу
	log   ports.Logger
}

// NewUnitService — DI-конструктор.
func NewUnitService(repo ports.UnitRepository, cache ports.UnitCache, log ports.Logger) *UnitService {
	return &UnitService{repo: repo, cache: cache, log: log}
}

// GetUnit — юнит по ID: сначала из кэша, при промахе — из хранилища с записью в кэш.
// Если юнита нет, возвращает domain.ErrUnitNotFound.
func (s *UnitService) GetUnit(ctx context.Context, id string) (*domain.OutputUnit, error) {
	if unit, found := s.cache.Get(ctx, id); found {
		return unit, nil
	}

	start := time.Now()
	unit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed id=%s err=%v", id, err)
		return nil, fmt.Errorf("get unit %s: %w", id, err)
	}
	if unit == nil {
		return nil, domain.ErrUnitNotFound
	}

	if setErr := s.cache.Set(ctx, unit); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed id=%s err=%v", id, setErr)
	}
	s.log.Infof(ctx, "store fetch unit=%s took=%s", id, time.Since(start))
	return unit, nil
}

// ListUnits — проксирование в репозиторий (пагинация валидируется на верхнем уровне).
// Пустой rel — все направления.
func (s *UnitService) ListUnits(
	ctx context.Context,
	rel domain.Relationship,
	limit, offset int,
) ([]*domain.OutputUnit, error) {
	return s.repo.List(ctx, rel, limit, offset)
}

// WarmUpCache — прогрев кэша последними n юнитами.
// n <= 0 — прогрев пропускается (не ошибка).
func (s *UnitService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.List(ctx, "", n, 0)
	if err != nil {
		s.log.Errorf(ctx, "repo.List failed n=%d err=%v", n, err)
		return err
	}

	// список отдаётся без содержимого — догружаем каждый юнит целиком
	warmed := 0
	for _, head := range list {
		unit, getErr := s.repo.GetByID(ctx, head.ID)
		if getErr != nil || unit == nil {
			continue
		}
		if setErr := s.cache.Set(ctx, unit); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed id=%s err=%v", unit.ID, setErr)
			continue
		}
		warmed++
	}
	s.log.Infof(ctx, "cache warmed with %d units in %s", warmed, time.Since(start))
	return nil
}
