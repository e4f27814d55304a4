package memory

import (
	"bytes"
	"context"
	"maps"
	"sync"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

var (
	_ ports.UnitStore      = (*UnitStore)(nil)
	_ ports.UnitRepository = (*UnitStore)(nil)
)

// UnitStore — хранилище юнитов в памяти (replay CLI, тесты, режим без БД).
type UnitStore struct {
	mu    sync.RWMutex
	units []*domain.OutputUnit
	byID  map[string]*domain.OutputUnit
}

func NewUnitStore() *UnitStore {
	return &UnitStore{byID: make(map[string]*domain.OutputUnit)}
}

// SaveUnits — повторное сохранение того же ID игнорируется.
func (s *UnitStore) SaveUnits(_ context.Context, units []*domain.OutputUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range units {
		if u == nil {
			continue
		}
		if _, ok := s.byID[u.ID]; ok {
			continue
		}
		c := cloneUnit(u)
		s.units = append(s.units, c)
		s.byID[c.ID] = c
	}
	return nil
}

// GetByID — (nil, nil), если юнита нет.
func (s *UnitStore) GetByID(_ context.Context, id string) (*domain.OutputUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneUnit(u), nil
}

// List — в порядке сохранения; rel == "" — все направления.
func (s *UnitStore) List(_ context.Context, rel domain.Relationship, limit, offset int) ([]*domain.OutputUnit, error) {
	if offset < 0 {
		offset = 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.OutputUnit, 0)
	skipped := 0
	for _, u := range s.units {
		if rel != "" && u.Relationship != rel {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, cloneUnit(u))
	}
	return out, nil
}

// All — снимок всех юнитов в порядке сохранения.
func (s *UnitStore) All() []*domain.OutputUnit {
	out, _ := s.List(context.Background(), "", 0, 0)
	return out
}

func cloneUnit(u *domain.OutputUnit) *domain.OutputUnit {
	c := *u
	c.Attributes = maps.Clone(u.Attributes)
	c.Content = bytes.Clone(u.Content)
	return &c
}
