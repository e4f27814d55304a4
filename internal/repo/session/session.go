// Пакет session — буферизованная сессия над выходными юнитами.
// Юниты живут в памяти до Commit; Commit отдаёт переданные юниты в UnitStore одним вызовом.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

var (
	_ ports.Session        = (*Session)(nil)
	_ ports.SessionFactory = (*Factory)(nil)
)

// ErrUnitNotTransferred — на момент Commit есть юнит без Transfer и без Remove.
var ErrUnitNotTransferred = errors.New("output unit was neither transferred nor removed")

type pending struct {
	unit        *domain.OutputUnit
	content     bytes.Buffer
	transferred bool
}

// Session — не потокобезопасна, принадлежит одному батчу.
type Session struct {
	store ports.UnitStore
	now   func() time.Time

	units []*pending
	byID  map[string]*pending
}

func New(store ports.UnitStore) *Session {
	return &Session{store: store, now: time.Now, byID: make(map[string]*pending)}
}

func (s *Session) Create() *domain.OutputUnit {
	p := &pending{unit: &domain.OutputUnit{
		ID:         uuid.NewString(),
		Attributes: make(map[string]string),
		CreatedAt:  s.now().UTC(),
	}}
	s.units = append(s.units, p)
	s.byID[p.unit.ID] = p
	return p.unit
}

// Write — повторный вызов перезаписывает содержимое юнита.
func (s *Session) Write(unit *domain.OutputUnit) io.WriteCloser {
	p := s.lookup(unit)
	if p == nil {
		return &unitWriter{err: fmt.Errorf("unknown output unit %q", unitID(unit))}
	}
	p.content.Reset()
	return &unitWriter{p: p}
}

func (s *Session) PutAttributes(unit *domain.OutputUnit, attrs map[string]string) {
	if p := s.lookup(unit); p != nil {
		maps.Copy(p.unit.Attributes, attrs)
	}
}

func (s *Session) Transfer(unit *domain.OutputUnit, rel domain.Relationship) {
	if p := s.lookup(unit); p != nil {
		p.unit.Relationship = rel
		p.transferred = true
	}
}

func (s *Session) Remove(unit *domain.OutputUnit) {
	p := s.lookup(unit)
	if p == nil {
		return
	}
	delete(s.byID, p.unit.ID)
	for i, cur := range s.units {
		if cur == p {
			s.units = append(s.units[:i], s.units[i+1:]...)
			break
		}
	}
}

// Commit сохраняет все переданные юниты одним вызовом стора.
// При ошибке состояние сессии не меняется: вызывающий решает, делать ли Rollback.
func (s *Session) Commit(ctx context.Context) error {
	if len(s.units) == 0 {
		return nil
	}
	out := make([]*domain.OutputUnit, 0, len(s.units))
	for _, p := range s.units {
		if !p.transferred {
			return fmt.Errorf("%w: %s", ErrUnitNotTransferred, p.unit.ID)
		}
		p.unit.Content = bytes.Clone(p.content.Bytes())
		out = append(out, p.unit)
	}
	if err := s.store.SaveUnits(ctx, out); err != nil {
		return fmt.Errorf("save units: %w", err)
	}
	s.reset()
	return nil
}

func (s *Session) Rollback() { s.reset() }

// Pending — число юнитов, ещё не закоммиченных и не удалённых.
func (s *Session) Pending() int { return len(s.units) }

func (s *Session) reset() {
	s.units = nil
	s.byID = make(map[string]*pending)
}

func (s *Session) lookup(unit *domain.OutputUnit) *pending {
	if unit == nil {
		return nil
	}
	return s.byID[unit.ID]
}

func unitID(unit *domain.OutputUnit) string {
	if unit == nil {
		return ""
	}
	return unit.ID
}

type unitWriter struct {
	p      *pending
	err    error
	closed bool
}

func (w *unitWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, errors.New("write to closed output unit")
	}
	return w.p.content.Write(b)
}

func (w *unitWriter) Close() error {
	w.closed = true
	return w.err
}

// Factory — новая сессия поверх одного и того же стора.
type Factory struct {
	store ports.UnitStore
}

func NewFactory(store ports.UnitStore) *Factory { return &Factory{store: store} }

func (f *Factory) NewSession() ports.Session { return New(f.store) }
