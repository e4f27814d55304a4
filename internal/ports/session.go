package ports

import (
	"context"
	"io"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// Session — единица работы над выходными юнитами одного батча.
// Не потокобезопасна: принадлежит вызывающей горутине.
type Session interface {
	Create() *domain.OutputUnit
	Write(unit *domain.OutputUnit) io.WriteCloser
	PutAttributes(unit *domain.OutputUnit, attrs map[string]string)
	Transfer(unit *domain.OutputUnit, rel domain.Relationship)
	Remove(unit *domain.OutputUnit)

	// Commit — надёжно сохранить все переданные (Transfer) юниты.
	Commit(ctx context.Context) error
	// Rollback — отбросить всё, что не закоммичено.
	Rollback()
}

// SessionFactory — новая сессия на каждый батч.
type SessionFactory interface {
	NewSession() Session
}
