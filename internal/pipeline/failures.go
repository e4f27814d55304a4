package pipeline

import (
	"fmt"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

// Failures — накопитель сообщений, которые не удалось разобрать или записать.
// Живёт в пределах одного батча и передаётся в шаги обработки явно.
type Failures struct {
	messages []*domain.Message
}

// Add — добавить сообщения в порядке появления.
func (f *Failures) Add(msgs ...*domain.Message) {
	f.messages = append(f.messages, msgs...)
}

func (f *Failures) Len() int { return len(f.messages) }

// Messages — копия накопленных сообщений.
func (f *Failures) Messages() []*domain.Message {
	out := make([]*domain.Message, len(f.messages))
	copy(out, f.messages)
	return out
}

// Flush склеивает сырые данные через demarcator (без разделителя в начале и в конце),
// пишет их в новый юнит и передаёт его в parse_failure. После этого накопитель пуст.
// Пустой накопитель — no-op: (nil, nil).
func (f *Failures) Flush(session ports.Session, demarcator []byte) (*domain.OutputUnit, error) {
	if len(f.messages) == 0 {
		return nil, nil
	}

	unit := session.Create()
	out := session.Write(unit)
	for i, msg := range f.messages {
		if i > 0 {
			if _, err := out.Write(demarcator); err != nil {
				_ = out.Close()
				session.Remove(unit)
				return nil, fmt.Errorf("%w: write demarcator: %v", domain.ErrOutputWrite, err)
			}
		}
		if _, err := out.Write(msg.Value); err != nil {
			_ = out.Close()
			session.Remove(unit)
			return nil, fmt.Errorf("%w: write failed message: %v", domain.ErrOutputWrite, err)
		}
	}
	if err := out.Close(); err != nil {
		session.Remove(unit)
		return nil, fmt.Errorf("%w: close failure output: %v", domain.ErrOutputWrite, err)
	}

	session.PutAttributes(unit, map[string]string{domain.AttrMessageCount: fmt.Sprint(len(f.messages))})
	session.Transfer(unit, domain.RelParseFailure)
	f.messages = nil
	return unit, nil
}
