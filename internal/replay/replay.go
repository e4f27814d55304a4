package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/wb_records/config"
	"github.com/Gunvolt24/wb_records/internal/app"
	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/internal/repo/memory"
	"github.com/Gunvolt24/wb_records/internal/repo/session"
)

// Summary — итог прогона.
type Summary struct {
	Messages     int
	Units        int
	FailureUnits int
	Acked        int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d messages / %d units / %d failure units / %d acked",
		s.Messages, s.Units, s.FailureUnits, s.Acked)
}

// Run прогоняет сообщения через пайплайн (синхронно) поверх хранилища в памяти
// и печатает юниты в out: строка с метаданными юнита, затем текстовое содержимое.
// Двоичное содержимое (parquet) не печатается.
func Run(ctx context.Context, cc config.Consumer, msgs []*domain.Message, provenance string, out io.Writer, log ports.Logger) (Summary, error) {
	sum := Summary{Messages: len(msgs)}

	cc.Async = false
	src := NewSource(msgs)
	store := memory.NewUnitStore()

	pipe, err := app.NewPipeline(cc, src, session.NewFactory(store), provenance, log)
	if err != nil {
		return sum, err
	}

	for {
		n, err := pipe.Processor.Trigger(ctx)
		if err != nil {
			pipe.Close()
			return sum, err
		}
		if n == 0 {
			break
		}
	}
	pipe.Close()
	sum.Acked = src.Acked()

	for _, unit := range store.All() {
		sum.Units++
		if unit.Relationship == domain.RelParseFailure {
			sum.FailureUnits++
		}
		if err := printUnit(out, unit); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func printUnit(out io.Writer, unit *domain.OutputUnit) error {
	head, _ := json.Marshal(unit)
	if _, err := fmt.Fprintf(out, "%s\n", head); err != nil {
		return fmt.Errorf("write unit: %w", err)
	}
	mime := unit.Attributes[domain.AttrMimeType]
	if strings.Contains(mime, "parquet") {
		return nil
	}
	if _, err := out.Write(unit.Content); err != nil {
		return fmt.Errorf("write content: %w", err)
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}
