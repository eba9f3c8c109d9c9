package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// summaryDivider — разделитель для summary блока в текстовом выводе.
const summaryDivider = "══════════════════════════════════════════════════════"

// TextData реализуется payload-ом команды, у которого есть собственное
// человекочитаемое представление. Иначе Data выводится как JSON.
type TextData interface {
	WriteText(w io.Writer) error
}

// TextWriter форматирует Result в человекочитаемый текст.
type TextWriter struct{}

// NewTextWriter создаёт новый TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write форматирует result в текст и записывает в w.
func (t *TextWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", result.Command, result.Status); err != nil {
		return err
	}

	if result.Error != nil {
		if _, err := fmt.Fprintf(w, "Error [%s]: %s\n", result.Error.Code, result.Error.Message); err != nil {
			return err
		}
	}

	if result.DryRun && result.Plan != nil {
		if err := result.Plan.WriteText(w); err != nil {
			return err
		}
	}

	if err := writeData(w, result.Data); err != nil {
		return err
	}

	// Для ошибок summary не выводится
	if result.Status != StatusError {
		return t.writeSummary(w, result)
	}
	return nil
}

func writeData(w io.Writer, data any) error {
	if data == nil {
		return nil
	}
	if td, ok := data.(TextData); ok {
		return td.WriteText(w)
	}
	dataJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать Data: %w", err)
	}
	_, err = fmt.Fprintf(w, "Data: %s\n", dataJSON)
	return err
}

// writeSummary выводит summary блок в конце text output.
func (t *TextWriter) writeSummary(w io.Writer, result *Result) error {
	if _, err := fmt.Fprintf(w, "\n%s\n📊 Сводка\n%s\n", summaryDivider, summaryDivider); err != nil {
		return err
	}

	if result.Metadata != nil && result.Metadata.DurationMs > 0 {
		if _, err := fmt.Fprintf(w, "⏱️  Время выполнения: %s\n", formatDuration(result.Metadata.DurationMs)); err != nil {
			return err
		}
	}

	if result.Summary != nil {
		for _, m := range result.Summary.KeyMetrics {
			line := fmt.Sprintf("📈 %s: %s", m.Name, m.Value)
			if m.Unit != "" {
				line += " " + m.Unit
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if result.Summary.WarningsCount > 0 {
			if _, err := fmt.Fprintf(w, "\n⚠️  Предупреждений: %d\n", result.Summary.WarningsCount); err != nil {
				return err
			}
			for _, warn := range result.Summary.Warnings {
				if _, err := fmt.Fprintf(w, "   • %s\n", warn); err != nil {
					return err
				}
			}
		}
	}

	_, err := fmt.Fprintf(w, "%s\n", summaryDivider)
	return err
}

// formatDuration форматирует длительность в миллисекундах: 150мс, 2.5с, 1м 5с.
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dмс", ms)
	}
	sec := ms / 1000
	if sec < 60 {
		return fmt.Sprintf("%.1fс", float64(ms)/1000)
	}
	return fmt.Sprintf("%dм %dс", sec/60, sec%60)
}
