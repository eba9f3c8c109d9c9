package output

import (
	"fmt"
	"io"
	"strings"
)

// DeliveryPlan — маршрут события в dry-run режиме emit: какой узел дерева
// его примет и что будет с ним в каждом аппендере набора доставки.
type DeliveryPlan struct {
	Command string `json:"command"`
	// Logger — имя логгера из вызова; пустое — корневой логгер.
	Logger string `json:"logger"`
	// Node — узел дерева, разрешённый по самому длинному префиксу.
	Node  string `json:"node"`
	Level string `json:"level"`
	// Threshold — порог узла.
	Threshold string `json:"threshold"`
	// Dropped — событие отсечено порогом узла.
	Dropped bool           `json:"dropped"`
	Steps   []DeliveryStep `json:"steps"`
	Summary string         `json:"summary,omitempty"`
}

// DeliveryStep — решение для одного аппендера.
type DeliveryStep struct {
	Order    int    `json:"order"`
	Appender string `json:"appender"`
	Kind     string `json:"kind"`
	Accepted bool   `json:"accepted"`
	// Line — отрисованная строка, которую получит приёмник.
	Line string `json:"line,omitempty"`
	// Reason — почему аппендер не запишет событие.
	Reason string `json:"reason,omitempty"`
}

// AcceptedCount возвращает число аппендеров, которые запишут событие.
func (p *DeliveryPlan) AcceptedCount() int {
	n := 0
	for _, s := range p.Steps {
		if s.Accepted {
			n++
		}
	}
	return n
}

// WriteText выводит план между заголовками "=== DRY RUN ===" и "=== END DRY RUN ===".
//
//	Событие: WARN app.http → узел app (порог DEBUG)
//	Доставка:
//	  1. main [file]: WARN app.http slow request
//	  2. errors [file] — порог аппендера: ERROR
func (p *DeliveryPlan) WriteText(w io.Writer) error {
	logger := p.Logger
	if logger == "" {
		logger = "root"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n=== DRY RUN ===\n")
	fmt.Fprintf(&b, "Команда: %s\n", p.Command)
	fmt.Fprintf(&b, "Событие: %s %s → узел %s (порог %s)\n", p.Level, logger, p.Node, p.Threshold)

	if len(p.Steps) == 0 {
		fmt.Fprintf(&b, "Доставка: аппендеры не назначены\n")
	} else {
		fmt.Fprintf(&b, "Доставка:\n")
	}
	for _, s := range p.Steps {
		if s.Accepted {
			fmt.Fprintf(&b, "  %d. %s [%s]: %s\n", s.Order, s.Appender, s.Kind, sanitizeLine(s.Line))
			continue
		}
		fmt.Fprintf(&b, "  %d. %s [%s] — %s\n", s.Order, s.Appender, s.Kind, sanitizeLine(s.Reason))
	}

	if p.Summary != "" {
		fmt.Fprintf(&b, "\nИтого: %s\n", p.Summary)
	}
	fmt.Fprintf(&b, "=== END DRY RUN ===\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// sanitizeLine готовит отрисованную строку к выводу в одну строку терминала:
// удаляет ANSI escape sequences и управляющие символы, переводы строк и табы
// заменяет пробелами, хвостовые пробелы отбрасывает.
func sanitizeLine(s string) string {
	var result strings.Builder
	inEscapeSeq := false
	for _, r := range s {
		// ESC [ <params> <letter>
		if r == '\x1b' {
			inEscapeSeq = true
			continue
		}
		if inEscapeSeq {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscapeSeq = false
			}
			continue
		}

		switch {
		case r == '\n' || r == '\t' || r == '\r':
			result.WriteRune(' ')
		case r < 32 || r == 127:
			continue
		default:
			result.WriteRune(r)
		}
	}
	return strings.TrimRight(result.String(), " ")
}
