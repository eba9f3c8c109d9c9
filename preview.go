package logroute

import (
	"context"
	"log/slog"

	"github.com/Kargones/logroute/internal/event"
)

// Decision — что произойдёт с событием в одном аппендере.
type Decision struct {
	Appender string
	Kind     string
	Accepted bool
	// Line — строка, которую получит приёмник, если Accepted.
	Line string
	// Reason — почему аппендер не запишет событие.
	Reason string
}

// Preview — маршрут события по действующей конфигурации.
type Preview struct {
	// Node — узел дерева, разрешённый по имени логгера; "root" для корня.
	Node      string
	Threshold Level
	// Dropped — событие отсечено порогом узла.
	Dropped   bool
	Decisions []Decision
}

// Appenders возвращает имена аппендеров, которые запишут событие.
func (p Preview) Appenders() []string {
	names := []string{}
	for _, d := range p.Decisions {
		if d.Accepted {
			names = append(names, d.Appender)
		}
	}
	return names
}

// Preview показывает, куда и в каком виде попадёт событие логгера name,
// ничего не записывая в приёмники. tag задаёт {t}; пустой tag — имя логгера.
func (h *Handle) Preview(ctx context.Context, name, tag string, lvl Level, msg string, attrs ...slog.Attr) Preview {
	e := event.New(ctx, name, lvl, msg, attrs...)
	e.Tag = tag
	rp := h.router.Preview(e)

	p := Preview{
		Node:      rp.Node,
		Threshold: rp.Threshold,
		Dropped:   rp.Dropped,
		Decisions: make([]Decision, 0, len(rp.Deliveries)),
	}
	for _, d := range rp.Deliveries {
		p.Decisions = append(p.Decisions, Decision{
			Appender: d.Appender,
			Kind:     string(d.Kind),
			Accepted: d.Accepted,
			Line:     string(d.Line),
			Reason:   d.Reason,
		})
	}
	return p
}
