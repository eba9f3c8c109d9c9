package router

import (
	"fmt"

	"github.com/Kargones/logroute/internal/appender"
	"github.com/Kargones/logroute/internal/event"
	"github.com/Kargones/logroute/internal/level"
)

// Delivery — решение маршрутизации события для одного аппендера набора доставки.
type Delivery struct {
	Appender string
	Kind     appender.Kind
	// Accepted — аппендер запишет событие.
	Accepted bool
	// Line — строка, которую получит приёмник; только для принятых событий.
	Line []byte
	// Reason — почему событие не будет записано.
	Reason string
}

// Preview — маршрут события по действующей конфигурации.
type Preview struct {
	// Node — имя разрешённого узла дерева; RootLabel для корня.
	Node      string
	Threshold level.Level
	// Dropped — событие отсечено порогом узла, ни один аппендер не вызывается.
	Dropped    bool
	Deliveries []Delivery
}

// Accepted возвращает имена аппендеров, которые запишут событие.
func (p Preview) Accepted() []string {
	var names []string
	for _, d := range p.Deliveries {
		if d.Accepted {
			names = append(names, d.Appender)
		}
	}
	return names
}

// Preview вычисляет маршрут события тем же путём, что Dispatch, и отрисовывает
// строки принятых аппендеров, но ничего не пишет в приёмники и не трогает метрики.
// После Shutdown возвращает пустой Preview с Dropped.
func (r *Router) Preview(e *event.Event) Preview {
	if r.closed.Load() {
		return Preview{Dropped: true, Threshold: level.Off}
	}
	g := r.acquire()
	if g == nil {
		return Preview{Dropped: true, Threshold: level.Off}
	}
	defer g.mu.RUnlock()

	node := g.tree.Resolve(e.Logger)
	p := Preview{
		Node:      metricsLabel(node),
		Threshold: node.Level(),
		Dropped:   !node.Enabled(e.Level),
	}
	for _, a := range node.Dispatch() {
		d := Delivery{Appender: a.Name(), Kind: a.Kind()}
		switch {
		case p.Dropped:
			d.Reason = fmt.Sprintf("порог логгера %s: %s", p.Node, node.Level().Upper())
		case !a.Accepts(e.Level):
			d.Reason = "порог аппендера: " + a.Threshold().Upper()
		default:
			line, err := a.Render(e)
			if err != nil {
				d.Reason = err.Error()
				break
			}
			d.Accepted = true
			d.Line = line
		}
		p.Deliveries = append(p.Deliveries, d)
	}
	return p
}
