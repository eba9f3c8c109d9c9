// Package router доставляет события в аппендеры по дереву логгеров.
//
// Действующая конфигурация (реестр аппендеров и дерево) хранится за одним
// atomic.Pointer: перезагрузка подменяет пару целиком, и вызов Dispatch видит
// либо старую, либо новую конфигурацию. Старое поколение закрывается только
// после завершения всех начатых в нём доставок.
package router

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Kargones/logroute/internal/appender"
	"github.com/Kargones/logroute/internal/event"
	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pkg/logging"
	"github.com/Kargones/logroute/internal/pkg/metrics"
	"github.com/Kargones/logroute/internal/tree"
)

// ErrShutdown возвращается при перезагрузке остановленного Router.
var ErrShutdown = errors.New("router: остановлен")

// generation — неизменяемая пара реестр+дерево и счётчик доставок в ней.
type generation struct {
	registry *appender.Registry
	tree     *tree.Tree

	// mu удерживается на чтение каждой доставкой и на запись при выводе поколения
	// из работы, что дожидается завершения начатых доставок.
	mu      sync.RWMutex
	retired bool
}

// retire дожидается завершения доставок и закрывает приёмники поколения.
func (g *generation) retire() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.retired {
		return nil
	}
	g.retired = true
	return g.registry.Close()
}

// Router — движок маршрутизации. Безопасен для конкурентного использования.
type Router struct {
	current atomic.Pointer[generation]
	closed  atomic.Bool
	// drained закрывается, когда после Shutdown завершены доставки и закрыты приёмники.
	drained chan struct{}

	// swapMu сериализует Swap и Shutdown между собой.
	swapMu sync.Mutex

	diag    logging.Logger
	metrics metrics.Collector
}

// Option настраивает Router.
type Option func(*Router)

// WithDiagnostics задаёт канал диагностики для ошибок приёмников.
func WithDiagnostics(l logging.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.diag = l
		}
	}
}

// WithMetrics задаёт коллектор метрик.
func WithMetrics(c metrics.Collector) Option {
	return func(r *Router) {
		if c != nil {
			r.metrics = c
		}
	}
}

// New создаёт Router с начальной конфигурацией.
func New(reg *appender.Registry, t *tree.Tree, opts ...Option) *Router {
	r := &Router{
		diag:    logging.NewNopLogger(),
		metrics: metrics.NewNopCollector(),
		drained: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.current.Store(&generation{registry: reg, tree: t})
	return r
}

// Tree возвращает действующее дерево.
func (r *Router) Tree() *tree.Tree {
	return r.current.Load().tree
}

// Registry возвращает действующий реестр аппендеров.
func (r *Router) Registry() *appender.Registry {
	return r.current.Load().registry
}

// Enabled сообщает, будет ли событие уровня lvl логгера name доставлено хотя бы
// при пороге узла. Собственные пороги аппендеров не учитываются.
func (r *Router) Enabled(name string, lvl level.Level) bool {
	if r.closed.Load() {
		return false
	}
	return r.current.Load().tree.Resolve(name).Enabled(lvl)
}

// Route возвращает имена аппендеров, которые примут событие уровня lvl
// логгера name, в порядке доставки. Пустой результат — событие будет отброшено.
func (r *Router) Route(name string, lvl level.Level) []string {
	if r.closed.Load() {
		return nil
	}
	node := r.current.Load().tree.Resolve(name)
	if !node.Enabled(lvl) {
		return nil
	}
	var names []string
	for _, a := range node.Dispatch() {
		if a.Accepts(lvl) {
			names = append(names, a.Name())
		}
	}
	return names
}

// acquire возвращает действующее поколение, удерживая его на чтение.
// nil означает, что Router остановлен.
func (r *Router) acquire() *generation {
	for {
		g := r.current.Load()
		g.mu.RLock()
		if !g.retired {
			return g
		}
		g.mu.RUnlock()
		// Поколение выведено из работы: новое уже опубликовано, либо Router остановлен
		if r.closed.Load() {
			return nil
		}
	}
}

// Dispatch доставляет событие. Ошибки приёмников не возвращаются:
// они уходят в диагностику и метрики, а доставка в остальные аппендеры продолжается.
func (r *Router) Dispatch(e *event.Event) {
	if r.closed.Load() {
		return
	}
	g := r.acquire()
	if g == nil {
		return
	}
	defer g.mu.RUnlock()

	node := g.tree.Resolve(e.Logger)
	label := metricsLabel(node)
	if !node.Enabled(e.Level) {
		r.metrics.RecordDropped(label)
		return
	}

	for _, a := range node.Dispatch() {
		if !a.Accepts(e.Level) {
			r.metrics.RecordFiltered(a.Name())
			continue
		}
		if err := safeAppend(a, e); err != nil {
			r.metrics.RecordSinkError(a.Name(), string(a.Kind()))
			r.diag.Warn("ошибка записи в аппендер",
				"appender", a.Name(),
				"kind", string(a.Kind()),
				"logger", e.Logger,
				"error", err.Error(),
			)
			continue
		}
		r.metrics.RecordDispatched(label, a.Name())
	}
}

// RootLabel — имя корневого логгера в метриках и диагностике.
const RootLabel = "root"

// metricsLabel возвращает имя узла для коллектора метрик; у корня имя пустое.
func metricsLabel(n *tree.Node) string {
	if n.IsRoot() {
		return RootLabel
	}
	return n.Name()
}

// safeAppend изолирует панику в приёмнике от вызывающего.
func safeAppend(a *appender.Appender, e *event.Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("паника в аппендере %q: %v", a.Name(), p)
		}
	}()
	return a.Append(e)
}

// Swap устанавливает новую конфигурацию и закрывает приёмники старой после
// завершения начатых в ней доставок. Ошибка закрытия старых приёмников
// уходит в диагностику: новая конфигурация к этому моменту уже действует.
func (r *Router) Swap(reg *appender.Registry, t *tree.Tree) error {
	r.swapMu.Lock()
	defer r.swapMu.Unlock()
	if r.closed.Load() {
		return ErrShutdown
	}

	old := r.current.Swap(&generation{registry: reg, tree: t})
	if err := old.retire(); err != nil {
		r.diag.Warn("ошибка закрытия приёмников прежней конфигурации", "error", err.Error())
	}
	return nil
}

// Drained возвращает канал, который закрывается после того, как Shutdown
// дождался начатых доставок и закрыл приёмники. До Shutdown канал открыт.
func (r *Router) Drained() <-chan struct{} {
	return r.drained
}

// Shutdown прекращает приём событий, дожидается завершения начатых доставок
// и закрывает приёмники. Повторный вызов ничего не делает.
// Если ctx истекает раньше, возвращается ctx.Err(), а закрытие завершается в фоне.
func (r *Router) Shutdown(ctx context.Context) error {
	r.swapMu.Lock()
	if r.closed.Swap(true) {
		r.swapMu.Unlock()
		return nil
	}
	g := r.current.Load()
	r.swapMu.Unlock()

	done := make(chan error, 1)
	go func() {
		err := g.retire()
		close(r.drained)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
