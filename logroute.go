// Package logroute — движок маршрутизации логов по декларативной конфигурации.
//
// Документ описывает именованные аппендеры (приёмник + шаблон), порог и
// аппендеры корневого логгера и переопределения для именованных логгеров
// с флагом additive. Handle, полученный из Initialize, разрешает имя логгера
// по самому длинному префиксу из сегментов через точку, фильтрует событие
// по порогу и доставляет его в собственные аппендеры узла и, пока узлы
// additive, в аппендеры предков.
//
//	h, err := logroute.InitializeFile("logroute.yaml")
//	if err != nil {
//	    return err
//	}
//	defer h.Shutdown(context.Background())
//
//	log := h.Logger("app.db")
//	log.Info("connected", "host", host)
//
// Ошибки конфигурации возвращаются из Initialize и Reload. Ошибки записи
// в приёмники вызывающему не возвращаются: они уходят в диагностический
// канал и счётчик logroute_sink_errors_total.
package logroute

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Kargones/logroute/internal/appender"
	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/event"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/pkg/logging"
	"github.com/Kargones/logroute/internal/pkg/metrics"
	"github.com/Kargones/logroute/internal/router"
)

// Handle — инициализированный движок. Безопасен для конкурентного использования.
type Handle struct {
	router  *router.Router
	diag    logging.Logger
	metrics metrics.Collector
	opts    options

	closers []io.Closer

	stopWatch context.CancelFunc
	watchDone chan struct{}

	shutdownOnce sync.Once
	shutdownErr  error
}

// Initialize строит движок из YAML-документа.
func Initialize(doc []byte, opts ...Option) (*Handle, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d, err := parse(doc, o)
	if err != nil {
		return nil, err
	}
	return newHandle(d, o)
}

// InitializeFile строит движок из файла. Если в документе задан refresh_rate,
// файл перечитывается с этим периодом до Shutdown (отключается WithoutWatch).
func InitializeFile(path string, opts ...Option) (*Handle, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	data, err := os.ReadFile(path) //nolint:gosec // путь задан хост-программой
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "не удалось прочитать "+path, err)
	}
	d, err := parse(data, o)
	if err != nil {
		return nil, err
	}
	h, err := newHandle(d, o)
	if err != nil {
		return nil, err
	}
	if o.watch && d.RefreshRate > 0 {
		h.startWatcher(config.NewWatcher(path, d.RefreshRate, data, h.applyWatched, h.diag))
	}
	return h, nil
}

func parse(data []byte, o options) (*config.Document, error) {
	d, err := config.Parse(data)
	if err != nil {
		return nil, err
	}
	if o.applyEnv {
		if err := config.ApplyEnv(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func newHandle(d *config.Document, o options) (*Handle, error) {
	h := &Handle{opts: o, diag: o.diag}
	if h.diag == nil {
		diag, closer := logging.NewLogger(d.Diagnostics)
		h.diag = diag
		if closer != nil {
			h.closers = append(h.closers, closer)
		}
	}

	collector, err := metrics.NewCollector(d.Metrics, h.diag)
	if err != nil {
		h.closeAll()
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate, "секция metrics", err)
	}
	h.metrics = collector

	reg, t, err := router.Compile(d, h.appenderOptions()...)
	if err != nil {
		h.closeAll()
		return nil, err
	}
	h.router = router.New(reg, t, router.WithDiagnostics(h.diag), router.WithMetrics(collector))
	return h, nil
}

func (h *Handle) appenderOptions() []appender.Option {
	if h.opts.sinkFactory == nil {
		return nil
	}
	return []appender.Option{appender.WithSinkFactory(h.opts.sinkFactory)}
}

func (h *Handle) startWatcher(w *config.Watcher) {
	ctx, cancel := context.WithCancel(context.Background())
	h.stopWatch = cancel
	h.watchDone = make(chan struct{})
	go func() {
		defer close(h.watchDone)
		w.Run(ctx)
	}()
}

// apply строит новую конфигурацию из документа и подменяет действующую.
// Секции diagnostics и metrics при перезагрузке не применяются.
func (h *Handle) apply(d *config.Document) error {
	reg, t, err := router.Compile(d, h.appenderOptions()...)
	if err != nil {
		h.metrics.RecordReload(false)
		return err
	}
	if err := h.router.Swap(reg, t); err != nil {
		_ = reg.Close() //nolint:errcheck // новые приёмники не открывались
		h.metrics.RecordReload(false)
		return err
	}
	h.metrics.RecordReload(true)
	return nil
}

// applyWatched применяет документ, перечитанный Watcher.
func (h *Handle) applyWatched(d *config.Document) error {
	if h.opts.applyEnv {
		if err := config.ApplyEnv(d); err != nil {
			h.metrics.RecordReload(false)
			return err
		}
	}
	return h.apply(d)
}

// Reload атомарно заменяет аппендеры и логгеры конфигурацией из doc.
// При ошибке действующая конфигурация не меняется.
func (h *Handle) Reload(doc []byte) error {
	d, err := parse(doc, h.opts)
	if err != nil {
		h.metrics.RecordReload(false)
		return err
	}
	return h.apply(d)
}

// Log доставляет событие логгера name. Ничего не возвращает: ошибки приёмников
// уходят в диагностику. После Shutdown вызов игнорируется.
func (h *Handle) Log(ctx context.Context, name string, lvl Level, msg string, attrs ...slog.Attr) {
	h.router.Dispatch(event.New(ctx, name, lvl, msg, attrs...))
}

// Enabled сообщает, пройдёт ли событие уровня lvl порог логгера name.
func (h *Handle) Enabled(name string, lvl Level) bool {
	return h.router.Enabled(name, lvl)
}

// Route возвращает имена аппендеров, в которые попадёт событие уровня lvl
// логгера name при действующей конфигурации.
func (h *Handle) Route(name string, lvl Level) []string {
	return h.router.Route(name, lvl)
}

// Gatherer возвращает метрики движка для регистрации в HTTP-обработчике хоста.
func (h *Handle) Gatherer() prometheus.Gatherer {
	return h.metrics.Gatherer()
}

// Appenders возвращает имена действующих аппендеров.
func (h *Handle) Appenders() []string {
	return h.router.Registry().Names()
}

// Shutdown останавливает перезагрузку, дожидается начатых доставок, закрывает
// приёмники и отправляет метрики в Pushgateway, если он настроен.
// Если ctx истекает раньше, возвращается ctx.Err(): приёмники и файл
// диагностики закрываются в фоне после завершения доставок.
// Повторный вызов возвращает результат первого.
func (h *Handle) Shutdown(ctx context.Context) error {
	h.shutdownOnce.Do(func() {
		if h.stopWatch != nil {
			h.stopWatch()
			<-h.watchDone
		}
		var errs []error
		if err := h.router.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		if err := h.metrics.Push(ctx); err != nil {
			errs = append(errs, err)
		}
		select {
		case <-h.router.Drained():
			if err := h.closeAll(); err != nil {
				errs = append(errs, err)
			}
		default:
			// Доставки ещё идут и могут писать в диагностику: она закрывается после них
			go func() {
				<-h.router.Drained()
				_ = h.closeAll() //nolint:errcheck // вызывающий уже получил ctx.Err()
			}()
		}
		h.shutdownErr = errors.Join(errs...)
	})
	return h.shutdownErr
}

func (h *Handle) closeAll() error {
	var errs []error
	for _, c := range h.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	h.closers = nil
	return errors.Join(errs...)
}
