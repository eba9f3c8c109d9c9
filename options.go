package logroute

import (
	"log/slog"

	"github.com/Kargones/logroute/internal/appender"
	"github.com/Kargones/logroute/internal/pkg/logging"
)

type options struct {
	diag        logging.Logger
	applyEnv    bool
	watch       bool
	sinkFactory appender.SinkFactory
}

func defaultOptions() options {
	return options{applyEnv: true, watch: true}
}

// Option настраивает Initialize и InitializeFile.
type Option func(*options)

// WithDiagnostics направляет диагностику движка в logger вместо канала,
// описанного секцией diagnostics документа.
func WithDiagnostics(logger *slog.Logger) Option {
	return func(o *options) {
		o.diag = logging.NewSlogAdapter(logger)
	}
}

// WithoutEnv отключает переопределение документа переменными LOGROUTE_*.
func WithoutEnv() Option {
	return func(o *options) {
		o.applyEnv = false
	}
}

// WithoutWatch отключает перезагрузку файла по refresh_rate в InitializeFile.
func WithoutWatch() Option {
	return func(o *options) {
		o.watch = false
	}
}

// withDiagLogger задаёт внутренний логгер диагностики (тесты).
func withDiagLogger(l logging.Logger) Option {
	return func(o *options) {
		o.diag = l
	}
}

// withSinkFactory подменяет создание приёмников (тесты).
func withSinkFactory(f appender.SinkFactory) Option {
	return func(o *options) {
		o.sinkFactory = f
	}
}
