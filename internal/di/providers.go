package di

import (
	"context"
	"log/slog"

	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/pkg/logging"
	"github.com/Kargones/logroute/internal/pkg/output"
	"github.com/Kargones/logroute/internal/pkg/tracing"
)

// ProvideLogger возвращает диагностический логгер, созданный в config.MustLoad().
// Если Config не загружен через MustLoad (nil или без Logger), используется NopLogger.
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil || cfg.Logger == nil {
		return logging.NewNopLogger()
	}
	return cfg.Logger
}

// ProvideOutputWriter создаёт OutputWriter на основе Config.OutputFormat:
//   - "json": JSONWriter
//   - "text" или пустая строка: TextWriter (default)
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	format := output.FormatText
	if cfg != nil && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует trace_id запуска: 32-символьный hex (16 байт).
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideTracerProvider создаёт и инициализирует OTel TracerProvider.
// Возвращает shutdown function для graceful завершения.
// При ошибке создания TracerProvider возвращает nop shutdown и логирует ошибку.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	nop := func(context.Context) error { return nil }
	if cfg == nil {
		return nop
	}

	shutdown, err := tracing.NewTracerProvider(cfg.Tracing, logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return nop
	}
	return shutdown
}
