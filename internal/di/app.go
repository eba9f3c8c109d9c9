// Package di собирает зависимости CLI logroute через Google Wire.
package di

import (
	"context"

	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/pkg/logging"
	"github.com/Kargones/logroute/internal/pkg/output"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config содержит конфигурацию CLI, загруженную через config.MustLoad().
	Config *config.Config

	// Logger — диагностический логгер CLI (LOGROUTE_DIAG_*).
	Logger logging.Logger

	// OutputWriter форматирует результаты команд по LOGROUTE_OUTPUT_FORMAT.
	OutputWriter output.Writer

	// TraceID связывает логи, результат команды и OTel span одного запуска.
	TraceID string

	// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
	// Если трейсинг отключён — nop function.
	TracerShutdown func(context.Context) error
}
