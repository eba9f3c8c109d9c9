// Package output предоставляет структуры и интерфейсы для форматирования
// результатов команд CLI в JSON и текстовом формате.
package output

// StatusSuccess и StatusError — возможные значения поля Status в Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result представляет структурированный результат выполнения команды.
// Сериализуется в JSON (LOGROUTE_OUTPUT_FORMAT=json) или выводится
// в человекочитаемом виде (LOGROUTE_OUTPUT_FORMAT=text).
type Result struct {
	// Status содержит статус выполнения: "success" или "error".
	Status string `json:"status"`

	// Command содержит имя выполненной команды.
	Command string `json:"command"`

	// Data содержит payload команды (для каждой команды свой struct).
	Data any `json:"data,omitempty"`

	// Error содержит информацию об ошибке (только при status="error").
	Error *ErrorInfo `json:"error,omitempty"`

	// Metadata содержит метаданные выполнения.
	Metadata *Metadata `json:"metadata,omitempty"`

	// DryRun указывает что результат — план, а не реальное выполнение.
	DryRun bool `json:"dry_run,omitempty"`

	// Plan содержит маршрут события для dry-run режима.
	Plan *DeliveryPlan `json:"plan,omitempty"`

	// Summary не сериализуется напрямую: JSONWriter копирует его
	// в Metadata.Summary, TextWriter выводит отдельным блоком.
	Summary *SummaryInfo `json:"-"`
}

// ErrorInfo содержит информацию об ошибке в структурированном виде.
// Code — машиночитаемый код ошибки (например, "APPENDER.UNDEFINED").
// ВАЖНО: Message НЕ ДОЛЖЕН содержать секреты (DSN с паролем и т.п.)!
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata содержит метаданные выполнения команды.
type Metadata struct {
	// DurationMs — время выполнения команды в миллисекундах.
	DurationMs int64 `json:"duration_ms"`

	// TraceID — идентификатор трассировки для корреляции с диагностикой.
	TraceID string `json:"trace_id,omitempty"`

	// APIVersion — версия формата вывода. Текущая версия: "v1".
	APIVersion string `json:"api_version"`

	// Summary заполняется из Result.Summary при сериализации в JSONWriter.
	Summary *SummaryInfo `json:"summary,omitempty"`
}
