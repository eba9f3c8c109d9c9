// Package logging предоставляет диагностический логгер движка маршрутизации.
//
// Это не маршрутизируемые события хост-программы, а служебный канал самого движка:
// сюда уходят ошибки записи в приёмники, результаты перезагрузки конфигурации и т.п.
package logging

// Logger определяет интерфейс диагностического логирования.
// Реализации: SlogAdapter (log/slog), NopLogger, loggingtest.Recorder.
//
// Все методы принимают сообщение и опциональные key-value пары:
//
//	logger.Warn("запись в аппендер не удалась", "appender", name, "error", err)
type Logger interface {
	// Debug записывает сообщение уровня DEBUG.
	Debug(msg string, args ...any)

	// Info записывает сообщение уровня INFO.
	Info(msg string, args ...any)

	// Warn записывает сообщение уровня WARN.
	Warn(msg string, args ...any)

	// Error записывает сообщение уровня ERROR.
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	With(args ...any) Logger
}
