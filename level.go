package logroute

import "github.com/Kargones/logroute/internal/level"

// Level — уровень серьёзности события. Значения совместимы с slog.Level.
type Level = level.Level

// Уровни событий и порог Off.
const (
	LevelTrace = level.Trace
	LevelDebug = level.Debug
	LevelInfo  = level.Info
	LevelWarn  = level.Warn
	LevelError = level.Error
	LevelFatal = level.Fatal
	LevelOff   = level.Off
)

// ParseLevel разбирает имя уровня без учёта регистра.
func ParseLevel(s string) (Level, error) {
	return level.Parse(s)
}
