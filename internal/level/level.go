// Package level описывает упорядоченную шкалу уровней логирования:
// trace < debug < info < warn < error < fatal, плюс порог off.
//
// Числовые значения совпадают с семантикой log/slog (debug=-4, info=0, warn=4, error=8)
// и расширены trace (-8) и fatal (12), что позволяет без потерь
// конвертировать уровни в slog.Level и обратно.
package level

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level — уровень серьёзности события или порог логгера.
type Level int

// Поддерживаемые уровни.
const (
	Trace Level = -8
	Debug Level = -4
	Info  Level = 0
	Warn  Level = 4
	Error Level = 8
	Fatal Level = 12
	// Off допустим только как порог: ни одно событие его не достигает.
	Off Level = 16
)

// Строковые имена уровней в конфигурационном документе.
const (
	NameTrace = "trace"
	NameDebug = "debug"
	NameInfo  = "info"
	NameWarn  = "warn"
	NameError = "error"
	NameFatal = "fatal"
	NameOff   = "off"
)

// Names возвращает имена всех уровней, допустимых в качестве порога.
func Names() []string {
	return []string{NameTrace, NameDebug, NameInfo, NameWarn, NameError, NameFatal, NameOff}
}

// Parse разбирает имя уровня без учёта регистра.
// "warning" принимается как синоним "warn".
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case NameTrace:
		return Trace, nil
	case NameDebug:
		return Debug, nil
	case NameInfo:
		return Info, nil
	case NameWarn, "warning":
		return Warn, nil
	case NameError:
		return Error, nil
	case NameFatal:
		return Fatal, nil
	case NameOff:
		return Off, nil
	default:
		return Info, fmt.Errorf("неизвестный уровень логирования %q (допустимо: %s)",
			s, strings.Join(Names(), ", "))
	}
}

// String возвращает имя уровня в нижнем регистре.
func (l Level) String() string {
	switch l {
	case Trace:
		return NameTrace
	case Debug:
		return NameDebug
	case Info:
		return NameInfo
	case Warn:
		return NameWarn
	case Error:
		return NameError
	case Fatal:
		return NameFatal
	case Off:
		return NameOff
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Upper возвращает имя уровня в верхнем регистре, как его выводит токен {l}.
func (l Level) Upper() string {
	return strings.ToUpper(l.String())
}

// Enabled сообщает, проходит ли событие уровня ev порог l.
// Событие уровня Off и выше не проходит ни один порог.
func (l Level) Enabled(ev Level) bool {
	return l != Off && ev < Off && ev >= l
}

// MarshalText реализует encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler.
// Используется yaml.v3 и cleanenv при разборе конфигурации.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// SetValue реализует cleanenv.Setter для переопределения уровня из переменной окружения.
func (l *Level) SetValue(s string) error {
	return l.UnmarshalText([]byte(s))
}

// FromSlog конвертирует slog.Level в Level. Промежуточные значения
// округляются вниз до ближайшего известного уровня.
func FromSlog(sl slog.Level) Level {
	switch {
	case sl >= slog.Level(Fatal):
		return Fatal
	case sl >= slog.LevelError:
		return Error
	case sl >= slog.LevelWarn:
		return Warn
	case sl >= slog.LevelInfo:
		return Info
	case sl >= slog.LevelDebug:
		return Debug
	default:
		return Trace
	}
}

// Slog конвертирует Level в slog.Level.
func (l Level) Slog() slog.Level {
	return slog.Level(l)
}
