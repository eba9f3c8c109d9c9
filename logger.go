package logroute

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kargones/logroute/internal/event"
)

// Logger — именованный логгер поверх Handle. Неизменяем; With и WithTag
// возвращают новый Logger.
type Logger struct {
	h     *Handle
	name  string
	tag   string
	attrs []slog.Attr
}

// Logger возвращает логгер name. Пустое имя означает корневой логгер.
func (h *Handle) Logger(name string) *Logger {
	return &Logger{h: h, name: name}
}

// Name возвращает имя логгера.
func (l *Logger) Name() string { return l.name }

// WithTag возвращает логгер, события которого несут тег tag ({t} в шаблоне).
func (l *Logger) WithTag(tag string) *Logger {
	c := *l
	c.tag = tag
	return &c
}

// With возвращает логгер с добавленными атрибутами. args — пары ключ-значение
// или slog.Attr, как в slog.Logger.With.
func (l *Logger) With(args ...any) *Logger {
	c := *l
	c.attrs = append(append([]slog.Attr(nil), l.attrs...), argsToAttrs(args)...)
	return &c
}

// Enabled сообщает, пройдёт ли событие уровня lvl порог логгера.
func (l *Logger) Enabled(lvl Level) bool {
	return l.h.Enabled(l.name, lvl)
}

// Log записывает событие с контекстом. Контекст передаёт trace_id/span_id
// и активный span для аппендеров вида span.
func (l *Logger) Log(ctx context.Context, lvl Level, msg string, args ...any) {
	attrs := l.attrs
	if len(args) > 0 {
		attrs = append(append(make([]slog.Attr, 0, len(l.attrs)+len(args)), l.attrs...), argsToAttrs(args)...)
	}
	e := event.New(ctx, l.name, lvl, msg, attrs...)
	e.Tag = l.tag
	l.h.router.Dispatch(e)
}

// Trace записывает событие уровня TRACE.
func (l *Logger) Trace(msg string, args ...any) { l.Log(context.Background(), LevelTrace, msg, args...) }

// Debug записывает событие уровня DEBUG.
func (l *Logger) Debug(msg string, args ...any) { l.Log(context.Background(), LevelDebug, msg, args...) }

// Info записывает событие уровня INFO.
func (l *Logger) Info(msg string, args ...any) { l.Log(context.Background(), LevelInfo, msg, args...) }

// Warn записывает событие уровня WARN.
func (l *Logger) Warn(msg string, args ...any) { l.Log(context.Background(), LevelWarn, msg, args...) }

// Error записывает событие уровня ERROR.
func (l *Logger) Error(msg string, args ...any) { l.Log(context.Background(), LevelError, msg, args...) }

// Fatal записывает событие уровня FATAL. Процесс не завершается.
func (l *Logger) Fatal(msg string, args ...any) { l.Log(context.Background(), LevelFatal, msg, args...) }

// argsToAttrs разбирает аргументы по правилам slog: пары ключ-значение,
// готовые slog.Attr, а непарный хвост получает ключ !BADKEY.
func argsToAttrs(args []any) []slog.Attr {
	if len(args) == 0 {
		return nil
	}
	r := slog.NewRecord(time.Time{}, 0, "", 0)
	r.Add(args...)
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return attrs
}
