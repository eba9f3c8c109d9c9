// Package event описывает запись лога, проходящую через движок маршрутизации.
// Event создаётся на каждый вызов логирования и отбрасывается после доставки.
package event

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pkg/tracing"
)

// Ключи атрибутов, которые выводятся из контекста события.
const (
	AttrTraceID = "trace_id"
	AttrSpanID  = "span_id"
)

// Event — запись лога.
type Event struct {
	// Logger — имя логгера (пустое имя означает root).
	Logger string
	// Level — уровень серьёзности.
	Level level.Level
	// Message — текст сообщения.
	Message string
	// Time — момент создания события.
	Time time.Time
	// Tag — идентификатор потока/тега ({t} в шаблоне).
	// Если пуст, используется имя логгера.
	Tag string
	// Attrs — дополнительные атрибуты ({X(key)} и {A} в шаблоне).
	Attrs []slog.Attr
	// Ctx — контекст вызова. Не nil.
	Ctx context.Context
}

// New создаёт событие с текущим временем.
// nil ctx заменяется на context.Background().
func New(ctx context.Context, logger string, lvl level.Level, msg string, attrs ...slog.Attr) *Event {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Event{
		Logger:  logger,
		Level:   lvl,
		Message: msg,
		Time:    time.Now(),
		Attrs:   attrs,
		Ctx:     ctx,
	}
}

// TagOrLogger возвращает Tag, а при его отсутствии — имя логгера.
func (e *Event) TagOrLogger() string {
	if e.Tag != "" {
		return e.Tag
	}
	return e.Logger
}

// Lookup ищет атрибут по ключу. Явно заданные атрибуты имеют приоритет;
// trace_id и span_id при их отсутствии берутся из OTel span context,
// а trace_id — также из tracing.TraceIDFromContext.
func (e *Event) Lookup(key string) (string, bool) {
	for i := len(e.Attrs) - 1; i >= 0; i-- {
		if e.Attrs[i].Key == key {
			return e.Attrs[i].Value.String(), true
		}
	}
	switch key {
	case AttrTraceID:
		if sc := trace.SpanContextFromContext(e.Ctx); sc.HasTraceID() {
			return sc.TraceID().String(), true
		}
		if id := tracing.TraceIDFromContext(e.Ctx); id != "" {
			return id, true
		}
	case AttrSpanID:
		if sc := trace.SpanContextFromContext(e.Ctx); sc.HasSpanID() {
			return sc.SpanID().String(), true
		}
	}
	return "", false
}
