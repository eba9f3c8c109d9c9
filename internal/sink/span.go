package sink

import (
	"bytes"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/logroute/internal/event"
)

// Span добавляет событие лога как span event к активному OTel span из контекста события.
// Если в контексте нет записываемого span, запись молча пропускается.
type Span struct {
	closed atomic.Bool
}

// NewSpan создаёт приёмник span events.
func NewSpan() *Span {
	return &Span{}
}

// Write реализует Sink. Span сам сериализует AddEvent, отдельный мьютекс не нужен.
func (s *Span) Write(e *event.Event, line []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	span := trace.SpanFromContext(e.Ctx)
	if !span.IsRecording() {
		return nil
	}

	attrs := make([]attribute.KeyValue, 0, len(e.Attrs)+4)
	attrs = append(attrs,
		attribute.String("log.severity", e.Level.Upper()),
		attribute.String("log.logger", e.Logger),
		attribute.String("log.tag", e.TagOrLogger()),
		attribute.String("log.record", string(bytes.TrimRight(line, "\r\n"))),
	)
	for _, a := range e.Attrs {
		attrs = append(attrs, otelAttr(a))
	}

	span.AddEvent(e.Message, trace.WithTimestamp(e.Time), trace.WithAttributes(attrs...))
	return nil
}

// Close реализует Sink.
func (s *Span) Close() error {
	s.closed.Store(true)
	return nil
}

func otelAttr(a slog.Attr) attribute.KeyValue {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return attribute.String(a.Key, v.String())
	case slog.KindInt64:
		return attribute.Int64(a.Key, v.Int64())
	case slog.KindBool:
		return attribute.Bool(a.Key, v.Bool())
	case slog.KindFloat64:
		return attribute.Float64(a.Key, v.Float64())
	default:
		return attribute.String(a.Key, v.String())
	}
}
