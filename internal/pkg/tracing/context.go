package tracing

import "context"

// traceIDKey — ключ для хранения trace ID в context.
type traceIDKey struct{}

// WithTraceID возвращает context с trace ID.
// Используется хост-программами без OTel: токен {X(trace_id)} берёт значение отсюда.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext извлекает trace ID из context.
// Возвращает пустую строку если trace ID не установлен или context == nil.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}
