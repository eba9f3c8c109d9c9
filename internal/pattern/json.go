package pattern

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kargones/logroute/internal/event"
)

// Виды кодировщиков (encoder.kind в документе).
const (
	KindPattern = "pattern"
	KindJSON    = "json"
)

// New создаёт Encoder по виду и шаблону.
// Пустой kind означает "pattern".
func New(kind, raw string) (Encoder, error) {
	switch kind {
	case "", KindPattern:
		return Compile(raw)
	case KindJSON:
		if raw != "" {
			return nil, fmt.Errorf("encoder %q не принимает pattern", KindJSON)
		}
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("неизвестный вид encoder %q (допустимо: %s, %s)", kind, KindPattern, KindJSON)
	}
}

// JSON кодирует событие в один JSON-объект на строку.
type JSON struct{}

type jsonRecord struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Logger  string         `json:"logger"`
	Tag     string         `json:"tag,omitempty"`
	Message string         `json:"message"`
	TraceID string         `json:"trace_id,omitempty"`
	SpanID  string         `json:"span_id,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Encode реализует Encoder.
func (JSON) Encode(e *event.Event) ([]byte, error) {
	rec := jsonRecord{
		Time:    e.Time.Format(time.RFC3339Nano),
		Level:   e.Level.Upper(),
		Logger:  e.Logger,
		Tag:     e.Tag,
		Message: e.Message,
		Attrs:   attrsToMap(e.Attrs),
	}
	if _, explicit := findAttr(e.Attrs, event.AttrTraceID); !explicit {
		rec.TraceID, _ = e.Lookup(event.AttrTraceID)
	}
	if _, explicit := findAttr(e.Attrs, event.AttrSpanID); !explicit {
		rec.SpanID, _ = e.Lookup(event.AttrSpanID)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("json encoder: %w", err)
	}
	return append(data, '\n'), nil
}

func findAttr(attrs []slog.Attr, key string) (slog.Attr, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a, true
		}
	}
	return slog.Attr{}, false
}

func attrsToMap(attrs []slog.Attr) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]any, len(attrs))
	for _, a := range attrs {
		v := a.Value.Resolve()
		switch v.Kind() {
		case slog.KindGroup:
			group := attrsToMap(v.Group())
			// Группы с одинаковым ключом (например, из нескольких WithAttrs) сливаются
			if prev, ok := m[a.Key].(map[string]any); ok {
				for k, gv := range group {
					prev[k] = gv
				}
				continue
			}
			m[a.Key] = group
		case slog.KindDuration:
			m[a.Key] = v.Duration().String()
		case slog.KindAny:
			if err, ok := v.Any().(error); ok {
				m[a.Key] = err.Error()
				continue
			}
			m[a.Key] = v.Any()
		default:
			m[a.Key] = v.Any()
		}
	}
	return m
}
