// Package tracing связывает события логов с трассировкой.
//
// Trace ID — 32-символьная hex-строка (16 байт), совместимая с W3C Trace Context:
//
//	"a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"
//
// CLI logroute генерирует trace ID на каждый запуск, а при включённом
// OTel трейсинге события получают trace_id/span_id активного span.
package tracing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID генерирует уникальный trace ID через crypto/rand.
// При ошибке crypto/rand возвращает значение на основе времени и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID всегда возвращает ровно 32 hex-символа: %016x для timestamp и счётчика.
func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	return fmt.Sprintf("%016x%016x", uint64(time.Now().UnixNano()), counter)
}
