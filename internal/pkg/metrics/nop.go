package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// NopCollector — no-op реализация Collector.
// Используется когда метрики отключены (Config.Enabled = false).
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordDispatched — no-op.
func (c *NopCollector) RecordDispatched(logger, appender string) {}

// RecordDropped — no-op.
func (c *NopCollector) RecordDropped(logger string) {}

// RecordFiltered — no-op.
func (c *NopCollector) RecordFiltered(appender string) {}

// RecordSinkError — no-op.
func (c *NopCollector) RecordSinkError(appender, kind string) {}

// RecordReload — no-op.
func (c *NopCollector) RecordReload(success bool) {}

// Gatherer возвращает пустой набор метрик.
func (c *NopCollector) Gatherer() prometheus.Gatherer {
	return prometheus.Gatherers{}
}

// Push — no-op, всегда возвращает nil.
func (c *NopCollector) Push(ctx context.Context) error {
	return nil
}
