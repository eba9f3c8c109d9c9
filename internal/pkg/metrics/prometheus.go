package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Kargones/logroute/internal/pkg/logging"
	"github.com/Kargones/logroute/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "logroute"

// PrometheusCollector реализует Collector с Prometheus метриками.
// Регистрирует метрики в собственном registry, не в глобальном:
// несколько движков в одном процессе не конфликтуют.
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	dispatched *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	filtered   *prometheus.CounterVec
	sinkErrors *prometheus.CounterVec
	reloads    *prometheus.CounterVec

	// Instance label (hostname)
	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector с указанной конфигурацией.
// Регистрирует метрики:
//   - logroute_events_dispatched_total{logger,appender}
//   - logroute_events_dropped_total{logger}
//   - logroute_events_filtered_total{appender}
//   - logroute_sink_errors_total{appender,kind}
//   - logroute_reloads_total{status}
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	c := &PrometheusCollector{
		config:   config,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		instance: instance,
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dispatched_total",
			Help:      "Total number of events written to an appender",
		}, []string{"logger", "appender"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Total number of events below the logger threshold",
		}, []string{"logger"}),
		filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_filtered_total",
			Help:      "Total number of events rejected by an appender threshold filter",
		}, []string{"appender"}),
		sinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Total number of failed sink writes",
		}, []string{"appender", "kind"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Total number of configuration reload attempts",
		}, []string{"status"}),
	}

	// Используем Register вместо MustRegister для избежания panic.
	collectors := []prometheus.Collector{c.dispatched, c.dropped, c.filtered, c.sinkErrors, c.reloads}
	for _, col := range collectors {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}
	return c, nil
}

// maxLabelLength — максимальная длина значения label для защиты от cardinality explosion.
const maxLabelLength = 128

// sanitizeLabel обрезает значение label до допустимой длины и удаляет
// контрольные символы, которые могут нарушить Prometheus text format.
// Обрезка выполняется по рунам для корректной работы с UTF-8.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// loggerLabel возвращает "root" для корневого логгера.
func loggerLabel(name string) string {
	if name == "" {
		return "root"
	}
	return sanitizeLabel(name)
}

// RecordDispatched реализует Collector.
func (c *PrometheusCollector) RecordDispatched(logger, appender string) {
	c.dispatched.WithLabelValues(loggerLabel(logger), sanitizeLabel(appender)).Inc()
}

// RecordDropped реализует Collector.
func (c *PrometheusCollector) RecordDropped(logger string) {
	c.dropped.WithLabelValues(loggerLabel(logger)).Inc()
}

// RecordFiltered реализует Collector.
func (c *PrometheusCollector) RecordFiltered(appender string) {
	c.filtered.WithLabelValues(sanitizeLabel(appender)).Inc()
}

// RecordSinkError реализует Collector.
func (c *PrometheusCollector) RecordSinkError(appender, kind string) {
	c.sinkErrors.WithLabelValues(sanitizeLabel(appender), sanitizeLabel(kind)).Inc()
}

// RecordReload реализует Collector.
func (c *PrometheusCollector) RecordReload(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.reloads.WithLabelValues(status).Inc()
}

// Gatherer возвращает registry коллектора.
func (c *PrometheusCollector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// Push отправляет метрики в Pushgateway.
// Возвращает nil даже при ошибке — ошибки логируются.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL not configured, skipping push")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		// Текст ошибки push содержит полный адрес запроса вместе с userinfo
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", urlutil.MaskURLsInText(err.Error()),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Debug("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}
