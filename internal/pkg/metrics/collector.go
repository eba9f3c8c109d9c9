// Package metrics считает события, прошедшие через движок маршрутизации,
// и публикует счётчики для Prometheus: через Gatherer для scrape хостом
// или отправкой в Pushgateway при завершении работы.
//
// Factory NewCollector выбирает NopCollector при отключённых метриках
// и PrometheusCollector при включённых.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector определяет интерфейс для сбора метрик маршрутизации.
// Все методы Record* вызываются на горячем пути логирования и не блокируют.
type Collector interface {
	// RecordDispatched учитывает доставку события в аппендер.
	// logger — имя разрешённого узла дерева (root для корня), а не имя из вызова:
	// это ограничивает кардинальность label.
	RecordDispatched(logger, appender string)

	// RecordDropped учитывает событие ниже порога узла.
	RecordDropped(logger string)

	// RecordFiltered учитывает событие, отсеянное собственным порогом аппендера.
	RecordFiltered(appender string)

	// RecordSinkError учитывает ошибку записи в приёмник.
	RecordSinkError(appender, kind string)

	// RecordReload учитывает попытку перезагрузки конфигурации.
	RecordReload(success bool)

	// Gatherer возвращает источник метрик для scrape. NopCollector возвращает пустой.
	Gatherer() prometheus.Gatherer

	// Push отправляет метрики в Pushgateway.
	// Ошибки отправки логируются внутри реализации; метрики не критичны.
	Push(ctx context.Context) error
}
