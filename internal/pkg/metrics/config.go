package metrics

import (
	"net/url"
	"time"
)

// Config содержит настройки метрик маршрутизации.
type Config struct {
	// Enabled — включены ли метрики (по умолчанию false).
	Enabled bool `yaml:"enabled" env:"LOGROUTE_METRICS_ENABLED"`

	// PushgatewayURL — URL Prometheus Pushgateway.
	// Пусто — метрики доступны только через Gatherer.
	// Пример: "http://pushgateway:9091"
	PushgatewayURL string `yaml:"pushgateway_url" env:"LOGROUTE_METRICS_PUSHGATEWAY_URL"`

	// JobName — имя job для группировки метрик.
	// По умолчанию: "logroute"
	JobName string `yaml:"job_name" env:"LOGROUTE_METRICS_JOB_NAME"`

	// Timeout — таймаут HTTP запросов к Pushgateway.
	// По умолчанию: 10 секунд.
	Timeout time.Duration `yaml:"timeout" env:"LOGROUTE_METRICS_TIMEOUT"`

	// InstanceLabel — переопределение instance label.
	// Если пусто — используется hostname.
	InstanceLabel string `yaml:"instance_label" env:"LOGROUTE_METRICS_INSTANCE"`
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil // отключённые метрики валидны
	}

	if c.PushgatewayURL != "" {
		u, err := url.Parse(c.PushgatewayURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrPushgatewayURLInvalid
		}
	}

	if c.JobName == "" {
		return ErrJobNameRequired
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		Enabled: false,
		JobName: "logroute",
		Timeout: 10 * time.Second,
	}
}
