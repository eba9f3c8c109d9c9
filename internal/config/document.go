// Package config разбирает конфигурационный документ движка маршрутизации.
//
// Документ читается из YAML (gopkg.in/yaml.v3) в строгом режиме, проверяется
// встроенной JSON Schema, после чего переменные окружения LOGROUTE_*
// переопределяют отдельные значения (ilyakaznacheev/cleanenv).
//
// Пример документа:
//
//	refresh_rate: 30s
//	appenders:
//	  stdout:
//	    kind: console
//	  file:
//	    kind: file
//	    path: log/app.log
//	    encoder:
//	      pattern: "{d} {l} {t} - {m}{n}"
//	root:
//	  level: info
//	  appenders: [stdout, file]
//	loggers:
//	  app.db:
//	    level: debug
//	    appenders: [file]
//	    additive: false
package config

import (
	"time"

	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pkg/logging"
	"github.com/Kargones/logroute/internal/pkg/metrics"
)

// DefaultRootLevel подставляется, если root.level отсутствует в документе.
const DefaultRootLevel = level.Info

// FilterThreshold — единственный поддерживаемый вид фильтра аппендера.
const FilterThreshold = "threshold"

// Document — конфигурационный документ.
type Document struct {
	// RefreshRate — период проверки файла на изменения; 0 отключает перезагрузку.
	RefreshRate time.Duration `yaml:"refresh_rate"`

	Appenders map[string]AppenderConfig `yaml:"appenders"`
	Root      RootConfig                `yaml:"root"`
	Loggers   map[string]LoggerConfig   `yaml:"loggers"`

	// Diagnostics — настройки канала диагностики движка.
	Diagnostics logging.Config `yaml:"diagnostics"`

	// Metrics — настройки метрик маршрутизации.
	Metrics metrics.Config `yaml:"metrics"`
}

// AppenderConfig — описание аппендера.
type AppenderConfig struct {
	Kind string `yaml:"kind"`

	// console
	Target string `yaml:"target"`

	// file, rolling_file
	Path    string `yaml:"path"`
	Append  *bool  `yaml:"append"`
	Charset string `yaml:"charset"`

	// rolling_file
	MaxSize    int  `yaml:"max_size"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAge     int  `yaml:"max_age"`
	Compress   bool `yaml:"compress"`

	// mssql
	DSN     string        `yaml:"dsn"`
	Table   string        `yaml:"table"`
	Timeout time.Duration `yaml:"timeout"`

	Encoder EncoderConfig  `yaml:"encoder"`
	Filters []FilterConfig `yaml:"filters"`
}

// EncoderConfig — правило форматирования аппендера.
type EncoderConfig struct {
	// Kind — pattern (по умолчанию) или json.
	Kind    string `yaml:"kind"`
	Pattern string `yaml:"pattern"`
}

// FilterConfig — фильтр аппендера.
type FilterConfig struct {
	Kind  string      `yaml:"kind"`
	Level level.Level `yaml:"level"`
}

// RootConfig — настройки корневого логгера.
type RootConfig struct {
	Level     *level.Level `yaml:"level"`
	Appenders []string     `yaml:"appenders"`
}

// LoggerConfig — настройки именованного логгера.
type LoggerConfig struct {
	Level     *level.Level `yaml:"level"`
	Appenders []string     `yaml:"appenders"`
	Additive  *bool        `yaml:"additive"`
}

// Threshold возвращает порог из фильтров аппендера: при нескольких
// threshold-фильтрах действует самый строгий. nil — фильтров нет.
func (a AppenderConfig) Threshold() *level.Level {
	var out *level.Level
	for _, f := range a.Filters {
		if f.Kind != FilterThreshold {
			continue
		}
		if out == nil || f.Level > *out {
			l := f.Level
			out = &l
		}
	}
	return out
}

// applyDefaults заполняет значения, не заданные в документе.
func (d *Document) applyDefaults() {
	if d.Root.Level == nil {
		l := DefaultRootLevel
		d.Root.Level = &l
	}

	diagDefaults := logging.DefaultConfig()
	if d.Diagnostics.Level == "" {
		d.Diagnostics.Level = diagDefaults.Level
	}
	if d.Diagnostics.Format == "" {
		d.Diagnostics.Format = diagDefaults.Format
	}
	if d.Diagnostics.Output == "" {
		d.Diagnostics.Output = diagDefaults.Output
	}
	if d.Diagnostics.MaxSize == 0 {
		d.Diagnostics.MaxSize = diagDefaults.MaxSize
	}
	if d.Diagnostics.MaxBackups == 0 {
		d.Diagnostics.MaxBackups = diagDefaults.MaxBackups
	}
	if d.Diagnostics.MaxAge == 0 {
		d.Diagnostics.MaxAge = diagDefaults.MaxAge
	}

	metricsDefaults := metrics.DefaultConfig()
	if d.Metrics.JobName == "" {
		d.Metrics.JobName = metricsDefaults.JobName
	}
	if d.Metrics.Timeout == 0 {
		d.Metrics.Timeout = metricsDefaults.Timeout
	}
}
