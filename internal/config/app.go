package config

import (
	"io"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/pkg/logging"
	"github.com/Kargones/logroute/internal/pkg/tracing"
)

// Config содержит параметры запуска CLI logroute.
// Все значения читаются из переменных окружения; имя команды может
// быть задано первым аргументом командной строки.
type Config struct {
	// Command — имя выполняемой команды (check, emit, version, help).
	Command string `env:"LOGROUTE_COMMAND"`

	// ConfigPath — путь к документу конфигурации маршрутизации.
	ConfigPath string `env:"LOGROUTE_CONFIG" env-default:"logroute.yaml"`

	// OutputFormat — формат результата команды: "text" или "json".
	OutputFormat string `env:"LOGROUTE_OUTPUT_FORMAT" env-default:"text"`

	// Emit — параметры события для команды emit.
	Emit EmitConfig

	// Logging — собственная диагностика CLI (переменные LOGROUTE_DIAG_*).
	Logging logging.Config

	// Tracing — OTel TracerProvider CLI (переменные LOGROUTE_TRACING_*).
	Tracing tracing.Config

	// Logger — диагностический логгер CLI, создаётся в MustLoad.
	Logger logging.Logger

	closer io.Closer
}

// EmitConfig описывает событие, отправляемое командой emit.
type EmitConfig struct {
	// Logger — имя логгера; пустое имя означает корневой логгер.
	Logger string `env:"LOGROUTE_EMIT_LOGGER"`

	// Level — уровень события.
	Level string `env:"LOGROUTE_EMIT_LEVEL" env-default:"info"`

	// Message — текст сообщения.
	Message string `env:"LOGROUTE_EMIT_MESSAGE"`

	// Tag — тег события; пустой тег заменяется именем логгера.
	Tag string `env:"LOGROUTE_EMIT_TAG"`
}

// ParsedLevel возвращает уровень события emit; пустой уровень означает info.
func (e EmitConfig) ParsedLevel() (level.Level, error) {
	if strings.TrimSpace(e.Level) == "" {
		return level.Info, nil
	}
	return level.Parse(e.Level)
}

// MustLoad читает Config из окружения и создаёт диагностический логгер.
// args — аргументы командной строки без имени программы; первый аргумент,
// если он задан, переопределяет LOGROUTE_COMMAND.
func MustLoad(args []string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать переменные окружения в Config", err)
	}
	if len(args) > 0 && args[0] != "" {
		cfg.Command = args[0]
	}
	cfg.Command = strings.TrimSpace(cfg.Command)
	if cfg.Command == "" {
		cfg.Command = constants.ActHelp
	}
	// Пустая переменная окружения перекрывает env-default
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = constants.DefaultConfigPath
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}

	cfg.Logger, cfg.closer = logging.NewLogger(cfg.Logging)
	cfg.Logger.Debug("конфигурация CLI загружена",
		"command", cfg.Command,
		"config", cfg.ConfigPath,
		"output_format", cfg.OutputFormat,
	)
	return &cfg, nil
}

// Close закрывает файл диагностики CLI, если он был открыт.
func (c *Config) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}
