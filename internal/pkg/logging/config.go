package logging

// Поддерживаемые форматы вывода диагностики.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Поддерживаемые уровни диагностики.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Поддерживаемые типы вывода диагностики.
const (
	OutputStderr  = "stderr"
	OutputFile    = "file"
	OutputDiscard = "discard"
)

// Значения по умолчанию для Config.
// Единый источник истины — env-default теги ниже должны совпадать с этими константами.
const (
	DefaultLevel      = LevelWarn
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultMaxSize    = 10 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
)

// DefaultConfig возвращает Config со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
	}
}

// Config содержит настройки диагностического канала движка.
//
// Диагностика — это отдельный от маршрутизируемых событий поток: предупреждения
// о перезагрузке конфигурации, ошибки записи в приёмники (SINK.WRITE_FAILED).
// Движок никогда не пишет диагностику через собственные аппендеры.
//
// Секция `diagnostics` документа, переменные окружения LOGROUTE_DIAG_* переопределяют её.
type Config struct {
	// Format определяет формат вывода: "json" или "text".
	Format string `yaml:"format" env:"LOGROUTE_DIAG_FORMAT" env-default:"text"`

	// Level определяет минимальный уровень диагностики.
	// Допустимые значения: "debug", "info", "warn", "error".
	Level string `yaml:"level" env:"LOGROUTE_DIAG_LEVEL" env-default:"warn"`

	// Output определяет куда выводить диагностику: "stderr", "file" или "discard".
	Output string `yaml:"output" env:"LOGROUTE_DIAG_OUTPUT" env-default:"stderr"`

	// FilePath задаёт путь к файлу диагностики (при output="file").
	FilePath string `yaml:"file_path" env:"LOGROUTE_DIAG_FILE_PATH"`

	// MaxSize задаёт максимальный размер файла в мегабайтах перед ротацией.
	MaxSize int `yaml:"max_size" env:"LOGROUTE_DIAG_MAX_SIZE" env-default:"10"`

	// MaxBackups задаёт количество backup файлов.
	MaxBackups int `yaml:"max_backups" env:"LOGROUTE_DIAG_MAX_BACKUPS" env-default:"3"`

	// MaxAge задаёт максимальный возраст backup файлов в днях.
	MaxAge int `yaml:"max_age" env:"LOGROUTE_DIAG_MAX_AGE" env-default:"7"`

	// Compress определяет сжимать ли backup файлы в gzip.
	Compress bool `yaml:"compress" env:"LOGROUTE_DIAG_COMPRESS"`
}
