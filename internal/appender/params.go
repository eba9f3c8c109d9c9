package appender

import (
	"time"

	"github.com/Kargones/logroute/internal/level"
)

// Params — параметры аппендера, зависящие от вида.
// Поля, не относящиеся к виду, игнорируются.
type Params struct {
	// Target — поток консоли: stdout (по умолчанию) или stderr.
	Target string

	// Path — путь к файлу (file, rolling_file).
	Path string

	// Append — дописывать в существующий файл (file). nil означает true.
	Append *bool

	// Charset — кодировка вывода (console, file, rolling_file). Пусто — UTF-8.
	Charset string

	// Ротация rolling_file, см. lumberjack.Logger.
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool

	// DSN и Table — подключение и таблица для mssql.
	DSN   string
	Table string

	// Timeout — таймаут вставки mssql (0 — значение по умолчанию).
	Timeout time.Duration

	// Encoder — вид кодировщика: pattern (по умолчанию) или json.
	Encoder string

	// Threshold — собственный порог аппендера. nil — без фильтрации.
	Threshold *level.Level
}

func (p Params) appendMode() bool {
	return p.Append == nil || *p.Append
}
