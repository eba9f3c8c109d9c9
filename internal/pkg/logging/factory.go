package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Kargones/logroute/internal/constants"
)

// NewLogger создаёт диагностический Logger с заданной конфигурацией.
//
// Поддерживаемые режимы вывода (config.Output):
//   - "stderr" или "" (default): диагностика пишется в os.Stderr
//   - "file": запись в файл с ротацией через lumberjack
//   - "discard": диагностика отключена
//
// Возвращает io.Closer для файлового вывода (nil для остальных),
// который нужно закрыть при завершении работы.
func NewLogger(config Config) (Logger, io.Closer) {
	switch config.Output {
	case OutputDiscard:
		return NewNopLogger(), nil
	case OutputFile:
		w := newLumberjackWriter(config)
		if lj, ok := w.(*lumberjack.Logger); ok {
			return NewLoggerWithWriter(config, lj), lj
		}
		return NewLoggerWithWriter(config, w), nil
	case OutputStderr, "":
		return NewLoggerWithWriter(config, os.Stderr), nil
	default:
		// Диагностика не должна молча пропадать: сообщаем и падаем обратно на stderr
		_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // bootstrap stderr
			"WARNING: неизвестный diagnostics output %q, используется stderr\n", config.Output)
		return NewLoggerWithWriter(config, os.Stderr), nil
	}
}

// newLumberjackWriter создаёт io.Writer с ротацией на основе lumberjack.
// Создаёт директорию для файла если она не существует.
// При пустом FilePath или ошибке создания директории возвращает os.Stderr.
func newLumberjackWriter(config Config) io.Writer {
	if config.FilePath == "" {
		_, _ = os.Stderr.WriteString("WARNING: diagnostics output=file, но file_path пуст, используется stderr\n") //nolint:errcheck // bootstrap stderr
		return os.Stderr
	}

	dir := filepath.Dir(config.FilePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // bootstrap stderr
				"WARNING: не удалось создать директорию диагностики %q: %v, используется stderr\n", dir, err)
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}

// NewLoggerWithWriter создаёт Logger, пишущий в w.
// Используется для тестирования и встраивания в хост-программу.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return NewSlogAdapter(slog.New(handler)).With("component", "logroute")
}

// parseLevel конвертирует строковый уровень в slog.Level.
// При неизвестном значении возвращает slog.LevelWarn — значение по умолчанию.
func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
