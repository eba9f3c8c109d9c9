package sink

import (
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Kargones/logroute/internal/event"
)

// RollingOptions — параметры ротации rolling_file.
type RollingOptions struct {
	// MaxSize — размер файла в мегабайтах до ротации (0 — значение lumberjack, 100 МБ).
	MaxSize int
	// MaxBackups — число хранимых архивов (0 — все).
	MaxBackups int
	// MaxAge — срок хранения архивов в днях (0 — бессрочно).
	MaxAge int
	// Compress — сжимать архивы gzip.
	Compress bool
	// LocalTime — использовать локальное время в именах архивов.
	LocalTime bool
}

// Rolling пишет в файл с ротацией через lumberjack.
// lumberjack открывает файл лениво, при первой записи.
type Rolling struct {
	mu      sync.Mutex
	lj      *lumberjack.Logger
	charset *Charset
	closed  bool
}

// NewRolling создаёт приёмник с ротацией.
func NewRolling(path string, opts RollingOptions, charset *Charset) (*Rolling, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	return &Rolling{
		lj: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   opts.Compress,
			LocalTime:  opts.LocalTime,
		},
		charset: charset,
	}, nil
}

// Write реализует Sink.
func (s *Rolling) Write(_ *event.Event, line []byte) error {
	data, err := s.charset.Encode(line)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	_, err = s.lj.Write(data)
	return err
}

// Rotate принудительно выполняет ротацию.
func (s *Rolling) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.lj.Rotate()
}

// Close закрывает текущий файл.
func (s *Rolling) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.lj.Close()
}
