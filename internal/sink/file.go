package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/event"
)

// ValidatePath проверяет путь файлового приёмника без открытия файла:
// путь не пуст и не указывает на существующую директорию.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path обязателен")
	}
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("path %q указывает на директорию", path)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("path %q недоступен: %w", path, err)
	}
	return nil
}

// File дописывает строки в файл. Файл и его директория создаются при первой записи.
type File struct {
	mu      sync.Mutex
	path    string
	append  bool
	charset *Charset
	f       *os.File
	closed  bool
}

// NewFile создаёт файловый приёмник. При append=false существующий файл
// усекается при первом открытии.
func NewFile(path string, appendMode bool, charset *Charset) (*File, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	return &File{path: path, append: appendMode, charset: charset}, nil
}

// Path возвращает путь к файлу.
func (s *File) Path() string {
	return s.path
}

func (s *File) open() error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			return fmt.Errorf("создание директории %q: %w", dir, err)
		}
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if !s.append {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(s.path, flags, constants.FilePermLog) //nolint:gosec // путь задан конфигурацией
	if err != nil {
		return fmt.Errorf("открытие %q: %w", s.path, err)
	}
	s.f = f
	return nil
}

// Write реализует Sink.
func (s *File) Write(_ *event.Event, line []byte) error {
	data, err := s.charset.Encode(line)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.f == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	_, err = s.f.Write(data)
	return err
}

// Close закрывает файл, если он был открыт.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
