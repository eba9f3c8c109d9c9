// Package loggingtest предоставляет тестовые утилиты для пакета logging.
package loggingtest

import (
	"fmt"
	"sync"

	"github.com/Kargones/logroute/internal/pkg/logging"
)

// Compile-time проверка реализации интерфейса
var _ logging.Logger = (*Recorder)(nil)

// Entry — одна записанная диагностическая запись.
type Entry struct {
	Level string
	Msg   string
	Args  []any
}

// Arg возвращает значение аргумента по ключу из key-value пар.
func (e Entry) Arg(key string) (any, bool) {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1], true
		}
	}
	return nil, false
}

// Recorder — потокобезопасная реализация logging.Logger, сохраняющая записи в памяти.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	with    []any
}

// NewRecorder создаёт пустой Recorder.
func NewRecorder() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (r *Recorder) record(lvl, msg string, args []any) {
	all := make([]any, 0, len(r.with)+len(args))
	all = append(all, r.with...)
	all = append(all, args...)
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, Entry{Level: lvl, Msg: msg, Args: all})
}

// Debug записывает сообщение уровня DEBUG.
func (r *Recorder) Debug(msg string, args ...any) { r.record("debug", msg, args) }

// Info записывает сообщение уровня INFO.
func (r *Recorder) Info(msg string, args ...any) { r.record("info", msg, args) }

// Warn записывает сообщение уровня WARN.
func (r *Recorder) Warn(msg string, args ...any) { r.record("warn", msg, args) }

// Error записывает сообщение уровня ERROR.
func (r *Recorder) Error(msg string, args ...any) { r.record("error", msg, args) }

// With возвращает Recorder с общим хранилищем записей и добавленными атрибутами.
func (r *Recorder) With(args ...any) logging.Logger {
	with := make([]any, 0, len(r.with)+len(args))
	with = append(with, r.with...)
	with = append(with, args...)
	return &Recorder{mu: r.mu, entries: r.entries, with: with}
}

// Entries возвращает копию всех записей.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(*r.entries))
	copy(out, *r.entries)
	return out
}

// Count возвращает число записей указанного уровня.
func (r *Recorder) Count(lvl string) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == lvl {
			n++
		}
	}
	return n
}

// String возвращает все записи в виде текста для сообщений об ошибках в тестах.
func (r *Recorder) String() string {
	var s string
	for _, e := range r.Entries() {
		s += fmt.Sprintf("%s %s %v\n", e.Level, e.Msg, e.Args)
	}
	return s
}
