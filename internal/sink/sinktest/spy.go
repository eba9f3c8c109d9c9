// Package sinktest предоставляет тестовые приёмники для пакетов appender и router.
package sinktest

import (
	"sync"

	"github.com/Kargones/logroute/internal/event"
	"github.com/Kargones/logroute/internal/sink"
)

// Compile-time проверка реализации интерфейса
var _ sink.Sink = (*Spy)(nil)

// Record — одна принятая запись.
type Record struct {
	Event *event.Event
	Line  string
}

// Spy запоминает все записи. WriteFunc позволяет имитировать ошибки записи.
type Spy struct {
	mu      sync.Mutex
	records []Record
	closes  int

	// WriteFunc — пользовательская реализация Write; вызывается до сохранения записи.
	// Если возвращает ошибку, запись не сохраняется.
	WriteFunc func(e *event.Event, line []byte) error
}

// NewSpy создаёт пустой Spy.
func NewSpy() *Spy {
	return &Spy{}
}

// NewFailing создаёт Spy, каждая запись в который завершается ошибкой err.
func NewFailing(err error) *Spy {
	return &Spy{WriteFunc: func(*event.Event, []byte) error { return err }}
}

// Write реализует sink.Sink.
func (s *Spy) Write(e *event.Event, line []byte) error {
	if s.WriteFunc != nil {
		if err := s.WriteFunc(e, line); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, Record{Event: e, Line: string(line)})
	return nil
}

// Close реализует sink.Sink.
func (s *Spy) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

// Records возвращает копию принятых записей.
func (s *Spy) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Lines возвращает принятые строки.
func (s *Spy) Lines() []string {
	recs := s.Records()
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = r.Line
	}
	return lines
}

// Count возвращает число принятых записей.
func (s *Spy) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Closes возвращает число вызовов Close.
func (s *Spy) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}
