// Package sink содержит приёмники, в которые аппендеры записывают готовые строки.
//
// Каждый приёмник сериализует конкурентные записи собственным мьютексом:
// одна отрисованная строка записывается одним вызовом Write базового writer,
// поэтому байты двух событий никогда не перемешиваются внутри строки.
//
// Файловые приёмники и mssql открывают ресурс лениво, при первой записи.
package sink

import (
	"errors"

	"github.com/Kargones/logroute/internal/event"
)

// ErrClosed возвращается при записи в закрытый приёмник.
var ErrClosed = errors.New("sink: приёмник закрыт")

// Sink — разделяемый получатель отрисованных событий.
type Sink interface {
	// Write записывает событие. line — результат кодировщика аппендера;
	// приёмники, которым нужны структурированные поля (mssql, span), берут их из e.
	Write(e *event.Event, line []byte) error

	// Close освобождает ресурсы. Повторный вызов безопасен.
	Close() error
}
