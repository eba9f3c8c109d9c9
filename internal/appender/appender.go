// Package appender содержит реестр именованных аппендеров.
//
// Аппендер — это приёмник (sink) вместе с правилом форматирования и
// необязательным собственным порогом. Реестр строится один раз при
// инициализации или перезагрузке и после этого только читается.
package appender

import (
	"fmt"

	"github.com/Kargones/logroute/internal/event"
	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pattern"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/sink"
)

// Appender — неизменяемая связка приёмника и кодировщика.
type Appender struct {
	name      string
	kind      Kind
	encoder   pattern.Encoder
	sink      sink.Sink
	threshold level.Level
}

// Name возвращает имя аппендера.
func (a *Appender) Name() string { return a.name }

// Kind возвращает вид аппендера.
func (a *Appender) Kind() Kind { return a.kind }

// Sink возвращает приёмник аппендера.
func (a *Appender) Sink() sink.Sink { return a.sink }

// Threshold возвращает собственный порог аппендера; Trace, если фильтр не задан.
func (a *Appender) Threshold() level.Level { return a.threshold }

// Accepts сообщает, пропускает ли собственный порог аппендера событие уровня lvl.
func (a *Appender) Accepts(lvl level.Level) bool {
	return a.threshold.Enabled(lvl)
}

// Render отрисовывает событие кодировщиком аппендера, ничего не записывая.
func (a *Appender) Render(e *event.Event) ([]byte, error) {
	line, err := a.encoder.Encode(e)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrSinkWrite,
			fmt.Sprintf("аппендер %q: кодирование события", a.name), err)
	}
	return line, nil
}

// Append отрисовывает событие и записывает его в приёмник.
// Событие ниже порога аппендера пропускается без ошибки.
// Ошибки кодирования и записи оборачиваются в SINK.WRITE_FAILED.
func (a *Appender) Append(e *event.Event) error {
	if !a.Accepts(e.Level) {
		return nil
	}
	line, err := a.Render(e)
	if err != nil {
		return err
	}
	if err := a.sink.Write(e, line); err != nil {
		return apperrors.NewAppError(apperrors.ErrSinkWrite,
			fmt.Sprintf("аппендер %q: запись в %s", a.name, a.kind), err)
	}
	return nil
}
