package appender

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pattern"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/sink"
)

// SinkFactory создаёт приёмник аппендера name.
// Заменяется в тестах через WithSinkFactory.
type SinkFactory func(name string, kind Kind, p Params) (sink.Sink, error)

// Registry отображает имя аппендера в Appender.
// Регистрация не потокобезопасна: реестр заполняется одним потоком
// до публикации, после чего используется только для чтения.
type Registry struct {
	appenders map[string]*Appender
	order     []string
	newSink   SinkFactory
}

// Option настраивает Registry.
type Option func(*Registry)

// WithSinkFactory подменяет создание приёмников.
func WithSinkFactory(f SinkFactory) Option {
	return func(r *Registry) {
		r.newSink = f
	}
}

// NewRegistry создаёт пустой реестр.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		appenders: make(map[string]*Appender),
		newSink:   func(_ string, kind Kind, p Params) (sink.Sink, error) { return NewSink(kind, p) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register добавляет аппендер.
//
// Ошибки:
//   - APPENDER.DUPLICATE — имя уже зарегистрировано;
//   - APPENDER.UNKNOWN_KIND — вид не поддерживается;
//   - CONFIG.VALIDATION_FAILED — неверные параметры вида или шаблон.
//
// Для файловых видов путь проверяется, но файл не открывается.
func (r *Registry) Register(name string, kind Kind, params Params, patternText string) (*Appender, error) {
	if name == "" {
		return nil, apperrors.Newf(apperrors.ErrConfigValidate, "имя аппендера не может быть пустым")
	}
	if _, exists := r.appenders[name]; exists {
		return nil, apperrors.Newf(apperrors.ErrDuplicateAppender, "аппендер %q уже зарегистрирован", name)
	}
	if !kind.Supported() {
		return nil, apperrors.Newf(apperrors.ErrUnknownKind,
			"аппендер %q: неизвестный вид %q (допустимо: %s)", name, kind, kindNames())
	}

	enc, err := pattern.New(params.Encoder, patternText)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			fmt.Sprintf("аппендер %q: encoder", name), err)
	}

	s, err := r.newSink(name, kind, params)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			fmt.Sprintf("аппендер %q (%s)", name, kind), err)
	}

	threshold := level.Trace
	if params.Threshold != nil {
		threshold = *params.Threshold
	}

	a := &Appender{
		name:      name,
		kind:      kind,
		encoder:   enc,
		sink:      s,
		threshold: threshold,
	}
	r.appenders[name] = a
	r.order = append(r.order, name)
	return a, nil
}

// Resolve возвращает аппендер по имени или APPENDER.UNDEFINED.
func (r *Registry) Resolve(name string) (*Appender, error) {
	a, ok := r.appenders[name]
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrUndefinedAppender, "аппендер %q не определён", name)
	}
	return a, nil
}

// Names возвращает отсортированные имена зарегистрированных аппендеров.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Len возвращает число аппендеров.
func (r *Registry) Len() int {
	return len(r.appenders)
}

// Close закрывает все приёмники в порядке регистрации и собирает ошибки.
func (r *Registry) Close() error {
	var errs []error
	for _, name := range r.order {
		if err := r.appenders[name].sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("аппендер %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
