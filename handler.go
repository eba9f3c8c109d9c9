package logroute

import (
	"context"
	"log/slog"

	"github.com/Kargones/logroute/internal/event"
	"github.com/Kargones/logroute/internal/level"
)

// slogHandler направляет записи log/slog в логгер name.
type slogHandler struct {
	h      *Handle
	name   string
	attrs  []slog.Attr
	groups []string
}

// Handler возвращает slog.Handler, маршрутизирующий записи как события логгера name.
//
//	slog.SetDefault(slog.New(h.Handler("app")))
func (h *Handle) Handler(name string) slog.Handler {
	return &slogHandler{h: h, name: name}
}

func (s *slogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return s.h.router.Enabled(s.name, level.FromSlog(l))
}

func (s *slogHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, len(s.attrs)+r.NumAttrs())
	attrs = append(attrs, s.attrs...)
	if r.NumAttrs() > 0 {
		own := make([]slog.Attr, 0, r.NumAttrs())
		r.Attrs(func(a slog.Attr) bool {
			own = append(own, a)
			return true
		})
		attrs = append(attrs, s.nest(own)...)
	}

	e := event.New(ctx, s.name, level.FromSlog(r.Level), r.Message, attrs...)
	if !r.Time.IsZero() {
		e.Time = r.Time
	}
	s.h.router.Dispatch(e)
	return nil
}

func (s *slogHandler) WithAttrs(as []slog.Attr) slog.Handler {
	if len(as) == 0 {
		return s
	}
	c := *s
	c.attrs = append(append([]slog.Attr(nil), s.attrs...), s.nest(as)...)
	return &c
}

func (s *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := *s
	c.groups = append(append([]string(nil), s.groups...), name)
	return &c
}

// nest вкладывает атрибуты в открытые группы, от внутренней к внешней.
func (s *slogHandler) nest(as []slog.Attr) []slog.Attr {
	if len(s.groups) == 0 {
		return as
	}
	args := make([]any, len(as))
	for i, a := range as {
		args[i] = a
	}
	g := slog.Group(s.groups[len(s.groups)-1], args...)
	for i := len(s.groups) - 2; i >= 0; i-- {
		g = slog.Group(s.groups[i], g)
	}
	return []slog.Attr{g}
}
