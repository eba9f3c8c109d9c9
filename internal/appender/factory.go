package appender

import (
	"fmt"

	"github.com/Kargones/logroute/internal/sink"
)

// NewSink создаёт приёмник по виду аппендера.
func NewSink(kind Kind, p Params) (sink.Sink, error) {
	charset, err := sink.LookupCharset(p.Charset)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindConsole:
		return sink.NewConsole(p.Target, charset)
	case KindFile:
		return sink.NewFile(p.Path, p.appendMode(), charset)
	case KindRollingFile:
		return sink.NewRolling(p.Path, sink.RollingOptions{
			MaxSize:    p.MaxSize,
			MaxBackups: p.MaxBackups,
			MaxAge:     p.MaxAge,
			Compress:   p.Compress,
		}, charset)
	case KindMSSQL:
		return sink.NewMSSQL(p.DSN, p.Table, p.Timeout)
	case KindSpan:
		return sink.NewSpan(), nil
	default:
		return nil, fmt.Errorf("вид %q не поддерживается", kind)
	}
}
