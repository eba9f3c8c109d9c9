package router

import (
	"sort"

	"github.com/Kargones/logroute/internal/appender"
	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/tree"
)

// Compile строит реестр аппендеров и дерево логгеров из документа.
// При любой ошибке уже созданные приёмники закрываются и возвращается ошибка:
// частично построенная конфигурация наружу не попадает.
func Compile(doc *config.Document, opts ...appender.Option) (*appender.Registry, *tree.Tree, error) {
	reg := appender.NewRegistry(opts...)

	// Порядок регистрации детерминирован, чтобы ошибки не зависели от обхода map
	names := make([]string, 0, len(doc.Appenders))
	for name := range doc.Appenders {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ac := doc.Appenders[name]
		if _, err := reg.Register(name, appender.Kind(ac.Kind), paramsOf(ac), ac.Encoder.Pattern); err != nil {
			_ = reg.Close() //nolint:errcheck // приёмники ещё не открывались
			return nil, nil, err
		}
	}

	loggers := make([]tree.LoggerSpec, 0, len(doc.Loggers))
	for name, lc := range doc.Loggers {
		loggers = append(loggers, tree.LoggerSpec{
			Name:      name,
			Level:     lc.Level,
			Appenders: lc.Appenders,
			Additive:  lc.Additive,
		})
	}

	t, err := tree.Build(tree.RootSpec{Level: doc.Root.Level, Appenders: doc.Root.Appenders}, loggers, reg)
	if err != nil {
		_ = reg.Close() //nolint:errcheck // приёмники ещё не открывались
		return nil, nil, err
	}
	return reg, t, nil
}

func paramsOf(ac config.AppenderConfig) appender.Params {
	return appender.Params{
		Target:     ac.Target,
		Path:       ac.Path,
		Append:     ac.Append,
		Charset:    ac.Charset,
		MaxSize:    ac.MaxSize,
		MaxBackups: ac.MaxBackups,
		MaxAge:     ac.MaxAge,
		Compress:   ac.Compress,
		DSN:        ac.DSN,
		Table:      ac.Table,
		Timeout:    ac.Timeout,
		Encoder:    ac.Encoder.Kind,
		Threshold:  ac.Threshold(),
	}
}
