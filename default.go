package logroute

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var defaultHandle atomic.Pointer[Handle]

// SetDefault делает h движком процесса по умолчанию и возвращает предыдущий.
// nil снимает движок по умолчанию.
func SetDefault(h *Handle) *Handle {
	return defaultHandle.Swap(h)
}

// Default возвращает движок по умолчанию или nil.
func Default() *Handle {
	return defaultHandle.Load()
}

// Log записывает событие через движок по умолчанию. Без движка вызов ничего не делает.
func Log(ctx context.Context, name string, lvl Level, msg string, attrs ...slog.Attr) {
	if h := Default(); h != nil {
		h.Log(ctx, name, lvl, msg, attrs...)
	}
}
