package config

import (
	"context"
	"crypto/sha256"
	"os"
	"sync"
	"time"

	"github.com/Kargones/logroute/internal/pkg/logging"
)

// MinRefreshRate ограничивает частоту опроса файла снизу.
const MinRefreshRate = 100 * time.Millisecond

// ApplyFunc применяет новый документ. Ошибка означает, что действующая
// конфигурация осталась прежней.
type ApplyFunc func(doc *Document) error

// Watcher опрашивает файл конфигурации с периодом refresh_rate и при изменении
// содержимого перечитывает документ и передаёт его в ApplyFunc.
// Переменные окружения Watcher не читает: это решает ApplyFunc.
//
// Ошибки чтения, разбора и применения не останавливают Watcher: они уходят
// в диагностику, а движок продолжает работать со старой конфигурацией.
// Применённый документ без refresh_rate останавливает опрос.
type Watcher struct {
	path   string
	apply  ApplyFunc
	logger logging.Logger

	mu       sync.Mutex
	interval time.Duration
	digest   [sha256.Size]byte
	stopped  bool
}

// NewWatcher создаёт Watcher. initial — содержимое файла, из которого
// построена действующая конфигурация; оно не применяется повторно.
func NewWatcher(path string, interval time.Duration, initial []byte, apply ApplyFunc, logger logging.Logger) *Watcher {
	if interval < MinRefreshRate {
		interval = MinRefreshRate
	}
	return &Watcher{
		path:     path,
		apply:    apply,
		logger:   logger.With("config", path),
		interval: interval,
		digest:   sha256.Sum256(initial),
	}
}

// Interval возвращает текущий период опроса.
func (w *Watcher) Interval() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.interval
}

// Stopped сообщает, что применён документ без refresh_rate и опрос завершён.
func (w *Watcher) Stopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// Run опрашивает файл до отмены ctx или до применения документа без refresh_rate.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			before := w.Interval()
			w.Check()
			if w.Stopped() {
				return
			}
			if after := w.Interval(); after != before {
				ticker.Reset(after)
			}
		}
	}
}

// Check выполняет один опрос. Возвращает true, если новый документ применён.
func (w *Watcher) Check() bool {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("не удалось прочитать конфигурацию, используется прежняя", "error", err.Error())
		return false
	}

	digest := sha256.Sum256(data)
	w.mu.Lock()
	unchanged := digest == w.digest
	// Запоминаем содержимое и при ошибке: одна и та же ошибка не повторяется на каждом тике
	w.digest = digest
	w.mu.Unlock()
	if unchanged {
		return false
	}

	doc, err := Parse(data)
	if err == nil {
		err = w.apply(doc)
	}
	if err != nil {
		w.logger.Error("конфигурация не перезагружена, используется прежняя", "error", err.Error())
		return false
	}

	if doc.RefreshRate <= 0 {
		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()
		w.logger.Info("конфигурация перезагружена, refresh_rate не задан: отслеживание файла остановлено")
		return true
	}
	w.mu.Lock()
	w.interval = max(doc.RefreshRate, MinRefreshRate)
	w.mu.Unlock()
	w.logger.Info("конфигурация перезагружена")
	return true
}
