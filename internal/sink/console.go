package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Kargones/logroute/internal/event"
)

// Цели консольного приёмника.
const (
	TargetStdout = "stdout"
	TargetStderr = "stderr"
)

// Console пишет в stdout или stderr процесса.
type Console struct {
	mu      sync.Mutex
	target  string
	charset *Charset
	out     func() io.Writer
	closed  bool
}

// NewConsole создаёт консольный приёмник. Пустой target означает stdout.
func NewConsole(target string, charset *Charset) (*Console, error) {
	c := &Console{target: target, charset: charset}
	switch target {
	case "", TargetStdout:
		c.target = TargetStdout
		// os.Stdout читается при каждой записи: хост может подменить его после инициализации
		c.out = func() io.Writer { return os.Stdout }
	case TargetStderr:
		c.out = func() io.Writer { return os.Stderr }
	default:
		return nil, fmt.Errorf("неизвестная цель консоли %q (допустимо: %s, %s)", target, TargetStdout, TargetStderr)
	}
	return c, nil
}

// Target возвращает имя потока.
func (c *Console) Target() string {
	return c.target
}

// Write реализует Sink.
func (c *Console) Write(_ *event.Event, line []byte) error {
	data, err := c.charset.Encode(line)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	_, err = c.out().Write(data)
	return err
}

// Close помечает приёмник закрытым. Сами stdout/stderr не закрываются.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
