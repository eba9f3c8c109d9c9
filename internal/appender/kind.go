package appender

import "strings"

// Kind — вид приёмника аппендера.
type Kind string

// Поддерживаемые виды аппендеров.
const (
	KindConsole     Kind = "console"
	KindFile        Kind = "file"
	KindRollingFile Kind = "rolling_file"
	KindMSSQL       Kind = "mssql"
	KindSpan        Kind = "span"
)

// Kinds возвращает все поддерживаемые виды в порядке документации.
func Kinds() []Kind {
	return []Kind{KindConsole, KindFile, KindRollingFile, KindMSSQL, KindSpan}
}

// Supported сообщает, поддерживается ли вид.
func (k Kind) Supported() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

func kindNames() string {
	names := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
