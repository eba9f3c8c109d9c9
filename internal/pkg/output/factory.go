package output

import "strings"

// FormatJSON и FormatText — поддерживаемые форматы вывода.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// IsJSON сообщает, запрошен ли JSON-вывод (без учёта регистра).
func IsJSON(format string) bool {
	return strings.EqualFold(format, FormatJSON)
}

// NewWriter создаёт Writer по указанному формату (case-insensitive).
// При неизвестном формате возвращает TextWriter.
func NewWriter(format string) Writer {
	if IsJSON(format) {
		return NewJSONWriter()
	}
	return NewTextWriter()
}
