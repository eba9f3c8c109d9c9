package sink

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// charsets — поддерживаемые однобайтовые кодировки вывода.
var charsets = map[string]*charmap.Charmap{
	"windows-1251": charmap.Windows1251,
	"cp1251":       charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"koi8-r":       charmap.KOI8R,
	"cp866":        charmap.CodePage866,
	"ibm866":       charmap.CodePage866,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
}

// Charset перекодирует UTF-8 строки в целевую кодировку.
// Нулевое значение (nil) означает UTF-8 без преобразования.
type Charset struct {
	name string
	cm   *charmap.Charmap
}

// LookupCharset возвращает кодировку по имени. "" и "utf-8" дают nil.
func LookupCharset(name string) (*Charset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "utf-8" || key == "utf8" {
		return nil, nil
	}
	cm, ok := charsets[key]
	if !ok {
		return nil, fmt.Errorf("неподдерживаемая кодировка %q (допустимо: utf-8, %s)",
			name, strings.Join(CharsetNames(), ", "))
	}
	return &Charset{name: key, cm: cm}, nil
}

// CharsetNames возвращает отсортированный список имён поддерживаемых кодировок.
func CharsetNames() []string {
	names := make([]string, 0, len(charsets))
	for n := range charsets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Encode перекодирует строку. Непредставимые символы заменяются.
func (c *Charset) Encode(line []byte) ([]byte, error) {
	if c == nil {
		return line, nil
	}
	out, _, err := transform.Bytes(encoding.ReplaceUnsupported(c.cm.NewEncoder()), line)
	if err != nil {
		return nil, fmt.Errorf("перекодирование в %s: %w", c.name, err)
	}
	return out, nil
}

// Name возвращает имя кодировки.
func (c *Charset) Name() string {
	if c == nil {
		return "utf-8"
	}
	return c.name
}
