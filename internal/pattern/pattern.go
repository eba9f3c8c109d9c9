// Package pattern преобразует событие лога в текст по шаблону аппендера.
//
// Синтаксис шаблона:
//
//	{d}            время события, RFC 3339 с миллисекундами
//	{d(%Y-%m-%d)}  время события в формате strftime
//	{l}            уровень в верхнем регистре (INFO)
//	{t}            тег события, при его отсутствии — имя логгера
//	{m}            сообщение
//	{n}            перевод строки
//	{M}            имя логгера
//	{X(key)}       значение атрибута key (trace_id/span_id берутся из контекста)
//	{A}            все атрибуты в виде key=value через пробел
//	{{ и }}        литеральные фигурные скобки
//
// Минимальная ширина с выравниванием задаётся после двоеточия: {l:<5}, {t:>12}.
// Полные имена date, level, target, message, module, mdc тоже допустимы.
//
// Шаблон компилируется один раз при регистрации аппендера; ошибки шаблона
// обнаруживаются при инициализации, а не при первой записи.
package pattern

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Kargones/logroute/internal/event"
)

// DefaultPattern используется, если у аппендера не задан encoder.pattern.
const DefaultPattern = "{d} {l} {t} - {m}{n}"

// defaultDateLayout — формат {d} без аргумента.
const defaultDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Encoder превращает событие в байты для записи в приёмник.
// Реализации должны быть безопасны для конкурентного использования.
type Encoder interface {
	Encode(e *event.Event) ([]byte, error)
}

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokDate
	tokLevel
	tokTag
	tokMessage
	tokNewline
	tokLogger
	tokAttr
	tokAllAttrs
)

type align int

const (
	alignLeft align = iota
	alignRight
)

type part struct {
	kind  tokenKind
	text  string // литерал или ключ атрибута
	date  []dateFragment
	width int
	align align
}

// Pattern — скомпилированный шаблон. Неизменяем после Compile.
type Pattern struct {
	raw   string
	parts []part
}

// Compile разбирает шаблон. Пустой шаблон заменяется на DefaultPattern.
func Compile(raw string) (*Pattern, error) {
	if raw == "" {
		raw = DefaultPattern
	}
	p := &Pattern{raw: raw}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			p.parts = append(p.parts, part{kind: tokLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); {
		c := raw[i]
		switch {
		case c == '{' && i+1 < len(raw) && raw[i+1] == '{':
			lit.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(raw) && raw[i+1] == '}':
			lit.WriteByte('}')
			i += 2
		case c == '}':
			return nil, fmt.Errorf("шаблон %q: непарная '}' в позиции %d", raw, i)
		case c == '{':
			flush()
			tok, next, err := parseToken(raw, i)
			if err != nil {
				return nil, err
			}
			p.parts = append(p.parts, tok)
			i = next
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return p, nil
}

// parseToken разбирает токен, начинающийся с '{' в позиции start.
// Возвращает позицию сразу после закрывающей '}'.
func parseToken(raw string, start int) (part, int, error) {
	i := start + 1
	nameStart := i
	for i < len(raw) && isNameByte(raw[i]) {
		i++
	}
	name := raw[nameStart:i]
	if name == "" {
		return part{}, 0, fmt.Errorf("шаблон %q: пустой токен в позиции %d", raw, start)
	}

	var arg string
	hasArg := false
	if i < len(raw) && raw[i] == '(' {
		end := strings.IndexByte(raw[i:], ')')
		if end < 0 {
			return part{}, 0, fmt.Errorf("шаблон %q: незакрытая '(' в токене {%s", raw, name)
		}
		arg = raw[i+1 : i+end]
		hasArg = true
		i += end + 1
	}

	tok := part{}
	if i < len(raw) && raw[i] == ':' {
		i++
		specStart := i
		for i < len(raw) && raw[i] != '}' {
			i++
		}
		if err := parseFormatSpec(raw[specStart:i], &tok); err != nil {
			return part{}, 0, fmt.Errorf("шаблон %q: токен {%s}: %w", raw, name, err)
		}
	}
	if i >= len(raw) || raw[i] != '}' {
		return part{}, 0, fmt.Errorf("шаблон %q: незакрытый токен {%s", raw, name)
	}
	i++

	switch name {
	case "d", "date":
		tok.kind = tokDate
		tok.date = []dateFragment{{layout: defaultDateLayout}}
		if hasArg {
			frags, err := compileDate(arg)
			if err != nil {
				return part{}, 0, fmt.Errorf("шаблон %q: %w", raw, err)
			}
			tok.date = frags
		}
	case "l", "level":
		tok.kind = tokLevel
	case "t", "target":
		tok.kind = tokTag
	case "m", "message":
		tok.kind = tokMessage
	case "n":
		tok.kind = tokNewline
	case "M", "module":
		tok.kind = tokLogger
	case "X", "mdc":
		if !hasArg || arg == "" {
			return part{}, 0, fmt.Errorf("шаблон %q: токен {%s} требует ключ: {%s(key)}", raw, name, name)
		}
		tok.kind = tokAttr
		tok.text = arg
	case "A":
		tok.kind = tokAllAttrs
	default:
		return part{}, 0, fmt.Errorf("шаблон %q: неизвестный токен {%s}", raw, name)
	}
	if hasArg && tok.kind != tokDate && tok.kind != tokAttr {
		return part{}, 0, fmt.Errorf("шаблон %q: токен {%s} не принимает аргумент", raw, name)
	}
	return tok, i, nil
}

func isNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// parseFormatSpec разбирает "<5", ">5" или "5".
func parseFormatSpec(spec string, tok *part) error {
	if spec == "" {
		return nil
	}
	switch spec[0] {
	case '<':
		tok.align = alignLeft
		spec = spec[1:]
	case '>':
		tok.align = alignRight
		spec = spec[1:]
	}
	width := 0
	for _, r := range spec {
		if r < '0' || r > '9' {
			return fmt.Errorf("неверная ширина %q", spec)
		}
		width = width*10 + int(r-'0')
	}
	tok.width = width
	return nil
}

// String возвращает исходный шаблон.
func (p *Pattern) String() string {
	return p.raw
}

// Encode реализует Encoder.
func (p *Pattern) Encode(e *event.Event) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(e.Message) + 64)
	for _, pt := range p.parts {
		switch pt.kind {
		case tokLiteral:
			buf.WriteString(pt.text)
		case tokNewline:
			buf.WriteByte('\n')
		default:
			writePadded(&buf, p.value(pt, e), pt)
		}
	}
	return buf.Bytes(), nil
}

func (p *Pattern) value(pt part, e *event.Event) string {
	switch pt.kind {
	case tokDate:
		return formatDate(e.Time, pt.date)
	case tokLevel:
		return e.Level.Upper()
	case tokTag:
		return e.TagOrLogger()
	case tokMessage:
		return e.Message
	case tokLogger:
		return e.Logger
	case tokAttr:
		v, _ := e.Lookup(pt.text)
		return v
	case tokAllAttrs:
		return formatAttrs(e.Attrs)
	default:
		return ""
	}
}

func writePadded(buf *bytes.Buffer, s string, pt part) {
	pad := pt.width - utf8.RuneCountInString(s)
	if pad <= 0 {
		buf.WriteString(s)
		return
	}
	if pt.align == alignRight {
		buf.WriteString(strings.Repeat(" ", pad))
		buf.WriteString(s)
		return
	}
	buf.WriteString(s)
	buf.WriteString(strings.Repeat(" ", pad))
}

// formatAttrs выводит атрибуты как key=value; группы разворачиваются в group.key=value.
func formatAttrs(attrs []slog.Attr) string {
	var sb strings.Builder
	var walk func(prefix string, as []slog.Attr)
	walk = func(prefix string, as []slog.Attr) {
		for _, a := range as {
			v := a.Value.Resolve()
			key := a.Key
			if prefix != "" {
				key = prefix + "." + key
			}
			if v.Kind() == slog.KindGroup {
				walk(key, v.Group())
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(key)
			sb.WriteByte('=')
			if v.Kind() == slog.KindTime {
				sb.WriteString(v.Time().Format(time.RFC3339Nano))
				continue
			}
			sb.WriteString(v.String())
		}
	}
	walk("", attrs)
	return sb.String()
}
