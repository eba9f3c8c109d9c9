package pattern

import (
	"fmt"
	"strings"
	"time"
)

// dateFragment — либо литерал, либо фрагмент Go layout.
// Литералы хранятся отдельно, чтобы цифры в тексте формата не принимались
// за элементы reference time.
type dateFragment struct {
	literal string
	layout  string
}

// strftimeLayouts сопоставляет директивы strftime фрагментам Go layout.
var strftimeLayouts = map[string]string{
	"Y":   "2006",
	"y":   "06",
	"m":   "01",
	"d":   "02",
	"e":   "_2",
	"H":   "15",
	"I":   "03",
	"M":   "04",
	"S":   "05",
	"p":   "PM",
	"b":   "Jan",
	"h":   "Jan",
	"B":   "January",
	"a":   "Mon",
	"A":   "Monday",
	"z":   "-0700",
	":z":  "-07:00",
	"Z":   "MST",
	"F":   "2006-01-02",
	"T":   "15:04:05",
	"R":   "15:04",
	".f":  ".999999999",
	".3f": ".000",
	".6f": ".000000",
	".9f": ".000000000",
}

// compileDate переводит строку формата strftime в последовательность фрагментов.
func compileDate(format string) ([]dateFragment, error) {
	var frags []dateFragment
	var lit strings.Builder

	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			lit.WriteByte(format[i])
			continue
		}
		if i+1 >= len(format) {
			return nil, fmt.Errorf("формат даты %q: '%%' в конце строки", format)
		}
		if format[i+1] == '%' {
			lit.WriteByte('%')
			i++
			continue
		}

		directive, ok := matchDirective(format[i+1:])
		if !ok {
			return nil, fmt.Errorf("формат даты %q: неподдерживаемая директива в позиции %d", format, i)
		}
		if lit.Len() > 0 {
			frags = append(frags, dateFragment{literal: lit.String()})
			lit.Reset()
		}
		frags = append(frags, dateFragment{layout: strftimeLayouts[directive]})
		i += len(directive)
	}
	if lit.Len() > 0 {
		frags = append(frags, dateFragment{literal: lit.String()})
	}
	return frags, nil
}

// matchDirective выбирает самую длинную известную директиву в начале s.
func matchDirective(s string) (string, bool) {
	for _, n := range []int{3, 2, 1} {
		if len(s) < n {
			continue
		}
		if _, ok := strftimeLayouts[s[:n]]; ok {
			return s[:n], true
		}
	}
	return "", false
}

func formatDate(t time.Time, frags []dateFragment) string {
	if len(frags) == 1 && frags[0].layout != "" {
		return t.Format(frags[0].layout)
	}
	var sb strings.Builder
	for _, f := range frags {
		if f.layout != "" {
			sb.WriteString(t.Format(f.layout))
			continue
		}
		sb.WriteString(f.literal)
	}
	return sb.String()
}
