// Package checkhandler реализует команду check: загружает документ
// конфигурации, строит реестр аппендеров и дерево логгеров так же, как
// при инициализации движка, и выводит получившуюся маршрутизацию.
// Приёмники открываются лениво, поэтому проверка не создаёт файлов
// и не подключается к базе.
package checkhandler

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Kargones/logroute/internal/appender"
	"github.com/Kargones/logroute/internal/command"
	"github.com/Kargones/logroute/internal/command/handlers/shared"
	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/pkg/output"
	"github.com/Kargones/logroute/internal/pkg/urlutil"
	"github.com/Kargones/logroute/internal/router"
	"github.com/Kargones/logroute/internal/tree"
)

// rootName — имя корневого логгера в выводе.
const rootName = "root"

// RegisterCmd регистрирует команду check в реестре.
func RegisterCmd() {
	command.Register(&Handler{})
}

// Data — разрешённая конфигурация маршрутизации.
type Data struct {
	// Path — путь к проверенному документу.
	Path string `json:"path"`
	// RefreshRate — период перезагрузки; пусто, если перезагрузка отключена.
	RefreshRate string `json:"refresh_rate,omitempty"`
	// Appenders — аппендеры в порядке имён.
	Appenders []AppenderInfo `json:"appenders"`
	// Loggers — корневой логгер и именованные логгеры в порядке имён.
	Loggers []LoggerInfo `json:"loggers"`
}

// AppenderInfo описывает аппендер.
type AppenderInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	// Target — куда пишет приёмник; пароль DSN замаскирован.
	Target string `json:"target"`
	// Threshold — порог фильтра аппендера, если задан.
	Threshold string `json:"threshold,omitempty"`
}

// LoggerInfo описывает узел дерева логгеров.
type LoggerInfo struct {
	Name string `json:"name"`
	// Level — действующий порог; LevelExplicit=false означает, что он унаследован.
	Level         string `json:"level"`
	LevelExplicit bool   `json:"level_explicit"`
	Additive      bool   `json:"additive"`
	// Appenders — собственные аппендеры узла.
	Appenders []string `json:"appenders"`
	// Dispatch — итоговый набор аппендеров с учётом additive.
	Dispatch []string `json:"dispatch"`
}

// WriteText выводит маршрутизацию в человекочитаемом виде.
func (d *Data) WriteText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Документ: %s\n", d.Path)
	if d.RefreshRate != "" {
		fmt.Fprintf(&sb, "Перезагрузка: каждые %s\n", d.RefreshRate)
	}

	sb.WriteString("\nАппендеры:\n")
	for _, a := range d.Appenders {
		fmt.Fprintf(&sb, "  %-16s %-12s %s", a.Name, a.Kind, a.Target)
		if a.Threshold != "" {
			fmt.Fprintf(&sb, " (порог %s)", a.Threshold)
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("\nЛоггеры:\n")
	for _, l := range d.Loggers {
		lvl := l.Level
		if !l.LevelExplicit {
			lvl += "*"
		}
		additive := ""
		if !l.Additive {
			additive = " [additive=false]"
		}
		fmt.Fprintf(&sb, "  %-24s %-6s → %s%s\n", l.Name, lvl, strings.Join(l.Dispatch, ", "), additive)
	}
	sb.WriteString("\n* — уровень унаследован от предка\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// Handler обрабатывает команду check.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActCheck
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Проверка документа конфигурации и вывод дерева логгеров"
}

// Execute загружает и проверяет документ, выводит маршрутизацию.
// Ошибка конфигурации выводится как результат со статусом error и возвращается.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	doc, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return shared.WriteError(ctx, cfg, constants.ActCheck, start, err)
	}
	reg, t, err := router.Compile(doc)
	if err != nil {
		return shared.WriteError(ctx, cfg, constants.ActCheck, start, err)
	}
	defer reg.Close() //nolint:errcheck // приёмники не открывались

	data, summary := describe(cfg.ConfigPath, doc, reg, t)
	if cfg.Logger != nil {
		cfg.Logger.Debug("документ проверен",
			"path", cfg.ConfigPath,
			"appenders", len(data.Appenders),
			"warnings", summary.WarningsCount,
		)
	}
	return shared.WriteResult(ctx, cfg, constants.ActCheck, start, data, summary)
}

// describe строит Data и сводку с предупреждениями о неиспользуемых частях документа.
func describe(path string, doc *config.Document, reg *appender.Registry, t *tree.Tree) (*Data, *output.SummaryInfo) {
	data := &Data{Path: path}
	if doc.RefreshRate > 0 {
		data.RefreshRate = doc.RefreshRate.String()
	}

	for _, name := range reg.Names() {
		ac := doc.Appenders[name]
		info := AppenderInfo{Name: name, Kind: ac.Kind, Target: target(ac)}
		if th := ac.Threshold(); th != nil {
			info.Threshold = th.String()
		}
		data.Appenders = append(data.Appenders, info)
	}

	used := map[string]bool{}
	summary := output.NewSummaryInfo()
	nodes := append([]*tree.Node{t.Root()}, t.Loggers()...)
	for _, n := range nodes {
		name := n.Name()
		if n.IsRoot() {
			name = rootName
		}
		info := LoggerInfo{
			Name:          name,
			Level:         n.Level().String(),
			LevelExplicit: n.LevelExplicit(),
			Additive:      n.Additive(),
			Appenders:     appenderNames(n.Appenders()),
			Dispatch:      appenderNames(n.Dispatch()),
		}
		for _, a := range info.Appenders {
			used[a] = true
		}
		if len(info.Dispatch) == 0 {
			summary.AddWarning(fmt.Sprintf("логгер %s не доставляет события ни в один аппендер", name))
		}
		data.Loggers = append(data.Loggers, info)
	}

	for _, a := range data.Appenders {
		if !used[a.Name] {
			summary.AddWarning(fmt.Sprintf("аппендер %s не используется ни одним логгером", a.Name))
		}
	}

	summary.AddMetric("Аппендеров", strconv.Itoa(len(data.Appenders)), "шт")
	summary.AddMetric("Логгеров", strconv.Itoa(len(data.Loggers)), "шт")
	return data, summary
}

// target описывает назначение приёмника без секретов.
func target(ac config.AppenderConfig) string {
	switch appender.Kind(ac.Kind) {
	case appender.KindConsole:
		if ac.Target == "" {
			return "stdout"
		}
		return ac.Target
	case appender.KindFile, appender.KindRollingFile:
		return ac.Path
	case appender.KindMSSQL:
		return urlutil.MaskDSN(ac.DSN) + " → " + ac.Table
	case appender.KindSpan:
		return "активный span"
	default:
		return ""
	}
}

func appenderNames(as []*appender.Appender) []string {
	names := make([]string, 0, len(as))
	for _, a := range as {
		names = append(names, a.Name())
	}
	return names
}
