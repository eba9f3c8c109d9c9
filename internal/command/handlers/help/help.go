// Package help реализует команду help для вывода списка доступных команд
// и переменных окружения CLI.
package help

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Kargones/logroute/internal/command"
	"github.com/Kargones/logroute/internal/command/handlers/shared"
	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/pkg/output"
)

// RegisterCmd регистрирует команду help в реестре.
func RegisterCmd() {
	command.Register(&Handler{})
}

// Data содержит информацию обо всех доступных командах.
type Data struct {
	Commands []CommandInfo `json:"commands"`
	Options  []OptionInfo  `json:"options"`
}

// CommandInfo описывает одну команду.
type CommandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OptionInfo описывает переменную окружения CLI.
type OptionInfo struct {
	Env         string `json:"env"`
	Description string `json:"description"`
}

// options — переменные окружения, управляющие CLI.
var options = []OptionInfo{
	{Env: constants.EnvConfig, Description: "Путь к документу конфигурации (по умолчанию " + constants.DefaultConfigPath + ")"},
	{Env: constants.EnvOutputFormat + "=json", Description: "Машиночитаемый вывод"},
	{Env: constants.EnvDryRun + "=true", Description: "Dry-run: план доставки без записи в приёмники"},
	{Env: "LOGROUTE_EMIT_LOGGER", Description: "Имя логгера для emit (пусто — корневой)"},
	{Env: "LOGROUTE_EMIT_LEVEL", Description: "Уровень события для emit (trace..fatal)"},
	{Env: "LOGROUTE_EMIT_MESSAGE", Description: "Текст события для emit"},
	{Env: "LOGROUTE_ROOT_LEVEL", Description: "Переопределение root.level документа"},
	{Env: "LOGROUTE_DIAG_LEVEL", Description: "Уровень диагностики CLI"},
}

// Handler обрабатывает команду help.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод списка доступных команд"
}

// Execute выполняет команду help: собирает список команд и выводит результат.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	helpData := buildData()

	// Текстовый формат — без metadata (trace_id, duration_ms), как у version.
	if !output.IsJSON(shared.Format(cfg)) {
		return helpData.writeText(shared.Stdout)
	}
	return shared.WriteResult(ctx, cfg, constants.ActHelp, start, helpData, nil)
}

// buildData собирает информацию обо всех зарегистрированных командах.
func buildData() *Data {
	data := &Data{Options: options}
	for name, handler := range command.All() {
		data.Commands = append(data.Commands, CommandInfo{
			Name:        name,
			Description: handler.Description(),
		})
	}
	sort.Slice(data.Commands, func(i, j int) bool {
		return data.Commands[i].Name < data.Commands[j].Name
	})
	return data
}

// writeText выводит информацию о командах в человекочитаемом формате.
func (d *Data) writeText(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("logroute — маршрутизация логов по декларативной конфигурации\n")
	sb.WriteString("\nИспользование: logroute <команда>\n")
	sb.WriteString("\nКоманды:\n")

	maxLen := 0
	for _, cmd := range d.Commands {
		maxLen = max(maxLen, len(cmd.Name))
	}
	for _, cmd := range d.Commands {
		fmt.Fprintf(&sb, "  %-*s  %s\n", maxLen, cmd.Name, cmd.Description)
	}

	sb.WriteString("\nОпции:\n")
	maxLen = 0
	for _, opt := range d.Options {
		maxLen = max(maxLen, len(opt.Env))
	}
	for _, opt := range d.Options {
		fmt.Fprintf(&sb, "  %-*s  %s\n", maxLen, opt.Env, opt.Description)
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}
