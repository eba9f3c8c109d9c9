// Package emithandler реализует команду emit: инициализирует движок по
// документу конфигурации и отправляет одно событие, описанное переменными
// LOGROUTE_EMIT_*. В dry-run режиме выводит, в какие аппендеры попадёт
// событие, ничего не записывая.
package emithandler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Kargones/logroute"
	"github.com/Kargones/logroute/internal/command"
	"github.com/Kargones/logroute/internal/command/handlers/shared"
	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/pkg/dryrun"
	"github.com/Kargones/logroute/internal/pkg/output"
)

// shutdownTimeout ограничивает ожидание записи события и закрытия приёмников.
const shutdownTimeout = 10 * time.Second

// RegisterCmd регистрирует команду emit в реестре.
func RegisterCmd() {
	command.Register(&Handler{})
}

// Data — результат отправки события.
type Data struct {
	Logger  string `json:"logger"`
	Level   string `json:"level"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message"`
	// Node — узел дерева, разрешённый по имени логгера.
	Node string `json:"node"`
	// Appenders — аппендеры, в которые доставлено событие.
	Appenders []string `json:"appenders"`
	// Dropped — событие отсечено порогом логгера.
	Dropped bool `json:"dropped"`
}

// WriteText выводит результат в человекочитаемом виде.
func (d *Data) WriteText(w io.Writer) error {
	logger := d.Logger
	if logger == "" {
		logger = "root"
	}
	if d.Dropped {
		_, err := fmt.Fprintf(w, "Событие %s логгера %s отброшено порогом\n", d.Level, logger)
		return err
	}
	if len(d.Appenders) == 0 {
		_, err := fmt.Fprintf(w, "Событие %s логгера %s не принято ни одним аппендером\n", d.Level, logger)
		return err
	}
	_, err := fmt.Fprintf(w, "Событие %s логгера %s доставлено: %s\n", d.Level, logger, strings.Join(d.Appenders, ", "))
	return err
}

// Handler обрабатывает команду emit.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActEmit
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Отправка события через движок (LOGROUTE_EMIT_LOGGER, LOGROUTE_EMIT_LEVEL, LOGROUTE_EMIT_MESSAGE)"
}

// Execute отправляет событие и дожидается его записи во все приёмники.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	lvl, err := cfg.Emit.ParsedLevel()
	if err != nil {
		return shared.WriteError(ctx, cfg, constants.ActEmit, start,
			apperrors.NewAppError(apperrors.ErrConfigValidate, "LOGROUTE_EMIT_LEVEL", err))
	}
	if lvl == level.Off {
		return shared.WriteError(ctx, cfg, constants.ActEmit, start,
			apperrors.Newf(apperrors.ErrConfigValidate, "LOGROUTE_EMIT_LEVEL: off не является уровнем события"))
	}
	if cfg.Emit.Message == "" {
		return shared.WriteError(ctx, cfg, constants.ActEmit, start,
			apperrors.Newf(apperrors.ErrConfigValidate, "LOGROUTE_EMIT_MESSAGE не задан"))
	}

	engine, err := logroute.InitializeFile(cfg.ConfigPath, logroute.WithoutWatch())
	if err != nil {
		return shared.WriteError(ctx, cfg, constants.ActEmit, start, err)
	}

	preview := engine.Preview(ctx, cfg.Emit.Logger, cfg.Emit.Tag, lvl, cfg.Emit.Message)
	data := &Data{
		Logger:    cfg.Emit.Logger,
		Level:     lvl.String(),
		Tag:       cfg.Emit.Tag,
		Message:   cfg.Emit.Message,
		Node:      preview.Node,
		Appenders: preview.Appenders(),
		Dropped:   preview.Dropped,
	}

	if dryrun.IsDryRun() {
		if err := shutdown(ctx, engine); err != nil {
			return shared.WriteError(ctx, cfg, constants.ActEmit, start, err)
		}
		return output.WriteDryRunResult(shared.Stdout, shared.Format(cfg), constants.ActEmit,
			shared.TraceID(ctx), constants.APIVersion, start, buildPlan(data, lvl, preview))
	}

	engine.Logger(cfg.Emit.Logger).WithTag(cfg.Emit.Tag).Log(ctx, lvl, cfg.Emit.Message)
	if err := shutdown(ctx, engine); err != nil {
		return shared.WriteError(ctx, cfg, constants.ActEmit, start, err)
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("событие отправлено",
			"logger", data.Logger,
			"level", data.Level,
			"appenders", len(data.Appenders),
		)
	}
	return shared.WriteResult(ctx, cfg, constants.ActEmit, start, data, nil)
}

func shutdown(ctx context.Context, engine *logroute.Handle) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := engine.Shutdown(ctx); err != nil {
		return apperrors.NewAppError(apperrors.ErrCommandExec, "остановка движка", err)
	}
	return nil
}

// buildPlan переносит маршрут события в план dry-run.
func buildPlan(d *Data, lvl level.Level, preview logroute.Preview) *output.DeliveryPlan {
	plan := &output.DeliveryPlan{
		Command:   constants.ActEmit,
		Logger:    d.Logger,
		Node:      preview.Node,
		Level:     lvl.Upper(),
		Threshold: preview.Threshold.Upper(),
		Dropped:   preview.Dropped,
		Steps:     make([]output.DeliveryStep, 0, len(preview.Decisions)),
	}
	for _, dec := range preview.Decisions {
		plan.Steps = append(plan.Steps, output.DeliveryStep{
			Appender: dec.Appender,
			Kind:     dec.Kind,
			Accepted: dec.Accepted,
			Line:     dec.Line,
			Reason:   dec.Reason,
		})
	}
	return dryrun.BuildPlan(plan)
}
