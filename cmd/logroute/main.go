// Package main содержит точку входа CLI logroute: проверка документа
// конфигурации маршрутизации и отправка пробных событий через движок.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/logroute/internal/command"
	"github.com/Kargones/logroute/internal/command/handlers"
	"github.com/Kargones/logroute/internal/command/handlers/shared"
	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/di"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/pkg/output"
	"github.com/Kargones/logroute/internal/pkg/tracing"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run содержит основную логику приложения и возвращает exit code.
// Вынесена из main() чтобы os.Exit() вызывался после отработки всех defer-ов
// (tracerShutdown, span.End).
func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.MustLoad(args)
	if err != nil || cfg == nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return constants.ExitConfig
	}
	defer func() {
		_ = cfg.Close() //nolint:errcheck // файл диагностики закрывается при выходе
	}()

	app, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось инициализировать приложение: %v\n", err)
		return constants.ExitConfig
	}
	l := app.Logger.With(slog.String("trace_id", app.TraceID))
	l.Debug("Информация о сборке",
		slog.String("version", constants.Version),
		slog.String("commit_hash", constants.PreCommitHash),
	)

	// trace_id в context для handlers и связь с OTel span context
	ctx = tracing.WithTraceID(ctx, app.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, app.TraceID)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.TracerShutdown(shutdownCtx); err != nil {
			l.Error("ошибка завершения tracing",
				slog.String("error", err.Error()),
				slog.String("command", cfg.Command),
			)
		}
	}()

	handlers.RegisterAll()

	tracer := otel.Tracer(constants.AppName)
	ctx, span := tracer.Start(ctx, cfg.Command,
		trace.WithAttributes(
			attribute.String("command", cfg.Command),
			attribute.String("config", cfg.ConfigPath),
			attribute.String("trace_id", app.TraceID),
		),
	)
	defer span.End()

	start := time.Now()
	handler, ok := command.Get(cfg.Command)
	if !ok {
		span.SetStatus(codes.Error, "unknown command")
		l.Error("Команда не найдена",
			slog.String("command", cfg.Command),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
		writeUnknownCommand(app, start)
		return constants.ExitUnknownCommand
	}

	l.Debug("Выполнение команды", slog.String("command", cfg.Command))
	if execErr := handler.Execute(ctx, cfg); execErr != nil {
		span.RecordError(execErr)
		span.SetStatus(codes.Error, execErr.Error())
		l.Error("Ошибка выполнения команды",
			slog.String("command", cfg.Command),
			slog.String("error", execErr.Error()),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
		return exitCodeFor(execErr)
	}
	return constants.ExitOK
}

// writeUnknownCommand выводит ошибку COMMAND.NOT_FOUND в формате LOGROUTE_OUTPUT_FORMAT.
func writeUnknownCommand(app *di.App, start time.Time) {
	result := &output.Result{
		Status:  output.StatusError,
		Command: app.Config.Command,
		Error: &output.ErrorInfo{
			Code: apperrors.ErrCommandNotFound,
			Message: fmt.Sprintf("неизвестная команда %q, доступны: %s",
				app.Config.Command, strings.Join(command.Names(), ", ")),
		},
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    app.TraceID,
			APIVersion: constants.APIVersion,
		},
	}
	if err := app.OutputWriter.Write(shared.Stdout, result); err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось вывести результат: %v\n", err)
	}
}

// exitCodeFor различает ошибки документа конфигурации и прочие сбои команды.
func exitCodeFor(err error) int {
	code := apperrors.CodeOf(err)
	category, _, _ := strings.Cut(code, ".")
	switch category {
	case "CONFIG", "APPENDER", "LOGGER":
		return constants.ExitConfig
	default:
		return constants.ExitCommandFailed
	}
}
