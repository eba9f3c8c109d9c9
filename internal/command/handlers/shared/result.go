// Package shared содержит общие компоненты для обработчиков команд:
// вывод результата и ошибки в формате, выбранном LOGROUTE_OUTPUT_FORMAT.
package shared

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
	"github.com/Kargones/logroute/internal/pkg/output"
	"github.com/Kargones/logroute/internal/pkg/tracing"
)

// Stdout — поток результата команд. Подменяется в тестах.
var Stdout io.Writer = os.Stdout

// Format возвращает формат вывода из конфигурации (text по умолчанию).
func Format(cfg *config.Config) string {
	if cfg == nil || cfg.OutputFormat == "" {
		return output.FormatText
	}
	return cfg.OutputFormat
}

// TraceID возвращает trace_id из контекста или генерирует новый.
func TraceID(ctx context.Context) string {
	if id := tracing.TraceIDFromContext(ctx); id != "" {
		return id
	}
	return tracing.GenerateTraceID()
}

func metadata(ctx context.Context, start time.Time) *output.Metadata {
	return &output.Metadata{
		DurationMs: time.Since(start).Milliseconds(),
		TraceID:    TraceID(ctx),
		APIVersion: constants.APIVersion,
	}
}

// WriteResult выводит успешный результат команды.
func WriteResult(ctx context.Context, cfg *config.Config, command string, start time.Time,
	data any, summary *output.SummaryInfo) error {
	result := &output.Result{
		Status:   output.StatusSuccess,
		Command:  command,
		Data:     data,
		Metadata: metadata(ctx, start),
		Summary:  summary,
	}
	return output.NewWriter(Format(cfg)).Write(Stdout, result)
}

// WriteError выводит ошибку команды в структурированном виде и возвращает err.
// Ошибки без кода получают COMMAND.EXEC_FAILED.
func WriteError(ctx context.Context, cfg *config.Config, command string, start time.Time, err error) error {
	code := apperrors.CodeOf(err)
	if code == "" {
		code = apperrors.ErrCommandExec
	}
	result := &output.Result{
		Status:  output.StatusError,
		Command: command,
		Error: &output.ErrorInfo{
			Code:    code,
			Message: messageOf(err),
		},
		Metadata: metadata(ctx, start),
	}
	if writeErr := output.NewWriter(Format(cfg)).Write(Stdout, result); writeErr != nil {
		return errors.Join(err, writeErr)
	}
	return err
}

// messageOf возвращает текст ошибки без префикса кода: код выводится отдельным полем.
func messageOf(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	// Обёртки над AppError (например, "логгер x: ...") сохраняют свой контекст
	if outer := err.Error(); outer != appErr.Error() {
		return outer
	}
	if appErr.Cause != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
	}
	return appErr.Message
}
