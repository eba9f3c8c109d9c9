// Package apperrors предоставляет структурированные ошибки движка маршрутизации логов.
// Переименован из errors чтобы избежать конфликта со стандартной библиотекой.
//
// Ошибки конфигурации (CONFIG.*, APPENDER.*, LOGGER.*) возвращаются при инициализации
// и перезагрузке и фатальны для старта. SINK.* возникают при записи и никогда
// не возвращаются вызывающему Log — они уходят в диагностический канал.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в иерархическом формате: CATEGORY.SPECIFIC_ERROR.
// Позволяет grep по категориям: `grep "APPENDER\."` для всех ошибок аппендеров.
const (
	// Category: CONFIG — ошибки разбора и проверки документа.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigSyntax   = "CONFIG.SYNTAX"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	// Category: APPENDER — ошибки реестра аппендеров.
	ErrUndefinedAppender = "APPENDER.UNDEFINED"
	ErrUnknownKind       = "APPENDER.UNKNOWN_KIND"
	ErrDuplicateAppender = "APPENDER.DUPLICATE"

	// Category: LOGGER — ошибки построения дерева логгеров.
	ErrMissingRootLevel = "LOGGER.MISSING_ROOT_LEVEL"

	// Category: SINK — ошибки записи в приёмник во время работы.
	ErrSinkWrite = "SINK.WRITE_FAILED"

	// Category: COMMAND — ошибки выполнения команд CLI.
	ErrCommandNotFound = "COMMAND.NOT_FOUND"
	ErrCommandExec     = "COMMAND.EXEC_FAILED"
)

// Sentinel-значения для проверки категории через errors.Is.
// Сравнение выполняется по Code, Message и Cause не учитываются.
//
//	if errors.Is(err, apperrors.UndefinedAppender) { ... }
var (
	ConfigSyntax      = &AppError{Code: ErrConfigSyntax}
	ConfigValidation  = &AppError{Code: ErrConfigValidate}
	UndefinedAppender = &AppError{Code: ErrUndefinedAppender}
	UnknownKind       = &AppError{Code: ErrUnknownKind}
	DuplicateAppender = &AppError{Code: ErrDuplicateAppender}
	MissingRootLevel  = &AppError{Code: ErrMissingRootLevel}
	SinkWrite         = &AppError{Code: ErrSinkWrite}
)

// AppError представляет структурированную ошибку.
// Реализует error interface и поддерживает wrapping через Unwrap().
//
// Пример использования:
//
//	return apperrors.NewAppError(apperrors.ErrUndefinedAppender,
//	    fmt.Sprintf("логгер %q ссылается на неизвестный аппендер %q", logger, name),
//	    nil)
type AppError struct {
	// Code — машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`

	// Message — человекочитаемое описание ошибки.
	Message string `json:"message"`

	// Cause — wrapped оригинальная ошибка.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду, что позволяет использовать sentinel-значения.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Newf создаёт AppError без причины с форматированным сообщением.
func Newf(code, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// CodeOf возвращает код первой AppError в цепочке или пустую строку.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
