// Package command предоставляет интерфейс и реестр команд CLI logroute.
// Обработчики регистрируются явно через handlers.RegisterAll() из main.
package command

import (
	"context"

	"github.com/Kargones/logroute/internal/config"
)

// Handler определяет интерфейс обработчика команды.
type Handler interface {
	// Name возвращает имя команды для регистрации в реестре.
	// Должно соответствовать константам из internal/constants.
	Name() string

	// Description возвращает описание команды для вывода в help.
	Description() string

	// Execute выполняет команду с переданным контекстом и конфигурацией.
	// Возвращает ошибку если выполнение завершилось неуспешно.
	Execute(ctx context.Context, cfg *config.Config) error
}
