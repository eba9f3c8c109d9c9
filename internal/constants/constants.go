// Package constants содержит константы CLI logroute: имена команд,
// переменные окружения и сообщения.
package constants

// AppName — имя приложения в выводе команд и метриках.
const AppName = "logroute"

// Константы сообщений приложения
const (
	// MsgAppExit - сообщение о завершении работы программы
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing - сообщение об обработке ошибки
	MsgErrProcessing = "Обработка ошибки"
)

// Константы действий (команд)
const (
	// ActCheck - проверка документа конфигурации и вывод дерева логгеров
	ActCheck = "check"
	// ActEmit - отправка одного события через движок
	ActEmit = "emit"
	// ActVersion - вывод версии
	ActVersion = "version"
	// ActHelp - вывод списка команд
	ActHelp = "help"
)

// Переменные окружения CLI.
const (
	// EnvCommand - имя выполняемой команды
	EnvCommand = "LOGROUTE_COMMAND"
	// EnvConfig - путь к документу конфигурации
	EnvConfig = "LOGROUTE_CONFIG"
	// EnvOutputFormat - формат вывода результата (text, json)
	EnvOutputFormat = "LOGROUTE_OUTPUT_FORMAT"
	// EnvDryRun - режим плана без выполнения (true/1)
	EnvDryRun = "LOGROUTE_DRY_RUN"
)

// DefaultConfigPath - путь к документу, если LOGROUTE_CONFIG не задан.
const DefaultConfigPath = "logroute.yaml"

// APIVersion - версия формата JSON-вывода команд
const APIVersion = "v1"

// Коды завершения CLI.
const (
	// ExitOK - успешное выполнение
	ExitOK = 0
	// ExitConfig - ошибка загрузки или проверки конфигурации
	ExitConfig = 5
	// ExitUnknownCommand - команда не зарегистрирована
	ExitUnknownCommand = 2
	// ExitCommandFailed - команда завершилась ошибкой
	ExitCommandFailed = 8
)
