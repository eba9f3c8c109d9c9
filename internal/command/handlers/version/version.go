// Package version реализует команду version для вывода информации о версии logroute.
package version

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/Kargones/logroute/internal/command"
	"github.com/Kargones/logroute/internal/command/handlers/shared"
	"github.com/Kargones/logroute/internal/config"
	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/pkg/output"
)

// RegisterCmd регистрирует команду version в реестре.
func RegisterCmd() {
	command.Register(&VersionHandler{})
}

// VersionData содержит информацию о версии приложения.
type VersionData struct {
	// Version — полная версия приложения.
	Version string `json:"version"`

	// GoVersion — версия Go, использованная при сборке.
	GoVersion string `json:"go_version"`

	// Commit — хеш коммита на момент сборки.
	Commit string `json:"commit"`
}

// writeText выводит информацию о версии в человекочитаемом формате.
func (d *VersionData) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s version %s\n  Go:     %s\n  Commit: %s\n",
		constants.AppName, d.Version, d.GoVersion, d.Commit)
	return err
}

// buildVersionData создаёт VersionData с fallback значениями.
// Если version пустой — используется "dev", если commit пустой — "unknown".
func buildVersionData(version, commit string) *VersionData {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	return &VersionData{
		Version:   version,
		GoVersion: runtime.Version(),
		Commit:    commit,
	}
}

// VersionHandler обрабатывает команду version.
type VersionHandler struct{}

// Name возвращает имя команды.
func (h *VersionHandler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *VersionHandler) Description() string {
	return "Вывод информации о версии приложения"
}

// Execute выполняет команду version: собирает данные о версии и выводит результат.
func (h *VersionHandler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	versionData := buildVersionData(constants.Version, constants.PreCommitHash)

	// Текстовый формат — компактный вывод без metadata/trace_id.
	if !output.IsJSON(shared.Format(cfg)) {
		return versionData.writeText(shared.Stdout)
	}
	return shared.WriteResult(ctx, cfg, constants.ActVersion, start, versionData, nil)
}
