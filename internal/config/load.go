package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
)

// envOverrides — переменные окружения, переопределяющие документ.
// Диагностика и метрики переопределяются через теги своих Config.
type envOverrides struct {
	// RootLevel переопределяет root.level.
	RootLevel string `env:"LOGROUTE_ROOT_LEVEL"`

	// RefreshRate переопределяет refresh_rate ("0" отключает перезагрузку).
	RefreshRate string `env:"LOGROUTE_REFRESH_RATE"`
}

// Load читает документ из файла и применяет переменные окружения.
// Порядок источников: YAML, затем окружение.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // путь задан хост-программой
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			fmt.Sprintf("не удалось прочитать %q", path), err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ApplyEnv применяет переменные окружения LOGROUTE_* к документу.
func ApplyEnv(doc *Document) error {
	var ov envOverrides
	if err := cleanenv.ReadEnv(&ov); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigLoad, "чтение переменных окружения", err)
	}

	if ov.RootLevel != "" {
		l, err := level.Parse(ov.RootLevel)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrConfigValidate, "LOGROUTE_ROOT_LEVEL", err)
		}
		doc.Root.Level = &l
	}
	if ov.RefreshRate != "" {
		d, err := time.ParseDuration(ov.RefreshRate)
		if err != nil || d < 0 {
			return apperrors.Newf(apperrors.ErrConfigValidate,
				"LOGROUTE_REFRESH_RATE: некорректная длительность %q", ov.RefreshRate)
		}
		doc.RefreshRate = d
	}

	if err := cleanenv.ReadEnv(&doc.Diagnostics); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigLoad, "переменные LOGROUTE_DIAG_*", err)
	}
	if err := cleanenv.ReadEnv(&doc.Metrics); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigLoad, "переменные LOGROUTE_METRICS_*", err)
	}
	return nil
}
