// Package dryrun предоставляет функции для работы с dry-run режимом.
// В dry-run режиме команды возвращают план действий без реального выполнения:
// emit показывает, в какие аппендеры попадёт событие, ничего не записывая.
package dryrun

import (
	"fmt"
	"os"
	"strings"

	"github.com/Kargones/logroute/internal/constants"
	"github.com/Kargones/logroute/internal/pkg/output"
)

// IsDryRun проверяет включён ли dry-run режим.
// Возвращает true если LOGROUTE_DRY_RUN равна "true" (без учёта регистра) или "1".
func IsDryRun() bool {
	val := os.Getenv(constants.EnvDryRun)
	return strings.EqualFold(val, "true") || val == "1"
}

// BuildPlan нумерует шаги плана доставки и, если итог не задан, формирует его
// по решениям аппендеров. Шаг с уже заданным Order сохраняет номер.
func BuildPlan(plan *output.DeliveryPlan) *output.DeliveryPlan {
	for i := range plan.Steps {
		if plan.Steps[i].Order == 0 {
			plan.Steps[i].Order = i + 1
		}
	}
	if plan.Steps == nil {
		plan.Steps = []output.DeliveryStep{}
	}
	if plan.Summary == "" {
		plan.Summary = summarize(plan)
	}
	return plan
}

func summarize(plan *output.DeliveryPlan) string {
	switch {
	case plan.Dropped:
		return fmt.Sprintf("событие будет отброшено порогом логгера %s (%s)", plan.Node, plan.Threshold)
	case len(plan.Steps) == 0:
		return "у логгера нет аппендеров, событие никуда не попадёт"
	default:
		return fmt.Sprintf("доставка в %d из %d аппендер(ов)", plan.AcceptedCount(), len(plan.Steps))
	}
}
