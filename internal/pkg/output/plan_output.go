package output

import (
	"io"
	"time"
)

// WriteDryRunResult пишет результат dry-run режима (план без выполнения).
// Текстовый формат выводит только план, JSON — Result с dry_run: true.
func WriteDryRunResult(w io.Writer, format, command, traceID, apiVersion string, start time.Time, plan *DeliveryPlan) error {
	if !IsJSON(format) {
		return plan.WriteText(w)
	}

	result := &Result{
		Status:  StatusSuccess,
		Command: command,
		DryRun:  true,
		Plan:    plan,
		Metadata: &Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: apiVersion,
		},
	}
	return NewJSONWriter().Write(w, result)
}
