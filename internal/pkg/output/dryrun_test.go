package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *DeliveryPlan {
	return &DeliveryPlan{
		Command:   "emit",
		Logger:    "app.http",
		Node:      "app",
		Level:     "WARN",
		Threshold: "DEBUG",
		Steps: []DeliveryStep{
			{Order: 1, Appender: "main", Kind: "file", Accepted: true, Line: "WARN app.http slow request\n"},
			{Order: 2, Appender: "errors", Kind: "file", Reason: "порог аппендера: ERROR"},
		},
		Summary: "доставка в 1 из 2 аппендеров",
	}
}

func TestDeliveryPlan_WriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testPlan().WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "=== DRY RUN ===")
	assert.Contains(t, out, "Команда: emit")
	assert.Contains(t, out, "Событие: WARN app.http → узел app (порог DEBUG)\n")
	assert.Contains(t, out, "  1. main [file]: WARN app.http slow request\n", "хвостовой перевод строки отброшен")
	assert.Contains(t, out, "  2. errors [file] — порог аппендера: ERROR\n")
	assert.Contains(t, out, "Итого: доставка в 1 из 2 аппендеров")
	assert.Contains(t, out, "=== END DRY RUN ===")
}

func TestDeliveryPlan_WriteTextRootWithoutAppenders(t *testing.T) {
	plan := &DeliveryPlan{Command: "emit", Node: "root", Level: "INFO", Threshold: "INFO"}

	var buf bytes.Buffer
	require.NoError(t, plan.WriteText(&buf))
	assert.Contains(t, buf.String(), "Событие: INFO root → узел root")
	assert.Contains(t, buf.String(), "Доставка: аппендеры не назначены")
	assert.Zero(t, plan.AcceptedCount())
}

func TestDeliveryPlan_AcceptedCount(t *testing.T) {
	assert.Equal(t, 1, testPlan().AcceptedCount())
}

func TestSanitizeLine(t *testing.T) {
	assert.Equal(t, "red text", sanitizeLine("\x1b[31mred\x1b[0m text"))
	assert.Equal(t, "a b c", sanitizeLine("a\nb\tc\n"))
	assert.Equal(t, "ab", sanitizeLine("a\x00\x07b"))
}

func TestWriteDryRunResult(t *testing.T) {
	start := time.Now()

	var text bytes.Buffer
	require.NoError(t, WriteDryRunResult(&text, FormatText, "emit", "", "v1", start, testPlan()))
	assert.Contains(t, text.String(), "=== DRY RUN ===")

	var js bytes.Buffer
	require.NoError(t, WriteDryRunResult(&js, "JSON", "emit", "abc", "v1", start, testPlan()))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, true, decoded["dry_run"])
	assert.Equal(t, "emit", decoded["command"])
	plan := decoded["plan"].(map[string]any)
	assert.Equal(t, "app", plan["node"])
	steps := plan["steps"].([]any)
	require.Len(t, steps, 2)
	first := steps[0].(map[string]any)
	assert.Equal(t, "main", first["appender"])
	assert.Equal(t, true, first["accepted"])
	assert.Equal(t, "WARN app.http slow request\n", first["line"])
	assert.Equal(t, "порог аппендера: ERROR", steps[1].(map[string]any)["reason"])
}
