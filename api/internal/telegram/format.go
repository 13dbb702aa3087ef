package telegram

import (
	"encoding/json"
	"fmt"
	"strings"

	"calc-vision/api/internal/analyze"
)

// FormatRecords renders one line per record; assignments use ":=".
func FormatRecords(records []analyze.Record) string {
	if len(records) == 0 {
		return "Ничего не удалось распознать."
	}
	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		op := "="
		if rec.Assign {
			op = ":="
		}
		fmt.Fprintf(&b, "%s %s %s", rec.Expr, op, resultText(rec.Result))
	}
	return b.String()
}

func resultText(v any) string {
	switch t := v.(type) {
	case nil:
		return "—"
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
