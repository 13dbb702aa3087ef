package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"calc-vision/api/internal/metrics"
	"calc-vision/api/internal/util"
)

var errTrailingData = errors.New("trailing data after value")

var reBareKey = regexp.MustCompile(`(\w+):`)

// parseStrategy turns cleaned model text into a generic value.
type parseStrategy struct {
	name  string
	parse func(string) (any, error)
}

// Tried in order; the first success wins.
var parseStrategies = []parseStrategy{
	{name: "json", parse: parseJSON},
	{name: "repaired-json", parse: parseRepairedJSON},
	{name: "literal", parse: parseLiteral},
}

// Normalize cleans a model reply and coerces it into records. It never
// fails: unparseable text gives an empty, non-nil slice.
func Normalize(raw string, logger *zap.Logger) []Record {
	logger.Debug("original response text", zap.String("text", raw))
	cleaned := util.CleanModelText(raw)
	logger.Debug("cleaned response text", zap.String("text", cleaned))

	v, strategy, err := parseAnswers(cleaned)
	if err != nil {
		logger.Error("all parsing attempts failed", zap.String("text", cleaned), zap.Error(err))
		metrics.ParseStrategyTotal.WithLabelValues("none").Inc()
		return []Record{}
	}
	metrics.ParseStrategyTotal.WithLabelValues(strategy).Inc()
	if strategy != parseStrategies[0].name {
		logger.Info("response recovered by fallback parser", zap.String("strategy", strategy))
	}
	return toRecords(v, logger)
}

func parseAnswers(text string) (any, string, error) {
	errs := make([]error, 0, len(parseStrategies))
	for _, s := range parseStrategies {
		v, err := s.parse(text)
		if err == nil {
			return v, s.name, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
	}
	return nil, "", errors.Join(errs...)
}

func parseJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

// repairJSON turns near-JSON (single quotes, bare keys) into JSON.
func repairJSON(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	return reBareKey.ReplaceAllString(s, `"$1":`)
}

func parseRepairedJSON(s string) (any, error) {
	return parseJSON(repairJSON(s))
}

func toRecords(v any, logger *zap.Logger) []Record {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		items = []any{t}
	default:
		logger.Warn("parsed answer is not a list", zap.String("type", fmt.Sprintf("%T", v)))
		return []Record{}
	}

	out := make([]Record, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			logger.Warn("skipping non-object answer", zap.Int("index", i), zap.Any("value", it))
			continue
		}
		out = append(out, toRecord(m))
	}
	return out
}

func toRecord(m map[string]any) Record {
	rec := Record{Result: ""}
	if v, ok := m["expr"]; ok {
		rec.Expr = stringify(v)
	}
	if v, ok := m["result"]; ok {
		rec.Result = v
	}
	if v, ok := m["assign"]; ok {
		rec.Assign = truthy(v)
	}
	return rec
}

// stringify follows Python's str() for scalars (True, False, None);
// containers fall back to JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "True"
		}
		return "False"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
