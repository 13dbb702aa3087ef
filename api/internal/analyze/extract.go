package analyze

import (
	"context"
	"time"

	"go.uber.org/zap"

	"calc-vision/api/internal/llm"
	"calc-vision/api/internal/metrics"
)

// Extractor asks the model for the answer records of an already classified image.
type Extractor struct {
	engine llm.Engine
	log    *zap.Logger
}

func NewExtractor(engine llm.Engine, logger *zap.Logger) *Extractor {
	return &Extractor{engine: engine, log: logger}
}

// Extract returns an empty, non-nil slice when the call or the parsing fails.
func (e *Extractor) Extract(ctx context.Context, img *Image, vars map[string]float64, cat Category) []Record {
	prompt := extractPrompt(cat, vars)
	start := time.Now()
	raw, err := e.engine.GenerateText(ctx, prompt, img.Blob())
	metrics.InferenceDurationSeconds.WithLabelValues("extract", metrics.ResultLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		e.log.Error("answer extraction failed", zap.String("category", cat.String()), zap.Error(err))
		return []Record{}
	}
	e.log.Info("received extraction response", zap.String("engine", e.engine.Name()), zap.String("model", e.engine.GetModel()))

	records := Normalize(raw, e.log)
	e.log.Info("formatted answers", zap.Int("count", len(records)), zap.Any("answers", records))
	return records
}
