package analyze

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"calc-vision/api/internal/llm"
	"calc-vision/api/internal/metrics"
	"calc-vision/api/internal/util"
)

// Classifier asks the model whether the image is math or a drawing.
type Classifier struct {
	engine llm.Engine
	log    *zap.Logger
}

func NewClassifier(engine llm.Engine, logger *zap.Logger) *Classifier {
	return &Classifier{engine: engine, log: logger}
}

// Classify never fails: an inference error resolves to CategoryMath, the
// math prompt being the more generally useful fallback.
func (c *Classifier) Classify(ctx context.Context, img *Image) Category {
	start := time.Now()
	raw, err := c.engine.GenerateText(ctx, classifyPrompt, img.Blob())
	metrics.InferenceDurationSeconds.WithLabelValues("classify", metrics.ResultLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CategoriesTotal.WithLabelValues(CategoryMath.String()).Inc()
		c.log.Error("content type detection failed, assuming math", zap.Error(err))
		return CategoryMath
	}
	cleaned := util.CleanModelText(raw)
	cat := CategoryConcept
	if strings.Contains(cleaned, "1") {
		cat = CategoryMath
	}
	metrics.CategoriesTotal.WithLabelValues(cat.String()).Inc()
	c.log.Info("content type detected", zap.String("category", cat.String()), zap.String("reply", cleaned))
	return cat
}
