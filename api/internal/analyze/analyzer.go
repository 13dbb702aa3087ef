package analyze

import (
	"context"
	"time"

	"go.uber.org/zap"

	"calc-vision/api/internal/config"
	"calc-vision/api/internal/llm"
	"calc-vision/api/internal/logging"
)

// Analyzer runs validate → decode → classify → extract → normalize for one request.
type Analyzer struct {
	classifier *Classifier
	extractor  *Extractor
	timeout    time.Duration
	log        *zap.Logger
}

func New(cfg *config.Config, engine llm.Engine, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		classifier: NewClassifier(engine, logger.Named("classifier")),
		extractor:  NewExtractor(engine, logger.Named("extractor")),
		timeout:    cfg.InferenceTimeout,
		log:        logger,
	}
}

// Analyze returns a *ValidationError for bad input and a wrapped *DecodeError
// for unreadable images. Inference and parse failures never surface: they
// degrade to an empty record list.
func (a *Analyzer) Analyze(ctx context.Context, requestID string, req Request) ([]Record, error) {
	if err := Validate(&req); err != nil {
		return nil, err
	}
	img, err := DecodeImage(req.Image)
	if err != nil {
		return nil, logging.NewOperationError("decode image", requestID, err)
	}
	a.log.Debug("image decoded",
		zap.String("request_id", requestID),
		zap.String("format", img.Format),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)
	return a.AnalyzeImage(ctx, img, req.Variables), nil
}

// AnalyzeImage runs the two inference calls, strictly one after the other.
func (a *Analyzer) AnalyzeImage(ctx context.Context, img *Image, vars map[string]float64) []Record {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	if vars == nil {
		vars = map[string]float64{}
	}
	if img.DeclaredMismatch() {
		a.log.Warn("declared image type differs from content",
			zap.String("declared", img.DeclaredMIME),
			zap.String("format", img.Format),
		)
	}
	cat := a.classifier.Classify(ctx, img)
	return a.extractor.Extract(ctx, img, vars, cat)
}
