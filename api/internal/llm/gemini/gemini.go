package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"calc-vision/api/internal/config"
	"calc-vision/api/internal/llm"
)

// Engine wraps one genai client; it is safe for concurrent use.
type Engine struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	key := strings.TrimSpace(cfg.GeminiAPIKey)
	if key == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Engine{
		client: cl,
		model:  strings.TrimSpace(cfg.GeminiModel),
		log:    logger.Named("gemini"),
	}, nil
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.model }

func (e *Engine) Close() error { return e.client.Close() }

// GenerateText sends [prompt, image] in one turn and returns the reply text.
func (e *Engine) GenerateText(ctx context.Context, prompt string, img llm.Blob) (string, error) {
	m := e.client.GenerativeModel(e.model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}

	parts := []genai.Part{genai.Text(prompt)}
	if len(img.Data) > 0 {
		parts = append(parts, genai.Blob{MIMEType: img.MIMEType, Data: img.Data})
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	txt := responseText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini generate: %w (%s)", llm.ErrEmptyResponse, blockReason(resp))
	}
	e.log.Debug("gemini response received", zap.String("model", e.model), zap.Int("chars", len(txt)))
	return txt, nil
}

// responseText склеивает все текстовые части первого кандидата с контентом.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}

func blockReason(resp *genai.GenerateContentResponse) string {
	if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "blocked: " + resp.PromptFeedback.BlockReason.String()
	}
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		return "finish: " + resp.Candidates[0].FinishReason.String()
	}
	return "no candidates"
}
