package handle

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"calc-vision/api/internal/analyze"
)

// Pipeline is the analysis the handler fronts.
type Pipeline interface {
	Analyze(ctx context.Context, requestID string, req analyze.Request) ([]analyze.Record, error)
}

type Handle struct {
	pipeline Pipeline
	model    string
	log      *zap.Logger
}

func New(pipeline Pipeline, model string, logger *zap.Logger) *Handle {
	return &Handle{
		pipeline: pipeline,
		model:    model,
		log:      logger,
	}
}

// Register mounts the routes; prefix is where the calculate endpoint lives.
func (h *Handle) Register(r gin.IRoutes, prefix string) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "calc-vision", "model": h.model})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST(prefix, h.Calculate)
}
