package handle

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"calc-vision/api/internal/analyze"
	"calc-vision/api/internal/logging"
	"calc-vision/api/internal/metrics"
)

const (
	StatusSuccess = "success"
	StatusWarning = "warning"

	msgSuccess = "Analysis completed successfully"
	msgNoData  = "Analysis completed but no results were obtained"
	msgFailed  = "Analysis failed"
)

type calculateRequest struct {
	Image     string              `json:"image" binding:"required"`
	Variables map[string]*float64 `json:"dict_of_vars"`
}

// variables rejects null bindings, which encoding/json would otherwise
// silently turn into zero.
func (r calculateRequest) variables() (map[string]float64, error) {
	keys := make([]string, 0, len(r.Variables))
	for k, v := range r.Variables {
		if v == nil {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		return nil, &nullVariablesError{Keys: keys}
	}
	out := make(map[string]float64, len(r.Variables))
	for k, v := range r.Variables {
		out[k] = *v
	}
	return out, nil
}

type calculateResponse struct {
	Status  string           `json:"status"`
	Data    []analyze.Record `json:"data"`
	Message string           `json:"message"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (h *Handle) Calculate(c *gin.Context) {
	requestID := requestIDFrom(c)
	log := logging.WithOperation(h.log, "calculate", requestID)
	metrics.InFlight.Inc()
	defer metrics.InFlight.Dec()

	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("request rejected", zap.Error(err))
		metrics.RequestsTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnprocessableEntity, validationDetail(err))
		return
	}

	vars, err := req.variables()
	if err != nil {
		log.Info("request rejected", zap.Error(err))
		metrics.RequestsTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnprocessableEntity, validationDetail(err))
		return
	}

	records, err := h.pipeline.Analyze(c.Request.Context(), requestID, analyze.Request{
		Image:     req.Image,
		Variables: vars,
	})
	if err != nil {
		var verr *analyze.ValidationError
		if errors.As(err, &verr) {
			log.Info("request rejected", zap.Error(err))
			metrics.RequestsTotal.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusUnprocessableEntity, validationDetail(err))
			return
		}
		log.Error("processing error", zap.Error(err), zap.String("type", analyze.KindOf(err)))
		metrics.RequestsTotal.WithLabelValues("failed").Inc()
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   err.Error(),
			Message: msgFailed,
			Type:    analyze.KindOf(err),
		})
		return
	}

	if len(records) == 0 {
		log.Warn("no results returned from analysis")
		metrics.RequestsTotal.WithLabelValues(StatusWarning).Inc()
		c.JSON(http.StatusOK, calculateResponse{Status: StatusWarning, Data: []analyze.Record{}, Message: msgNoData})
		return
	}
	log.Info("analysis completed", zap.Int("count", len(records)))
	metrics.RequestsTotal.WithLabelValues(StatusSuccess).Inc()
	c.JSON(http.StatusOK, calculateResponse{Status: StatusSuccess, Data: records, Message: msgSuccess})
}
