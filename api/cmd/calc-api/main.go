package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"calc-vision/api/internal/analyze"
	"calc-vision/api/internal/config"
	"calc-vision/api/internal/handle"
	"calc-vision/api/internal/httpserver"
	"calc-vision/api/internal/llm/gemini"
	"calc-vision/api/internal/logging"
	"calc-vision/api/internal/metrics"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("calc-api stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	engine, err := gemini.New(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	metrics.Register()
	an := analyze.New(cfg, engine, logger.Named("analyze"))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(handle.Middleware(logger.Named("http"))...)
	handle.New(an, cfg.GeminiModel, logger.Named("handle")).Register(r, cfg.RoutePrefix)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("calc-api listening",
		zap.String("addr", server.Addr),
		zap.String("route", cfg.RoutePrefix),
		zap.String("model", cfg.GeminiModel),
	)
	return httpserver.Serve(server, logger, httpserver.Options{})
}
