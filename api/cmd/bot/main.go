package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"calc-vision/api/internal/analyze"
	"calc-vision/api/internal/config"
	"calc-vision/api/internal/httpserver"
	"calc-vision/api/internal/llm/gemini"
	"calc-vision/api/internal/logging"
	"calc-vision/api/internal/metrics"
	"calc-vision/api/internal/telegram"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatalf("config: %v", &config.MissingEnvError{Key: "TELEGRAM_BOT_TOKEN"})
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := gemini.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return err
	}
	bot.Debug = false
	logger.Info("telegram bot authorized", zap.String("username", bot.Self.UserName))

	router := &telegram.Router{
		Bot:      bot,
		Analyzer: analyze.New(cfg, engine, logger.Named("analyze")),
		Model:    cfg.GeminiModel,
		Log:      logger.Named("telegram"),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	metrics.Register()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		path, err := router.SetWebhook(webhookURL)
		if err != nil {
			return err
		}
		r.POST(path, router.Webhook(ctx))
		logger.Info("webhook mode", zap.String("path", path))
	} else {
		// polling: вебхук мешает getUpdates
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			logger.Warn("delete webhook failed", zap.Error(err))
		}
		go telegram.RunPolling(ctx, bot, logger.Named("polling"), func(upd tgbotapi.Update) {
			router.HandleUpdate(ctx, upd)
		})
		logger.Info("polling mode")
	}

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("health server listening", zap.String("addr", server.Addr))

	sig := make(chan os.Signal, 1)
	go func() {
		<-ctx.Done()
		sig <- syscall.SIGTERM
	}()
	return httpserver.Serve(server, logger, httpserver.Options{Signals: sig})
}
