package telegram

import (
	"context"
	"encoding/hex"
	"hash/fnv"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// WebhookPath: секретный путь вебхука, стабильный для токена.
func WebhookPath(token string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(token))
	return "/webhook/" + hex.EncodeToString(h.Sum(nil))
}

// SetWebhook registers baseURL+WebhookPath with Telegram, dropping any backlog.
func (r *Router) SetWebhook(baseURL string) (string, error) {
	path := WebhookPath(r.Bot.Token)
	wh, err := tgbotapi.NewWebhook(strings.TrimRight(baseURL, "/") + path)
	if err != nil {
		return "", err
	}
	wh.DropPendingUpdates = true
	if _, err := r.Bot.Request(wh); err != nil {
		return "", err
	}
	return path, nil
}

// Webhook acknowledges the update immediately and analyzes it in the
// background so Telegram does not redeliver slow requests.
func (r *Router) Webhook(ctx context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		upd, err := r.Bot.HandleUpdate(c.Request)
		if err != nil {
			r.Log.Warn("bad webhook payload", zap.Error(err))
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
		go r.HandleUpdate(ctx, *upd)
	}
}
