package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"calc-vision/api/internal/analyze"
)

const maxReplyRunes = 3900

// ImageAnalyzer is the part of the pipeline the bot needs: the image is
// already decoded, so only classify → extract → normalize remain.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, img *analyze.Image, vars map[string]float64) []analyze.Record
}

type Router struct {
	Bot      *tgbotapi.BotAPI
	Analyzer ImageAnalyzer
	Model    string
	Log      *zap.Logger

	// FileEndpoint is the download URL format (token, file path);
	// empty means tgbotapi.FileEndpoint.
	FileEndpoint string
}

func (r *Router) HandleCommand(msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	switch msg.Command() {
	case "start", "help":
		r.send(cid, "Пришли фото с выражением или рисунком — верну разбор.\n"+
			"В подписи можно задать переменные: x=3, y=4.5\n"+
			"Команды: /health")
	case "health":
		r.send(cid, "✅ OK ("+r.Model+")")
	default:
		r.send(cid, "Неизвестная команда")
	}
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}
	if msg.IsCommand() {
		r.HandleCommand(msg)
		return
	}

	switch {
	case len(msg.Photo) > 0:
		// последний размер самый крупный
		r.acceptImage(ctx, msg, msg.Photo[len(msg.Photo)-1].FileID, "")
	case msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/"):
		r.acceptImage(ctx, msg, msg.Document.FileID, msg.Document.MimeType)
	case msg.Text != "":
		r.send(msg.Chat.ID, "Нужно фото. Переменные — в подписи к нему.")
	}
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn("send message failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) SendResult(chatID int64, text string) {
	r.send(chatID, "📝 Результат:\n\n"+truncateReply(text))
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, fmt.Sprintf("Ошибка: %v", err))
}
