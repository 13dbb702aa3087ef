package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"calc-vision/api/internal/analyze"
	"calc-vision/api/internal/util"
)

// Telegram bots may download files up to 20 MB.
const maxDownloadBytes = 20 << 20

var httpClient = &http.Client{Timeout: 60 * time.Second}

func (r *Router) acceptImage(ctx context.Context, msg *tgbotapi.Message, fileID, fileMIME string) {
	cid := msg.Chat.ID
	log := r.Log.With(zap.Int64("chat_id", cid), zap.Int("message_id", msg.MessageID))

	vars, err := ParseVariables(msg.Caption)
	if err != nil {
		r.send(cid, "Не понял переменные в подписи: "+err.Error()+"\nФормат: x=3, y=4.5")
		return
	}

	url, err := r.fileURL(fileID)
	if err != nil {
		log.Error("get file url failed", zap.Error(err))
		r.SendError(cid, err)
		return
	}
	raw, err := download(ctx, url)
	if err != nil {
		log.Error("download failed", zap.Error(err))
		r.SendError(cid, err)
		return
	}

	img, err := analyze.NewImage(raw, fileMIME)
	if err != nil {
		log.Warn("unreadable image", zap.Error(err))
		r.send(cid, "Не удалось прочитать изображение. Пришли фото ещё раз.")
		return
	}

	_, _ = r.Bot.Request(tgbotapi.NewChatAction(cid, tgbotapi.ChatTyping))

	records := r.Analyzer.AnalyzeImage(ctx, img, vars)
	log.Info("image analyzed",
		zap.String("format", img.Format),
		zap.Int("variables", len(vars)),
		zap.Int("records", len(records)),
	)
	r.SendResult(cid, FormatRecords(records))
}

func (r *Router) fileURL(fileID string) (string, error) {
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", err
	}
	endpoint := r.FileEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.FileEndpoint
	}
	return fmt.Sprintf(endpoint, r.Bot.Token, file.FilePath), nil
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download: status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
}

func truncateReply(s string) string {
	return util.Truncate(s, maxReplyRunes)
}
