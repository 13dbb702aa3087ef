package telegram

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// UpdateSource is satisfied by *tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

var (
	pollBaseDelay = 1 * time.Second
	pollMaxDelay  = 15 * time.Second
	pollIdleDelay = 200 * time.Millisecond
)

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 от Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

// RunPolling крутит long polling до отмены ctx; ошибки API не фатальны,
// между попытками backoff в пределах [pollBaseDelay, pollMaxDelay].
func RunPolling(ctx context.Context, src UpdateSource, logger *zap.Logger, handle func(tgbotapi.Update)) {
	offset := 0
	for {
		if ctx.Err() != nil {
			logger.Info("polling stopped")
			return
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := src.GetUpdates(u)
		if err != nil {
			d := retryDelayFromError(err)
			if d < pollBaseDelay {
				d = pollBaseDelay
			}
			if d > pollMaxDelay {
				d = pollMaxDelay
			}
			logger.Warn("polling error", zap.Error(err), zap.Duration("retry_in", d))
			if !sleep(ctx, d) {
				logger.Info("polling stopped")
				return
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 && !sleep(ctx, pollIdleDelay) {
			logger.Info("polling stopped")
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
