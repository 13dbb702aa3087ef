package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryDelayFromError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want time.Duration
	}{
		{name: "nil", err: nil, want: 0},
		{name: "429 with retry after", err: errors.New("Too Many Requests: retry after 7"), want: 7 * time.Second},
		{name: "429 without hint", err: errors.New("Too Many Requests"), want: 3 * time.Second},
		{name: "network timeout", err: timeoutErr{}, want: 2 * time.Second},
		{name: "other", err: errors.New("Bad Gateway"), want: 1 * time.Second},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, retryDelayFromError(tc.err))
		})
	}
}

type fakeSource struct {
	mu      sync.Mutex
	offsets []int
	steps   []func() ([]tgbotapi.Update, error)
}

func (f *fakeSource) GetUpdates(cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offsets = append(f.offsets, cfg.Offset)
	if len(f.steps) == 0 {
		return nil, nil
	}
	step := f.steps[0]
	f.steps = f.steps[1:]
	return step()
}

func TestRunPollingAdvancesOffsetAndRetries(t *testing.T) {
	oldBase := pollBaseDelay
	pollBaseDelay = time.Millisecond
	t.Cleanup(func() { pollBaseDelay = oldBase })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &fakeSource{steps: []func() ([]tgbotapi.Update, error){
		func() ([]tgbotapi.Update, error) {
			return []tgbotapi.Update{{UpdateID: 5}, {UpdateID: 6}}, nil
		},
		func() ([]tgbotapi.Update, error) {
			return nil, errors.New("Bad Gateway")
		},
		func() ([]tgbotapi.Update, error) {
			cancel()
			return nil, nil
		},
	}}

	var handled []int
	done := make(chan struct{})
	go func() {
		RunPolling(ctx, src, zap.NewNop(), func(u tgbotapi.Update) {
			handled = append(handled, u.UpdateID)
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop after cancel")
	}

	assert.Equal(t, []int{5, 6}, handled)
	require.Len(t, src.offsets, 3)
	assert.Equal(t, []int{0, 7, 7}, src.offsets)
}

func TestRunPollingStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{}
	RunPolling(ctx, src, zap.NewNop(), func(tgbotapi.Update) {})
	assert.Empty(t, src.offsets)
}
