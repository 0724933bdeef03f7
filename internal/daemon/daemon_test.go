package daemon_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"filmlog/internal/bot"
	"filmlog/internal/daemon"
	"filmlog/internal/telegram"
	"filmlog/internal/testsupport"
)

type idleAPI struct{}

func (idleAPI) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]telegram.Update, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(10 * time.Millisecond):
		return nil, nil
	}
}

func (idleAPI) SendMessage(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) (*telegram.Message, error) {
	return &telegram.Message{}, nil
}

func (idleAPI) EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *telegram.InlineKeyboardMarkup) error {
	return nil
}

func (idleAPI) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	return nil
}

type idleIngestor struct{}

func (idleIngestor) Ingest(ctx context.Context, userID int64, text string) ([]string, error) {
	return nil, nil
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := bot.New(idleAPI{}, idleIngestor{}, store, nil, logger)

	d, err := daemon.New(cfg, store, b, logger)
	if err != nil {
		t.Fatalf("daemon.New failed: %v", err)
	}

	ctx := context.Background()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !d.Running() {
		t.Fatal("daemon should be running")
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("second Start should fail")
	}

	d.Stop()
	if d.Running() {
		t.Fatal("daemon should be stopped")
	}

	// Restart works once the lock is released.
	if err := d.Start(ctx); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	d.Stop()
}
