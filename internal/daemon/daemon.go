package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"filmlog/internal/bot"
	"filmlog/internal/config"
	"filmlog/internal/watchlist"
)

// Daemon runs the bot poll loop and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *watchlist.Store
	bot    *bot.Bot

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *watchlist.Store, b *bot.Bot, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || b == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, bot, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "filmlogd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		bot:      b,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the poll loop.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another filmlog daemon instance is already running")
	}

	health, err := d.store.CheckHealth(ctx)
	if err != nil {
		if unlockErr := d.lock.Unlock(); unlockErr != nil {
			d.logger.Warn("release lock", "error", unlockErr)
		}
		return fmt.Errorf("watchlist database health: %w", err)
	}
	d.logger.Info("watchlist database healthy",
		"path", health.DBPath,
		"table_exists", health.TableExists)

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running.Store(true)

	go func() {
		defer close(d.done)
		if err := d.bot.Run(runCtx, d.cfg.Telegram.PollTimeoutSeconds); err != nil {
			d.logger.Error("bot loop exited", "error", err)
		}
	}()

	d.logger.Info("filmlog daemon started", "lock", d.lockPath)
	return nil
}

// Stop cancels the poll loop, waits for in-flight handlers, and releases the
// lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running.Load() {
		return
	}
	d.cancel()
	<-d.done
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release lock", "error", err)
	}
	d.running.Store(false)
	d.logger.Info("filmlog daemon stopped")
}

// Running reports whether the poll loop is active.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Close stops the daemon and closes the store.
func (d *Daemon) Close() error {
	d.Stop()
	return d.store.Close()
}
