package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"filmlog/internal/bot"
	"filmlog/internal/catalog"
	"filmlog/internal/catalog/tmdb"
	"filmlog/internal/config"
	"filmlog/internal/daemon"
	"filmlog/internal/extract"
	"filmlog/internal/ingest"
	"filmlog/internal/logging"
	"filmlog/internal/notifications"
	"filmlog/internal/telegram"
	"filmlog/internal/watchlist"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := watchlist.Open(cfg)
	if err != nil {
		logger.Error("open watchlist store", "error", err)
		return
	}

	extractor, err := extract.FromConfig(cfg, logger)
	if err != nil {
		logger.Error("build extractor", "error", err)
		return
	}

	searcher, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		logger.Error("build tmdb client", "error", err)
		return
	}
	resolver, err := catalog.NewResolver(searcher)
	if err != nil {
		logger.Error("build resolver", "error", err)
		return
	}

	api, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.BaseURL, cfg.Telegram.MessagesPerSecond)
	if err != nil {
		logger.Error("build telegram client", "error", err)
		return
	}

	pipeline := ingest.NewPipeline(extractor, resolver, store, logging.WithComponent(logger, "ingest"))
	notifier := notifications.NewService(cfg)
	b := bot.New(api, pipeline, store, notifier, logging.WithComponent(logger, "bot"))

	d, err := daemon.New(cfg, store, b, logging.WithComponent(logger, "daemon"))
	if err != nil {
		logger.Error("create daemon", "error", err)
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", "error", err)
		return
	}

	<-ctx.Done()
	logger.Info("filmlogd shutting down")
}
