package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zlib_opds_proxy/config"
	redisClient "zlib_opds_proxy/data/redis"
	"zlib_opds_proxy/data/session"
	"zlib_opds_proxy/internal/downloader"
	"zlib_opds_proxy/internal/parser"
	"zlib_opds_proxy/internal/service/bestsellerService"
	"zlib_opds_proxy/internal/service/opdsService"
	"zlib_opds_proxy/internal/transport/httpapi"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := mustLoadSessionStore(ctx, cfg)
	if store.Len() == 0 {
		slog.Warn("session store is empty, remote site will likely answer with a login page")
	}

	booksParser := parser.NewZlibParser(cfg, store)

	opds := opdsService.New(cfg, booksParser)

	bestsellers := bestsellerService.New(cfg)

	fileDownloader := downloader.NewFileDownloader(cfg, store)

	controller := httpapi.NewController(cfg, opds, bestsellers, fileDownloader, store)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpapi.NewServer(cfg, controller),
	}

	go func() {
		slog.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	<-interrupt

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.String("err", err.Error()))
	}
}

// mustLoadSessionStore reads the persisted login cookies once; the store is
// immutable afterwards. Renewal is the external login step's business.
func mustLoadSessionStore(ctx context.Context, cfg *config.Config) *session.Store {
	var (
		store *session.Store
		err   error
	)

	switch cfg.Session.Source {
	case "redis":
		rdb := redisClient.MustInitRedis(cfg)
		defer rdb.Close()
		store, err = session.LoadFromRedis(ctx, rdb, cfg.Session.RedisKey)
	default:
		store, err = session.LoadFromFile(cfg.Session.CookieFile)
	}

	if err != nil {
		slog.Error("failed to load session credentials", slog.String("err", err.Error()))
		os.Exit(1)
	}

	return store
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
