package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lg/peso-certo-api/internal/clock"
	"lg/peso-certo-api/internal/flow"
	"lg/peso-certo-api/internal/store"
)

func main() {
	boot, err := zap.NewProduction()
	if err != nil {
		boot = zap.NewNop()
	}
	cfg := loadConfig(boot)

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("Unable to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer storage.Close()
	log.Info("Storage ready", zap.String("driver", cfg.Storage.Driver))

	app := flow.New(flow.Options{
		Clock:     clock.System{Location: cfg.Location},
		Scheduler: clock.Ticker{},
		Gateway:   store.NewGateway(storage, log.Named("store")),
		Logger:    log.Named("flow"),
	})
	app.Start(ctx)
	defer app.Close()

	h := newHandler(app, log.Named("api"), cfg.PasscodeHash, cfg.Token)
	if !h.authEnabled() {
		log.Info("No passcode configured, API is open on " + cfg.Host)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           newRouter(h, cfg.CORSOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown failed", zap.Error(err))
	}
	h.closeStreams()
}
