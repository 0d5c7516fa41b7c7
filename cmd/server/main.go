package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ubloom/engine/internal/config"
	"github.com/ubloom/engine/internal/container"
	"github.com/ubloom/engine/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Logger().WithError(err).Fatal("Failed to load configuration")
	}
	config.Init(cfg.LogLevel)
	log := config.Logger()

	c, err := container.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to wire engine")
	}

	if err := c.Clock.Start(); err != nil {
		log.WithError(err).Fatal("Failed to start engine clock")
	}

	handler := router.New(router.RouterConfig{
		ProgressHandler:   c.ProgressContainer.Handler,
		GoalHandler:       c.GoalContainer.Handler,
		JournalHandler:    c.JournalContainer.Handler,
		ReflectionHandler: c.ReflectionContainer.Handler,
		ShopHandler:       c.ShopContainer.Handler,
		SessionHandler:    c.SessionHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Engine listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	c.Clock.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}

	// Final best-effort save so a clean exit never loses the day's progress.
	if err := c.ProgressContainer.Service.Persist(context.Background()); err != nil {
		log.WithError(err).Warn("Final progress save failed")
	}
}
