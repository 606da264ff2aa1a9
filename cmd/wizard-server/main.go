// Command wizard-server serves Wizard game sessions over HTTP and WebSocket.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeriks31/wizard-online/internal/server"
)

func main() {
	cfg := server.LoadConfig()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	var store *server.Store
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s, err := server.OpenStore(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			log.WithError(err).Fatal("failed to connect to database")
		}
		if err := s.Migrate(ctx); err != nil {
			cancel()
			log.WithError(err).Fatal("failed to apply schema")
		}
		cancel()
		store = s
		defer store.Close()
		log.Info("game recording enabled")
	} else {
		log.Info("DATABASE_URL not set, game recording disabled")
	}

	srv := server.NewServer(cfg, log, server.NewManager(log, store))
	httpSrv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownGrace)*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("shutdown did not complete cleanly")
		}
	}
}
