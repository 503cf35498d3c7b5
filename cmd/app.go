package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"bloodlink/internal/components"
	"bloodlink/internal/config"
)

func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := components.SetupLogger(cfg.Env)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	comps, err := components.InitComponents(ctx, cfg, logger)
	if err != nil {
		logger.Error("could not init components", slog.Any("error", err))
		return err
	}

	comps.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := comps.Server.Run(ctx); err != nil {
			logger.Error("http server failed", slog.Any("error", err))
		}
		logger.Info("http server stopped")
	}()

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChan

	stop()
	logger.Info("captured signal, initiating shutdown", slog.String("signal", sig.String()))

	wg.Wait()

	comps.ShutdownAll()
	logger.Info("gracefully shut down")

	return nil
}
