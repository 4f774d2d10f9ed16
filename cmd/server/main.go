package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"scoreboard/internal/app"
	"scoreboard/internal/config"
	"scoreboard/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	server, err := app.NewServer(cfg)
	if err != nil {
		logger.Log.Fatal("init server", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Log.Error("shutdown", zap.Error(err))
		}
	}()

	if err := server.Start(); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
