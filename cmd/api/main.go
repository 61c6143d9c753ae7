package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/pos-inventario/internal/config"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg := config.Load()
	appLog := logger.NewLogger(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLog); err != nil {
		appLog.Error("servidor encerrado com erro", "erro", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, appLog logger.Logger) error {
	app, err := NewApp(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
