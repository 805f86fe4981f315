package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/infra/db"
	"storefront/internal/infra/mq"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/labstack/gommon/log"
)

func main() {
	logger := log.New("api")
	if err := run(logger); err != nil {
		logger.Fatal(err)
	}
}

// run returns instead of exiting so deferred closes always happen.
func run(logger *log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.SetLevel(server.ParseLogLevel(cfg.LogLevel))

	//database
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}

	// an unset RABBITMQ_URL disables order events
	var publisher usecase.OrderEventPublisher
	if cfg.RabbitMQURL != "" {
		p, err := mq.NewPublisher(cfg.RabbitMQURL, cfg.Currency)
		if err != nil {
			return fmt.Errorf("rabbitmq: %w", err)
		}
		defer p.Close()
		publisher = p
	}

	handlers, authUC := server.Wire(cfg, gormDB, publisher, log.New("order"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := authUC.SeedStaff(ctx, cfg.SeedStaffEmail, cfg.SeedStaffPassword); err != nil {
		return fmt.Errorf("seed staff: %w", err)
	}

	//serve
	e := server.New(cfg, handlers)
	if err := server.Start(ctx, e, ":"+cfg.Port); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
