// Command cartsweep deletes carts older than CART_TTL. Run it from cron.
package main

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/infra/db"
	infrarepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/labstack/gommon/log"
)

func main() {
	logger := log.New("cartsweep")
	if err := run(logger); err != nil {
		logger.Fatal(err)
	}
}

func run(logger *log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.SetLevel(server.ParseLogLevel(cfg.LogLevel))

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	carts := usecase.NewCartUsecase(infrarepo.NewTxRepos(gormDB))
	cutoff := time.Now().Add(-cfg.CartTTL)
	n, err := carts.SweepExpired(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	logger.Infof("deleted %d carts created before %s", n, cutoff.Format(time.RFC3339))
	return nil
}
