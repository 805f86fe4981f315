package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/config"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// New builds the echo instance with validator, logging and every route.
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.NewRequestValidator()
	e.Logger.SetLevel(ParseLogLevel(cfg.LogLevel))

	e.Use(echomw.Recover())
	if cfg.GoEnv != "test" {
		e.Use(echomw.Logger())
	}

	RegisterRoutes(e, cfg, h)
	return e
}

func ParseLogLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Start blocks until ctx is cancelled, then shuts the server down.
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return e.Shutdown(context.Background())
	}
}
