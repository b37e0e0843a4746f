package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/vradovic/fakebench/internal/apperr"
	"github.com/vradovic/fakebench/internal/router"
	"github.com/vradovic/fakebench/internal/server"
	"github.com/vradovic/fakebench/internal/storage/pg"
)

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		slog.Error("Failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	e.HideBanner = true

	s := server.NewServer(e, cfg)

	e.GET("/", func(c echo.Context) error {
		return c.String(200, "fakebench report API is running")
	})
	e.GET("/healthz", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return echo.NewHTTPError(503, "database unreachable")
		}
		return c.String(200, "ok")
	})

	store := pg.NewRunStore(pool)
	router.NewRunsRouter(e, store).Bind()
	router.NewEvaluateRouter(e).Bind()

	if err := s.Start(); err != nil {
		e.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
