// Feed HTTP 服务入口。
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tutoro/services-feed/internal/config"
	"github.com/tutoro/services-feed/internal/controllers"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 10 * time.Second

type app struct {
	server *echo.Echo
}

func newApp(server *echo.Echo) *app {
	return &app{server: server}
}

func provideHandlerTimeouts(cfg *config.Config) controllers.HandlerTimeouts {
	return controllers.HandlerTimeouts{
		Query:    cfg.QueryTimeout,
		Mutation: cfg.MutationTimeout,
	}
}

func provideServerOptions(cfg *config.Config) controllers.ServerOptions {
	return controllers.ServerOptions{DisableReqLogs: cfg.DisableReqLogs}
}

func main() {
	logger := log.With(log.NewStdLogger(os.Stdout), "service", "feed")
	helper := log.NewHelper(logger)

	cfg, err := config.Load()
	if err != nil {
		helper.Errorw("msg", "load config failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		helper.Errorw("msg", "connect database failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	application, err := initApp(cfg, pool, logger)
	if err != nil {
		helper.Errorw("msg", "init app failed", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		if serveErr := application.server.Start(cfg.HTTPAddr); serveErr != nil && serveErr != http.ErrServerClosed {
			errCh <- serveErr
		}
	}()
	helper.Infow("msg", "http server started", "addr", cfg.HTTPAddr)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		helper.Errorw("msg", "http server failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.server.Shutdown(shutdownCtx); err != nil {
		helper.Errorw("msg", "http server shutdown failed", "error", err)
	}
	helper.Infow("msg", "http server stopped")
}
