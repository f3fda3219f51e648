// 目录投影 Inbox 轮询任务入口。
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tutoro/services-feed/internal/config"
	"github.com/tutoro/services-feed/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

type task struct {
	directory *services.DirectoryService
}

func newTask(directory *services.DirectoryService) *task {
	return &task{directory: directory}
}

func main() {
	logger := log.With(log.NewStdLogger(os.Stdout), "service", "feed-directory-inbox")
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

	t, err := initTask(pool, logger)
	if err != nil {
		helper.Errorw("msg", "init task failed", "error", err)
		os.Exit(1)
	}

	helper.Infow("msg", "inbox poller started", "interval", cfg.InboxPollInterval.String(), "batch_size", cfg.InboxBatchSize)
	if err := t.directory.Run(ctx, cfg.InboxPollInterval, cfg.InboxBatchSize); err != nil && ctx.Err() == nil {
		helper.Errorw("msg", "inbox poller failed", "error", err)
		os.Exit(1)
	}
	helper.Infow("msg", "inbox poller stopped")
}
