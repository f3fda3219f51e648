//go:build wireinject
// +build wireinject

package main

import (
	"github.com/tutoro/services-feed/internal/repositories"
	"github.com/tutoro/services-feed/internal/services"
	"github.com/tutoro/services-feed/internal/txmanager"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

func initTask(pool *pgxpool.Pool, logger log.Logger) (*task, error) {
	panic(wire.Build(
		txmanager.NewManager,
		repositories.NewInboxRepository,
		repositories.ProvideInboxRepository,
		repositories.NewDirectoryRepository,
		repositories.ProvideDirectoryProjectionRepository,
		services.NewDirectoryService,
		newTask,
	))
}
