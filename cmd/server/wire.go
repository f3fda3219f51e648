//go:build wireinject
// +build wireinject

package main

import (
	"github.com/tutoro/services-feed/internal/config"
	"github.com/tutoro/services-feed/internal/controllers"
	"github.com/tutoro/services-feed/internal/repositories"
	"github.com/tutoro/services-feed/internal/services"
	"github.com/tutoro/services-feed/internal/txmanager"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

func initApp(cfg *config.Config, pool *pgxpool.Pool, logger log.Logger) (*app, error) {
	panic(wire.Build(
		txmanager.NewManager,
		repositories.NewActivityLogRepository,
		repositories.ProvideActivityLogRepository,
		repositories.NewPaymentLogRepository,
		repositories.ProvidePaymentLogRepository,
		repositories.NewNotificationLogRepository,
		repositories.ProvideNotificationLogRepository,
		repositories.NewDirectoryRepository,
		repositories.ProvideDirectoryRepository,
		services.NewFeedService,
		services.NewActivityService,
		controllers.ProviderSet,
		provideHandlerTimeouts,
		provideServerOptions,
		controllers.NewHTTPServer,
		newApp,
	))
}
