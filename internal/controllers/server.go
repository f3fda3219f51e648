package controllers

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ServerOptions 配置 HTTP 服务。
type ServerOptions struct {
	DisableReqLogs bool
}

// NewHTTPServer 组装 echo 实例并挂载全部路由。
func NewHTTPServer(opts ServerOptions, feed *FeedHandler, activity *ActivityHandler) *echo.Echo {
	app := echo.New()
	app.HideBanner = true

	app.Pre(middleware.RemoveTrailingSlash())
	if !opts.DisableReqLogs {
		app.Use(middleware.Logger())
	}
	app.Use(middleware.Recover())

	v1 := app.Group("/v1")
	feed.Register(v1)
	activity.Register(v1)

	return app
}
