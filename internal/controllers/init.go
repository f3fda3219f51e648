// Package controllers 提供传输层 Handler，负责处理外部请求并调用业务层。
// 该层负责参数校验、DTO 转换和错误映射。
package controllers

import (
	"github.com/google/wire"
	"github.com/tutoro/services-feed/internal/services"
)

// ProvideFeedServiceAPI adapts FeedService into FeedServiceAPI for dependency injection.
func ProvideFeedServiceAPI(s *services.FeedService) FeedServiceAPI { return s }

// ProvideActivityServiceAPI adapts ActivityService into ActivityServiceAPI for dependency injection.
func ProvideActivityServiceAPI(s *services.ActivityService) ActivityServiceAPI { return s }

// ProviderSet collects controller constructors for Wire DI.
var ProviderSet = wire.NewSet(
	NewBaseHandler,
	ProvideFeedServiceAPI,
	NewFeedHandler,
	ProvideActivityServiceAPI,
	NewActivityHandler,
)
