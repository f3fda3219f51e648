// Package repositories 提供数据访问层，封装 feed schema 各表的读写。
// 该层负责 SQL 调用、pgtype 转换和事务会话透传。
package repositories

import (
	"github.com/tutoro/services-feed/internal/services"
)

// ProvideActivityLogRepository adapts the concrete repo to the service-layer interface.
func ProvideActivityLogRepository(r *ActivityLogRepository) services.ActivityLogRepository {
	return r
}

// ProvidePaymentLogRepository adapts the concrete repo to the service-layer interface.
func ProvidePaymentLogRepository(r *PaymentLogRepository) services.PaymentLogRepository {
	return r
}

// ProvideNotificationLogRepository adapts the concrete repo to the service-layer interface.
func ProvideNotificationLogRepository(r *NotificationLogRepository) services.NotificationLogRepository {
	return r
}

// ProvideDirectoryRepository adapts the concrete repo to the read-side interface.
func ProvideDirectoryRepository(r *DirectoryRepository) services.DirectoryRepository {
	return r
}

// ProvideDirectoryProjectionRepository adapts the concrete repo to the write-side interface.
func ProvideDirectoryProjectionRepository(r *DirectoryRepository) services.DirectoryProjectionRepository {
	return r
}

// ProvideInboxRepository adapts the concrete repo to the service-layer interface.
func ProvideInboxRepository(r *InboxRepository) services.InboxRepository {
	return r
}
