package repositories

import (
	"context"
	"fmt"

	"github.com/tutoro/services-feed/internal/models/po"
	"github.com/tutoro/services-feed/internal/repositories/feeddb"
	"github.com/tutoro/services-feed/internal/repositories/mappers"
	"github.com/tutoro/services-feed/internal/services"
	"github.com/tutoro/services-feed/internal/txmanager"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationLogRepository 负责 feed.notification_log 的读取。
// 时间过滤与排序都以实际发送时间优先，与归一化逻辑保持一致。
type NotificationLogRepository struct {
	db      *pgxpool.Pool
	queries *feeddb.Queries
	log     *log.Helper
}

// NewNotificationLogRepository 构造仓储实例。
func NewNotificationLogRepository(db *pgxpool.Pool, logger log.Logger) *NotificationLogRepository {
	return &NotificationLogRepository{
		db:      db,
		queries: feeddb.New(db),
		log:     log.NewHelper(logger),
	}
}

// List 按租户返回时间倒序的通知投递记录。
func (r *NotificationLogRepository) List(ctx context.Context, sess txmanager.Session, params services.ListSourceEventsParams) ([]*po.NotificationEvent, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	rows, err := queries.ListNotificationEvents(ctx, feeddb.ListNotificationEventsParams{
		TenantID:   params.TenantID,
		StudentID:  mappers.ToPgInt8(params.StudentID),
		SentFrom:   mappers.ToPgTimestamptzPtr(params.From),
		SentTo:     mappers.ToPgTimestamptzPtr(params.To),
		SentBefore: mappers.ToPgTimestamptzPtr(params.Before),
		RowLimit:   int32(params.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list notification events: %w", err)
	}
	result := make([]*po.NotificationEvent, 0, len(rows))
	for _, row := range rows {
		result = append(result, mappers.NotificationEventFromRow(row))
	}
	return result, nil
}

var _ services.NotificationLogRepository = (*NotificationLogRepository)(nil)
