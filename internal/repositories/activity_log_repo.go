package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutoro/services-feed/internal/models/po"
	"github.com/tutoro/services-feed/internal/repositories/feeddb"
	"github.com/tutoro/services-feed/internal/repositories/mappers"
	"github.com/tutoro/services-feed/internal/services"
	"github.com/tutoro/services-feed/internal/txmanager"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityLogRepository 负责 feed.activity_log 的读写。
type ActivityLogRepository struct {
	db      *pgxpool.Pool
	queries *feeddb.Queries
	log     *log.Helper
}

// NewActivityLogRepository 构造仓储实例。
func NewActivityLogRepository(db *pgxpool.Pool, logger log.Logger) *ActivityLogRepository {
	return &ActivityLogRepository{
		db:      db,
		queries: feeddb.New(db),
		log:     log.NewHelper(logger),
	}
}

// List 按租户返回时间倒序的 Activity 记录。
func (r *ActivityLogRepository) List(ctx context.Context, sess txmanager.Session, params services.ListActivityEventsParams) ([]*po.ActivityEvent, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	categories := make([]string, 0, len(params.Categories))
	for _, category := range params.Categories {
		categories = append(categories, string(category))
	}
	rows, err := queries.ListActivityEvents(ctx, feeddb.ListActivityEventsParams{
		TenantID:       params.TenantID,
		StudentID:      mappers.ToPgInt8(params.StudentID),
		OccurredFrom:   mappers.ToPgTimestamptzPtr(params.From),
		OccurredTo:     mappers.ToPgTimestamptzPtr(params.To),
		OccurredBefore: mappers.ToPgTimestamptzPtr(params.Before),
		Categories:     categories,
		RowLimit:       int32(params.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list activity events: %w", err)
	}
	result := make([]*po.ActivityEvent, 0, len(rows))
	for _, row := range rows {
		result = append(result, mappers.ActivityEventFromRow(row))
	}
	return result, nil
}

// Insert 追加一条 Activity 记录。幂等键与既有记录冲突时不写入，
// 返回 created=false 而非错误。
func (r *ActivityLogRepository) Insert(ctx context.Context, sess txmanager.Session, evt po.ActivityEvent) (*po.ActivityEvent, bool, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	row, err := queries.InsertActivityEvent(ctx, feeddb.InsertActivityEventParams{
		TenantID:       evt.TenantID,
		Category:       evt.Category,
		Action:         evt.Action,
		Status:         mappers.ToPgText(evt.Status),
		Source:         mappers.ToPgText(evt.Source),
		Title:          evt.Title,
		Details:        mappers.ToPgText(evt.Details),
		Payload:        evt.Payload,
		StudentID:      mappers.ToPgInt8(evt.StudentID),
		LessonID:       mappers.ToPgInt8(evt.LessonID),
		HomeworkID:     mappers.ToPgInt8(evt.HomeworkID),
		IdempotencyKey: mappers.ToPgText(evt.IdempotencyKey),
		OccurredAt:     mappers.ToPgTimestamptz(evt.OccurredAt),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		r.log.WithContext(ctx).Errorw("msg", "insert activity event failed", "tenant_id", evt.TenantID, "error", err)
		return nil, false, fmt.Errorf("insert activity event: %w", err)
	}
	return mappers.ActivityEventFromRow(row), true, nil
}

var _ services.ActivityLogRepository = (*ActivityLogRepository)(nil)
