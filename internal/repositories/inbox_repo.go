package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tutoro/services-feed/internal/models/po"
	"github.com/tutoro/services-feed/internal/repositories/feeddb"
	"github.com/tutoro/services-feed/internal/repositories/mappers"
	"github.com/tutoro/services-feed/internal/services"
	"github.com/tutoro/services-feed/internal/txmanager"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InboxRepository 管理 feed.inbox_events 的写入与消费状态。
// event_id 为上游事件的全局唯一标识，重复投递靠主键冲突吞掉。
type InboxRepository struct {
	db      *pgxpool.Pool
	queries *feeddb.Queries
	log     *log.Helper
}

// NewInboxRepository 构造仓储实例。
func NewInboxRepository(db *pgxpool.Pool, logger log.Logger) *InboxRepository {
	return &InboxRepository{
		db:      db,
		queries: feeddb.New(db),
		log:     log.NewHelper(logger),
	}
}

// Insert 落库一条上游事件，event_id 冲突时静默忽略。
// ReceivedAt 为零值时由数据库写入当前时间。
func (r *InboxRepository) Insert(ctx context.Context, sess txmanager.Session, evt po.InboxEvent) error {
	eventID, err := uuid.Parse(evt.EventID)
	if err != nil {
		return fmt.Errorf("parse inbox event id: %w", err)
	}
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	receivedAt := pgtype.Timestamptz{}
	if !evt.ReceivedAt.IsZero() {
		receivedAt = mappers.ToPgTimestamptz(evt.ReceivedAt)
	}
	err = queries.InsertInboxEvent(ctx, feeddb.InsertInboxEventParams{
		EventID:       eventID,
		SourceService: evt.SourceService,
		EventType:     evt.EventType,
		AggregateType: mappers.ToPgText(evt.AggregateType),
		AggregateID:   mappers.ToPgText(evt.AggregateID),
		Payload:       evt.Payload,
		Column7:       receivedAt,
	})
	if err != nil {
		return fmt.Errorf("insert inbox event: %w", err)
	}
	return nil
}

// Get 按事件 ID 查询单条记录。
func (r *InboxRepository) Get(ctx context.Context, sess txmanager.Session, eventID uuid.UUID) (*po.InboxEvent, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	row, err := queries.GetInboxEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get inbox event: %w", err)
	}
	return mappers.InboxEventFromRow(row), nil
}

// ListUnprocessed 按接收顺序返回尚未处理的事件。
func (r *InboxRepository) ListUnprocessed(ctx context.Context, sess txmanager.Session, limit int) ([]*po.InboxEvent, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	rows, err := queries.ListUnprocessedInboxEvents(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list unprocessed inbox events: %w", err)
	}
	result := make([]*po.InboxEvent, 0, len(rows))
	for _, row := range rows {
		result = append(result, mappers.InboxEventFromRow(row))
	}
	return result, nil
}

// MarkProcessed 标记事件处理完成并清除错误，processedAt 为 nil 时取数据库当前时间。
func (r *InboxRepository) MarkProcessed(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, processedAt *time.Time) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	err := queries.MarkInboxProcessed(ctx, feeddb.MarkInboxProcessedParams{
		EventID:     eventID,
		ProcessedAt: mappers.ToPgTimestamptzPtr(processedAt),
	})
	if err != nil {
		return fmt.Errorf("mark inbox processed: %w", err)
	}
	return nil
}

// RecordError 在事件行上记录最近一次处理失败的原因。
func (r *InboxRepository) RecordError(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, lastError string) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	err := queries.RecordInboxError(ctx, feeddb.RecordInboxErrorParams{
		EventID:   eventID,
		LastError: pgtype.Text{String: lastError, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("record inbox error: %w", err)
	}
	return nil
}

var _ services.InboxRepository = (*InboxRepository)(nil)
