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

// PaymentLogRepository 负责 feed.payment_log 的读取。该日志由计费侧追加，
// Feed 服务只读。
type PaymentLogRepository struct {
	db      *pgxpool.Pool
	queries *feeddb.Queries
	log     *log.Helper
}

// NewPaymentLogRepository 构造仓储实例。
func NewPaymentLogRepository(db *pgxpool.Pool, logger log.Logger) *PaymentLogRepository {
	return &PaymentLogRepository{
		db:      db,
		queries: feeddb.New(db),
		log:     log.NewHelper(logger),
	}
}

// List 按租户返回时间倒序的支付记录。
func (r *PaymentLogRepository) List(ctx context.Context, sess txmanager.Session, params services.ListSourceEventsParams) ([]*po.PaymentEvent, error) {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	rows, err := queries.ListPaymentEvents(ctx, feeddb.ListPaymentEventsParams{
		TenantID:      params.TenantID,
		StudentID:     mappers.ToPgInt8(params.StudentID),
		CreatedFrom:   mappers.ToPgTimestamptzPtr(params.From),
		CreatedTo:     mappers.ToPgTimestamptzPtr(params.To),
		CreatedBefore: mappers.ToPgTimestamptzPtr(params.Before),
		RowLimit:      int32(params.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list payment events: %w", err)
	}
	result := make([]*po.PaymentEvent, 0, len(rows))
	for _, row := range rows {
		result = append(result, mappers.PaymentEventFromRow(row))
	}
	return result, nil
}

var _ services.PaymentLogRepository = (*PaymentLogRepository)(nil)
