package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tutoro/services-feed/internal/models/po"
	"github.com/tutoro/services-feed/internal/txmanager"

	"github.com/go-kratos/kratos/v2/log"
)

// RecordActivityInput 描述写路径的追加参数。
type RecordActivityInput struct {
	TenantID       int64
	Category       string
	Action         string
	Title          string
	Status         string
	Source         string
	Details        string
	Payload        []byte
	StudentID      int64
	LessonID       int64
	HomeworkID     int64
	IdempotencyKey string
	OccurredAt     time.Time
}

// RecordActivityResult 汇总追加结果。幂等键冲突时 AlreadyRecorded 为 true，
// 调用方无法也无需区分"已写入"与"本来就在"。
type RecordActivityResult struct {
	ID              int64
	AlreadyRecorded bool
}

// ActivityService 实现 Activity 日志的最小追加契约。
type ActivityService struct {
	activity ActivityLogRepository
	tx       *txmanager.Manager
	log      *log.Helper
}

// NewActivityService 构造 ActivityService。
func NewActivityService(activity ActivityLogRepository, tx *txmanager.Manager, logger log.Logger) *ActivityService {
	return &ActivityService{
		activity: activity,
		tx:       tx,
		log:      log.NewHelper(logger),
	}
}

// Record 追加一条 Activity 记录。幂等键冲突按成功的空操作处理，
// 重试写入不会在 Feed 里产生重复条目。
func (s *ActivityService) Record(ctx context.Context, input RecordActivityInput) (*RecordActivityResult, error) {
	evt := po.NewActivityEvent(po.AppendActivityParams{
		TenantID:       input.TenantID,
		Category:       input.Category,
		Action:         input.Action,
		Title:          input.Title,
		Status:         input.Status,
		Source:         input.Source,
		Details:        input.Details,
		Payload:        input.Payload,
		StudentID:      input.StudentID,
		LessonID:       input.LessonID,
		HomeworkID:     input.HomeworkID,
		IdempotencyKey: input.IdempotencyKey,
		OccurredAt:     input.OccurredAt,
	})

	result := &RecordActivityResult{}
	err := s.tx.Within(ctx, func(ctx context.Context, sess txmanager.Session) error {
		created, inserted, err := s.activity.Insert(ctx, sess, evt)
		if err != nil {
			return fmt.Errorf("append activity: %w", err)
		}
		if !inserted {
			result.AlreadyRecorded = true
			return nil
		}
		result.ID = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.AlreadyRecorded {
		s.log.WithContext(ctx).Infow("msg", "activity append deduplicated", "tenant_id", input.TenantID, "idempotency_key", input.IdempotencyKey)
	}
	return result, nil
}
