package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tutoro/services-feed/internal/models/po"
	"github.com/tutoro/services-feed/internal/models/vo"
	"github.com/tutoro/services-feed/internal/txmanager"
)

// ListSourceEventsParams 是三个来源日志共用的查询条件。
// Before 是游标推进时附加的时间上界（含边界，同毫秒并列由内存侧决胜）。
type ListSourceEventsParams struct {
	TenantID  int64
	StudentID *int64
	From      *time.Time
	To        *time.Time
	Before    *time.Time
	Limit     int
}

// ListActivityEventsParams 在共用条件上增加 Activity 独有的分类过滤。
// Categories 为空表示不过滤。
type ListActivityEventsParams struct {
	ListSourceEventsParams
	Categories []vo.Category
}

// ActivityLogRepository 抽象 Activity 日志的读写能力。
type ActivityLogRepository interface {
	List(ctx context.Context, sess txmanager.Session, params ListActivityEventsParams) ([]*po.ActivityEvent, error)
	// Insert 返回落库后的记录；幂等键冲突时 created 为 false 且记录为 nil。
	Insert(ctx context.Context, sess txmanager.Session, evt po.ActivityEvent) (*po.ActivityEvent, bool, error)
}

// PaymentLogRepository 抽象支付日志的读取能力。
type PaymentLogRepository interface {
	List(ctx context.Context, sess txmanager.Session, params ListSourceEventsParams) ([]*po.PaymentEvent, error)
}

// NotificationLogRepository 抽象通知投递日志的读取能力。
type NotificationLogRepository interface {
	List(ctx context.Context, sess txmanager.Session, params ListSourceEventsParams) ([]*po.NotificationEvent, error)
}

// DirectoryRepository 抽象补水所需的目录投影读取能力。
type DirectoryRepository interface {
	StudentNames(ctx context.Context, sess txmanager.Session, ids []int64) (map[int64]string, error)
	LessonStartTimes(ctx context.Context, sess txmanager.Session, ids []int64) (map[int64]time.Time, error)
}

// DirectoryProjectionRepository 抽象目录投影的写入能力，由 Inbox 投影器使用。
type DirectoryProjectionRepository interface {
	UpsertStudent(ctx context.Context, sess txmanager.Session, projection po.StudentProjection) error
	UpsertLesson(ctx context.Context, sess txmanager.Session, projection po.LessonProjection) error
}

// InboxRepository 抽象上游事件 Inbox 的消费状态管理。
type InboxRepository interface {
	ListUnprocessed(ctx context.Context, sess txmanager.Session, limit int) ([]*po.InboxEvent, error)
	MarkProcessed(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, processedAt *time.Time) error
	RecordError(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, lastError string) error
}

// ErrSourceUnavailable 表示某个来源日志查询失败，整个请求按失败处理。
var ErrSourceUnavailable = errors.New("feed source unavailable")
