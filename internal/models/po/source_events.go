// Package po 定义 Feed 服务的数据持久化结构体。
package po

import "time"

// ActivityEvent 表示 feed.activity_log 中的一条通用操作记录。
type ActivityEvent struct {
	ID             int64
	TenantID       int64
	Category       string
	Action         string
	Status         *string
	Source         *string
	Title          string
	Details        *string
	Payload        []byte
	StudentID      *int64
	LessonID       *int64
	HomeworkID     *int64
	IdempotencyKey *string
	OccurredAt     time.Time
	CreatedAt      time.Time
}

// 支付事件类型与原因，由计费侧写入。
const (
	PaymentTypeTopUp      = "TOPUP"
	PaymentTypeCharge     = "CHARGE"
	PaymentTypeReversal   = "REVERSAL"
	PaymentTypeAdjustment = "ADJUSTMENT"

	PaymentReasonRefund = "refund"
)

// PaymentEvent 表示 feed.payment_log 中的一条余额变动记录。
// LessonsDelta 以课时数计，正数为入账。
type PaymentEvent struct {
	ID           int64
	TenantID     int64
	StudentID    int64
	LessonID     *int64
	Type         string
	Reason       *string
	LessonsDelta int32
	Payload      []byte
	CreatedAt    time.Time
}

// 通知投递状态与触发方式。
const (
	NotificationStatusFailed = "FAILED"

	NotificationTriggerManual = "MANUAL"
	NotificationTriggerAuto   = "AUTO"
)

// NotificationEvent 表示 feed.notification_log 中的一条投递记录。
// SentAt 为实际发送时间，入库时间是 CreatedAt。
type NotificationEvent struct {
	ID        int64
	TenantID  int64
	StudentID *int64
	LessonID  *int64
	Type      string
	Trigger   string
	Channel   string
	Status    string
	Payload   []byte
	SentAt    *time.Time
	CreatedAt time.Time
}

// StudentProjection 是学生目录在本服务内的投影，仅保留展示所需字段。
type StudentProjection struct {
	StudentID   int64
	TenantID    int64
	DisplayName string
	Version     int64
	UpdatedAt   time.Time
}

// LessonProjection 是课程安排在本服务内的投影。
type LessonProjection struct {
	LessonID  int64
	TenantID  int64
	StudentID *int64
	StartsAt  time.Time
	Version   int64
	UpdatedAt time.Time
}

// InboxEvent 记录上游领域事件的消费状态。
type InboxEvent struct {
	EventID       string
	SourceService string
	EventType     string
	AggregateType *string
	AggregateID   *string
	Payload       []byte
	ReceivedAt    time.Time
	ProcessedAt   *time.Time
	LastError     *string
}
