// Package mappers 提供数据库行与领域模型之间的转换工具。
package mappers

import (
	"time"

	"github.com/tutoro/services-feed/internal/models/po"
	feeddb "github.com/tutoro/services-feed/internal/repositories/feeddb"

	"github.com/jackc/pgx/v5/pgtype"
)

// ActivityEventFromRow 将 sqlc 结构转换为领域对象。
func ActivityEventFromRow(row feeddb.FeedActivityLog) *po.ActivityEvent {
	return &po.ActivityEvent{
		ID:             row.ID,
		TenantID:       row.TenantID,
		Category:       row.Category,
		Action:         row.Action,
		Status:         textPtr(row.Status),
		Source:         textPtr(row.Source),
		Title:          row.Title,
		Details:        textPtr(row.Details),
		Payload:        row.Payload,
		StudentID:      int8Ptr(row.StudentID),
		LessonID:       int8Ptr(row.LessonID),
		HomeworkID:     int8Ptr(row.HomeworkID),
		IdempotencyKey: textPtr(row.IdempotencyKey),
		OccurredAt:     mustTimestamp(row.OccurredAt),
		CreatedAt:      mustTimestamp(row.CreatedAt),
	}
}

// PaymentEventFromRow 转换支付日志行。
func PaymentEventFromRow(row feeddb.FeedPaymentLog) *po.PaymentEvent {
	return &po.PaymentEvent{
		ID:           row.ID,
		TenantID:     row.TenantID,
		StudentID:    row.StudentID,
		LessonID:     int8Ptr(row.LessonID),
		Type:         row.Type,
		Reason:       textPtr(row.Reason),
		LessonsDelta: row.LessonsDelta,
		Payload:      row.Payload,
		CreatedAt:    mustTimestamp(row.CreatedAt),
	}
}

// NotificationEventFromRow 转换通知投递日志行。
func NotificationEventFromRow(row feeddb.FeedNotificationLog) *po.NotificationEvent {
	return &po.NotificationEvent{
		ID:        row.ID,
		TenantID:  row.TenantID,
		StudentID: int8Ptr(row.StudentID),
		LessonID:  int8Ptr(row.LessonID),
		Type:      row.Type,
		Trigger:   row.TriggeredBy,
		Channel:   row.Channel,
		Status:    row.Status,
		Payload:   row.Payload,
		SentAt:    timestampPtr(row.SentAt),
		CreatedAt: mustTimestamp(row.CreatedAt),
	}
}

// InboxEventFromRow 转换 Inbox 事件。
func InboxEventFromRow(row feeddb.FeedInboxEvent) *po.InboxEvent {
	return &po.InboxEvent{
		EventID:       row.EventID.String(),
		SourceService: row.SourceService,
		EventType:     row.EventType,
		AggregateType: textPtr(row.AggregateType),
		AggregateID:   textPtr(row.AggregateID),
		Payload:       row.Payload,
		ReceivedAt:    mustTimestamp(row.ReceivedAt),
		ProcessedAt:   timestampPtr(row.ProcessedAt),
		LastError:     textPtr(row.LastError),
	}
}

// ToPgText 将 *string 转换为 pgtype.Text。
func ToPgText(value *string) pgtype.Text {
	if value == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *value, Valid: true}
}

// ToPgInt8 将 *int64 转换为 pgtype.Int8。
func ToPgInt8(value *int64) pgtype.Int8 {
	if value == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *value, Valid: true}
}

// ToPgTimestamptzPtr 将 *time.Time 转换为 pgtype.Timestamptz。
func ToPgTimestamptzPtr(value *time.Time) pgtype.Timestamptz {
	if value == nil || value.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: value.UTC(), Valid: true}
}

// ToPgTimestamptz 将 time.Time 转换为 pgtype.Timestamptz。
func ToPgTimestamptz(value time.Time) pgtype.Timestamptz {
	if value.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: value.UTC(), Valid: true}
}

func textPtr(value pgtype.Text) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func int8Ptr(value pgtype.Int8) *int64 {
	if !value.Valid {
		return nil
	}
	return &value.Int64
}

func timestampPtr(value pgtype.Timestamptz) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	return &t
}

func mustTimestamp(value pgtype.Timestamptz) time.Time {
	if !value.Valid {
		return time.Time{}
	}
	return value.Time.UTC()
}
