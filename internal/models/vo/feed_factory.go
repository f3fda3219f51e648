package vo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tutoro/services-feed/internal/models/po"
)

// EnrichmentContext 携带归一化所需的补水数据，由调用方一次性查好后传入。
// 工厂自身不做任何 I/O。
type EnrichmentContext struct {
	StudentNames     map[int64]string
	LessonStartTimes map[int64]time.Time
}

func (c EnrichmentContext) studentName(id *int64) *string {
	if id == nil || c.StudentNames == nil {
		return nil
	}
	name, ok := c.StudentNames[*id]
	if !ok || name == "" {
		return nil
	}
	return &name
}

func (c EnrichmentContext) lessonStartAt(id *int64) (time.Time, bool) {
	if id == nil || c.LessonStartTimes == nil {
		return time.Time{}, false
	}
	startsAt, ok := c.LessonStartTimes[*id]
	return startsAt, ok
}

// FeedItemFromActivity 将 Activity 记录归一化为 FeedItem。
func FeedItemFromActivity(record *po.ActivityEvent, enrich EnrichmentContext) FeedItem {
	category, ok := ParseCategory(record.Category)
	if !ok || !category.IsActivitySubject() {
		category = CategorySettings
	}
	item := FeedItem{
		ID:           feedItemID(SourceKindActivity, record.ID),
		SourceKind:   SourceKindActivity,
		Category:     category,
		Action:       record.Action,
		Status:       derefString(record.Status, StatusSuccess),
		Source:       derefString(record.Source, TriggerSystem),
		Title:        record.Title,
		Details:      record.Details,
		Payload:      decodePayload(record.Payload),
		OccurredAt:   record.OccurredAt,
		StudentID:    record.StudentID,
		StudentName:  enrich.studentName(record.StudentID),
		LessonID:     record.LessonID,
		HomeworkID:   record.HomeworkID,
		SourceID:     record.ID,
		OccurredAtMS: record.OccurredAt.UnixMilli(),
	}
	item.Payload = foldLessonStart(item.Payload, record.LessonID, enrich)
	return item
}

// FeedItemFromPayment 将支付记录归一化为 FeedItem，标题由固定决策表生成。
func FeedItemFromPayment(record *po.PaymentEvent, enrich EnrichmentContext) FeedItem {
	studentID := record.StudentID
	item := FeedItem{
		ID:           feedItemID(SourceKindPayment, record.ID),
		SourceKind:   SourceKindPayment,
		Category:     CategoryPayment,
		Action:       record.Type,
		Status:       StatusSuccess,
		Source:       TriggerSystem,
		Title:        paymentTitle(record),
		Payload:      decodePayload(record.Payload),
		OccurredAt:   record.CreatedAt,
		StudentID:    &studentID,
		StudentName:  enrich.studentName(&studentID),
		LessonID:     record.LessonID,
		SourceID:     record.ID,
		OccurredAtMS: record.CreatedAt.UnixMilli(),
	}
	item.Payload = foldLessonStart(item.Payload, record.LessonID, enrich)
	return item
}

// FeedItemFromNotification 将通知投递记录归一化为 FeedItem。
// 时间优先取实际发送时间，缺失时退回入库时间。
func FeedItemFromNotification(record *po.NotificationEvent, enrich EnrichmentContext) FeedItem {
	occurredAt := record.CreatedAt
	if record.SentAt != nil && !record.SentAt.IsZero() {
		occurredAt = *record.SentAt
	}
	status := StatusSuccess
	if record.Status == po.NotificationStatusFailed {
		status = StatusFailed
	}
	trigger := TriggerAuto
	if record.Trigger == po.NotificationTriggerManual {
		trigger = TriggerManual
	}
	item := FeedItem{
		ID:           feedItemID(SourceKindNotification, record.ID),
		SourceKind:   SourceKindNotification,
		Category:     CategoryNotification,
		Action:       record.Type,
		Status:       status,
		Source:       trigger,
		Title:        notificationTitle(record.Type, status),
		Payload:      decodePayload(record.Payload),
		OccurredAt:   occurredAt,
		StudentID:    record.StudentID,
		StudentName:  enrich.studentName(record.StudentID),
		LessonID:     record.LessonID,
		SourceID:     record.ID,
		OccurredAtMS: occurredAt.UnixMilli(),
	}
	item.Payload = foldLessonStart(item.Payload, record.LessonID, enrich)
	return item
}

// feedItemID 保证三个独立自增序列之间的全局唯一。
func feedItemID(kind SourceKind, id int64) string {
	return fmt.Sprintf("%s_%d", kind, id)
}

func paymentTitle(record *po.PaymentEvent) string {
	switch record.Type {
	case po.PaymentTypeTopUp:
		return fmt.Sprintf("Balance top-up: +%d lessons", record.LessonsDelta)
	case po.PaymentTypeCharge:
		return "Lesson charged to balance"
	case po.PaymentTypeReversal:
		if record.Reason != nil && *record.Reason == po.PaymentReasonRefund {
			return "Payment reversed with refund"
		}
		return "Payment reversed"
	case po.PaymentTypeAdjustment:
		switch {
		case record.LessonsDelta > 0:
			return "Balance adjustment (credit)"
		case record.LessonsDelta < 0:
			return "Balance adjustment (debit)"
		default:
			return "Balance adjustment"
		}
	default:
		return "Payment change"
	}
}

func notificationTitle(notificationType, status string) string {
	var sent, failed string
	switch notificationType {
	case ActionPaymentReminder:
		sent, failed = "Payment reminder sent", "Payment reminder failed"
	case "LESSON_REMINDER":
		sent, failed = "Lesson reminder sent", "Lesson reminder failed"
	case "LESSON_CANCELLED":
		sent, failed = "Lesson cancellation notice sent", "Lesson cancellation notice failed"
	case "HOMEWORK_ASSIGNED":
		sent, failed = "Homework notification sent", "Homework notification failed"
	default:
		sent, failed = "Notification sent", "Notification failed"
	}
	if status == StatusFailed {
		return failed
	}
	return sent
}

// decodePayload 宽容解析 jsonb 负载，解析失败视为无负载。
func decodePayload(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload
}

// foldLessonStart 在补水数据已知且负载未携带时，把课程开始时间折叠进负载，
// 免去消费方的二次查询。
func foldLessonStart(payload map[string]any, lessonID *int64, enrich EnrichmentContext) map[string]any {
	startsAt, ok := enrich.lessonStartAt(lessonID)
	if !ok {
		return payload
	}
	if payload == nil {
		payload = make(map[string]any, 1)
	} else if _, exists := payload["lessonStartAt"]; exists {
		return payload
	}
	payload["lessonStartAt"] = startsAt.UTC().Format(time.RFC3339)
	return payload
}

func derefString(ptr *string, fallback string) string {
	if ptr == nil || *ptr == "" {
		return fallback
	}
	return *ptr
}
