package po

import (
	"strings"
	"time"
)

// AppendActivityParams 描述追加一条 Activity 记录所需的参数。
// 数值为 0、字符串为空表示字段缺省。
type AppendActivityParams struct {
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

// NewActivityEvent 基于参数构造待写入的 ActivityEvent。
// OccurredAt 缺省时取当前时间。
func NewActivityEvent(params AppendActivityParams) ActivityEvent {
	evt := ActivityEvent{
		TenantID:       params.TenantID,
		Category:       strings.TrimSpace(params.Category),
		Action:         strings.TrimSpace(params.Action),
		Title:          strings.TrimSpace(params.Title),
		Status:         optionalString(params.Status),
		Source:         optionalString(params.Source),
		Details:        optionalString(params.Details),
		StudentID:      optionalInt64(params.StudentID),
		LessonID:       optionalInt64(params.LessonID),
		HomeworkID:     optionalInt64(params.HomeworkID),
		IdempotencyKey: optionalString(params.IdempotencyKey),
		OccurredAt:     params.OccurredAt,
	}
	if len(params.Payload) > 0 {
		payload := make([]byte, len(params.Payload))
		copy(payload, params.Payload)
		evt.Payload = payload
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	return evt
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func optionalInt64(value int64) *int64 {
	if value <= 0 {
		return nil
	}
	v := value
	return &v
}
