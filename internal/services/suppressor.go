package services

import (
	"time"

	"github.com/tutoro/services-feed/internal/models/vo"
)

// 手动催缴会被两个子系统各记一笔：Activity 日志记操作本身，
// 通知日志记投递结果。两者没有共享关联 ID，只能按时间邻近归并。
const reminderSuppressionWindow = 10 * time.Minute

type reminderKey struct {
	studentID int64
	lessonID  int64
}

// SuppressManualReminderDuplicates 丢弃与同一 (studentId, lessonId) 的
// 手动催缴通知在时间窗内重合的 Activity 条目。通知条目视为事实来源，
// 从不丢弃；其余条目原样通过。操作是幂等的。
func SuppressManualReminderDuplicates(items []vo.FeedItem) []vo.FeedItem {
	reminders := make(map[reminderKey][]int64)
	for _, item := range items {
		if item.SourceKind == vo.SourceKindNotification && isManualPaymentReminder(item) {
			key := reminderKeyOf(item)
			reminders[key] = append(reminders[key], item.OccurredAtMS)
		}
	}
	if len(reminders) == 0 {
		return items
	}

	kept := make([]vo.FeedItem, 0, len(items))
	for _, item := range items {
		if item.SourceKind == vo.SourceKindActivity && isManualPaymentReminder(item) {
			if hasNearbyReminder(reminders[reminderKeyOf(item)], item.OccurredAtMS) {
				continue
			}
		}
		kept = append(kept, item)
	}
	return kept
}

func isManualPaymentReminder(item vo.FeedItem) bool {
	return item.Action == vo.ActionPaymentReminder && item.Source == vo.TriggerManual
}

func reminderKeyOf(item vo.FeedItem) reminderKey {
	key := reminderKey{}
	if item.StudentID != nil {
		key.studentID = *item.StudentID
	}
	if item.LessonID != nil {
		key.lessonID = *item.LessonID
	}
	return key
}

func hasNearbyReminder(reminderTimes []int64, occurredAtMS int64) bool {
	window := reminderSuppressionWindow.Milliseconds()
	for _, ts := range reminderTimes {
		delta := occurredAtMS - ts
		if delta < 0 {
			delta = -delta
		}
		if delta <= window {
			return true
		}
	}
	return false
}
