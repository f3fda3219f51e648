package services

import (
	"testing"
	"time"

	"github.com/tutoro/services-feed/internal/models/vo"

	"github.com/stretchr/testify/require"
)

func manualReminder(kind vo.SourceKind, id int64, studentID, lessonID int64, occurredAt time.Time) vo.FeedItem {
	item := feedItemAt(kind, id, occurredAt)
	item.Action = vo.ActionPaymentReminder
	item.Source = vo.TriggerManual
	item.StudentID = &studentID
	item.LessonID = &lessonID
	return item
}

func TestSuppress_DropsActivityWithinWindow(t *testing.T) {
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		manualReminder(vo.SourceKindActivity, 1, 42, 99, at),
		manualReminder(vo.SourceKindNotification, 7, 42, 99, at.Add(5*time.Minute)),
	}

	kept := SuppressManualReminderDuplicates(items)

	require.Len(t, kept, 1)
	require.Equal(t, vo.SourceKindNotification, kept[0].SourceKind)
}

func TestSuppress_KeepsActivityOutsideWindow(t *testing.T) {
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		manualReminder(vo.SourceKindActivity, 1, 42, 99, at),
		manualReminder(vo.SourceKindNotification, 7, 42, 99, at.Add(20*time.Minute)),
	}

	kept := SuppressManualReminderDuplicates(items)

	require.Len(t, kept, 2)
}

func TestSuppress_WindowBoundaryIsInclusive(t *testing.T) {
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		manualReminder(vo.SourceKindActivity, 1, 42, 99, at),
		manualReminder(vo.SourceKindNotification, 7, 42, 99, at.Add(10*time.Minute)),
	}

	require.Len(t, SuppressManualReminderDuplicates(items), 1)
}

func TestSuppress_RequiresMatchingStudentAndLesson(t *testing.T) {
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		manualReminder(vo.SourceKindActivity, 1, 42, 99, at),
		manualReminder(vo.SourceKindNotification, 7, 42, 100, at),
		manualReminder(vo.SourceKindNotification, 8, 43, 99, at),
	}

	kept := SuppressManualReminderDuplicates(items)

	require.Len(t, kept, 3)
}

func TestSuppress_OtherItemsPassThrough(t *testing.T) {
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	lessonActivity := feedItemAt(vo.SourceKindActivity, 1, at)
	lessonActivity.Action = "LESSON_RESCHEDULED"
	lessonActivity.Source = vo.TriggerManual
	autoReminderActivity := feedItemAt(vo.SourceKindActivity, 2, at)
	autoReminderActivity.Action = vo.ActionPaymentReminder
	autoReminderActivity.Source = vo.TriggerAuto
	items := []vo.FeedItem{
		lessonActivity,
		autoReminderActivity,
		manualReminder(vo.SourceKindNotification, 7, 42, 99, at),
	}

	kept := SuppressManualReminderDuplicates(items)

	require.Len(t, kept, 3)
}

func TestSuppress_NotificationIsNeverDropped(t *testing.T) {
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		manualReminder(vo.SourceKindNotification, 7, 42, 99, at),
		manualReminder(vo.SourceKindNotification, 8, 42, 99, at.Add(time.Minute)),
	}

	require.Len(t, SuppressManualReminderDuplicates(items), 2)
}

func TestSuppress_IsIdempotent(t *testing.T) {
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		manualReminder(vo.SourceKindActivity, 1, 42, 99, at),
		manualReminder(vo.SourceKindActivity, 2, 42, 99, at.Add(30*time.Minute)),
		manualReminder(vo.SourceKindNotification, 7, 42, 99, at.Add(4*time.Minute)),
		feedItemAt(vo.SourceKindPayment, 3, at),
	}

	once := SuppressManualReminderDuplicates(items)
	twice := SuppressManualReminderDuplicates(once)

	require.Len(t, once, 3)
	require.Equal(t, once, twice)
}
