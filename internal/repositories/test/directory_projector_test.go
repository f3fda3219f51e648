package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/tutoro/services-feed/internal/models/po"
	"github.com/tutoro/services-feed/internal/services"
	"github.com/tutoro/services-feed/internal/txmanager"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// 走完整链路：Inbox 事件 → 投影器 → 目录投影 → 补水读取。
func TestDirectoryProjector_ProcessPending(t *testing.T) {
	resetDatabase(t)

	ctx := context.Background()
	inboxRepo := newInboxRepo()
	directoryRepo := newDirectoryRepo()
	projector := services.NewDirectoryService(inboxRepo, directoryRepo, txmanager.NewManager(testPool), stdLogger)

	startsAt := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	seed := []po.InboxEvent{
		{
			EventID:       uuid.NewString(),
			SourceService: "tutoring",
			EventType:     "tutoring.student.upserted",
			Payload:       []byte(`{"student_id":7,"tenant_id":101,"display_name":"Alice Zhang","version":1}`),
		},
		{
			EventID:       uuid.NewString(),
			SourceService: "tutoring",
			EventType:     "tutoring.lesson.upserted",
			Payload:       []byte(`{"lesson_id":42,"tenant_id":101,"student_id":7,"starts_at":"2026-04-01T09:00:00Z","version":1}`),
		},
		{
			// Unknown types are marked processed so they never wedge the queue.
			EventID:       uuid.NewString(),
			SourceService: "tutoring",
			EventType:     "tutoring.teacher.upserted",
			Payload:       []byte(`{}`),
		},
		{
			// Malformed payload stays unprocessed with the error recorded on the row.
			EventID:       uuid.NewString(),
			SourceService: "tutoring",
			EventType:     "tutoring.student.upserted",
			Payload:       []byte(`{"student_id":"not-a-number"}`),
		},
	}
	for _, evt := range seed {
		require.NoError(t, inboxRepo.Insert(ctx, nil, evt))
	}

	processed, err := projector.ProcessPending(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 3, processed)

	names, err := directoryRepo.StudentNames(ctx, nil, []int64{7})
	require.NoError(t, err)
	require.Equal(t, "Alice Zhang", names[7])

	starts, err := directoryRepo.LessonStartTimes(ctx, nil, []int64{42})
	require.NoError(t, err)
	require.True(t, starts[42].Equal(startsAt))

	pending, err := inboxRepo.ListUnprocessed(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, seed[3].EventID, pending[0].EventID)
	require.NotNil(t, pending[0].LastError)

	// A second pass retries only the poisoned event and applies nothing new.
	processed, err = projector.ProcessPending(ctx, 10)
	require.NoError(t, err)
	require.Zero(t, processed)
}
