package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/tutoro/services-feed/internal/models/po"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInboxRepository_InsertAndLifecycle(t *testing.T) {
	resetDatabase(t)

	ctx := context.Background()
	repo := newInboxRepo()
	eventID := uuid.New()
	aggregateID := "7"

	evt := po.InboxEvent{
		EventID:       eventID.String(),
		SourceService: "tutoring",
		EventType:     "tutoring.student.upserted",
		AggregateType: stringPtr("student"),
		AggregateID:   &aggregateID,
		Payload:       []byte(`{"student_id":7,"tenant_id":101,"display_name":"Alice Zhang","version":1}`),
	}
	require.NoError(t, repo.Insert(ctx, nil, evt))

	// Redelivery of the same event id is swallowed.
	require.NoError(t, repo.Insert(ctx, nil, evt))

	pending, err := repo.ListUnprocessed(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, eventID.String(), pending[0].EventID)
	require.Equal(t, "tutoring.student.upserted", pending[0].EventType)
	require.Nil(t, pending[0].ProcessedAt)
	require.False(t, pending[0].ReceivedAt.IsZero())

	require.NoError(t, repo.RecordError(ctx, nil, eventID, "transient failure"))

	record, err := repo.Get(ctx, nil, eventID)
	require.NoError(t, err)
	require.NotNil(t, record.LastError)
	require.Equal(t, "transient failure", *record.LastError)
	// Still unprocessed after a recorded error.
	pending, err = repo.ListUnprocessed(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	processedAt := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.MarkProcessed(ctx, nil, eventID, &processedAt))

	record, err = repo.Get(ctx, nil, eventID)
	require.NoError(t, err)
	require.NotNil(t, record.ProcessedAt)
	require.WithinDuration(t, processedAt, *record.ProcessedAt, time.Second)
	require.Nil(t, record.LastError)

	pending, err = repo.ListUnprocessed(ctx, nil, 10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestInboxRepository_ListUnprocessedOrderAndLimit(t *testing.T) {
	resetDatabase(t)

	ctx := context.Background()
	repo := newInboxRepo()
	base := time.Now().UTC().Truncate(time.Microsecond)

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, repo.Insert(ctx, nil, po.InboxEvent{
			EventID:       ids[i].String(),
			SourceService: "tutoring",
			EventType:     "tutoring.lesson.upserted",
			Payload:       []byte(`{}`),
			ReceivedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	pending, err := repo.ListUnprocessed(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// Oldest received first.
	require.Equal(t, ids[0].String(), pending[0].EventID)
	require.Equal(t, ids[1].String(), pending[1].EventID)
}
