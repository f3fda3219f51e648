package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/tutoro/services-feed/internal/services"

	"github.com/stretchr/testify/require"
)

func seedPaymentEvent(t *testing.T, tenantID, studentID int64, typ string, reason *string, delta int32, createdAt time.Time) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `
		INSERT INTO feed.payment_log (tenant_id, student_id, lesson_id, type, reason, lessons_delta, payload, created_at)
		VALUES ($1, $2, NULL, $3, $4, $5, '{"operator":"admin"}', $6)
	`, tenantID, studentID, typ, reason, delta, createdAt)
	require.NoError(t, err)
}

func TestPaymentLogRepository_List(t *testing.T) {
	resetDatabase(t)

	ctx := context.Background()
	repo := newPaymentLogRepo()
	base := time.Now().UTC().Truncate(time.Microsecond)

	seedPaymentEvent(t, 101, 7, "TOPUP", nil, 10, base.Add(-2*time.Hour))
	seedPaymentEvent(t, 101, 7, "CHARGE", nil, -1, base.Add(-time.Hour))
	seedPaymentEvent(t, 101, 9, "REVERSAL", stringPtr("refund"), 1, base.Add(-30*time.Minute))
	seedPaymentEvent(t, 202, 7, "TOPUP", nil, 5, base)

	listed, err := repo.List(ctx, nil, services.ListSourceEventsParams{TenantID: 101, Limit: 10})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.Equal(t, "REVERSAL", listed[0].Type)
	require.Equal(t, "refund", *listed[0].Reason)
	require.Equal(t, "CHARGE", listed[1].Type)
	require.Equal(t, "TOPUP", listed[2].Type)
	require.Equal(t, int32(10), listed[2].LessonsDelta)

	// Student filter.
	listed, err = repo.List(ctx, nil, services.ListSourceEventsParams{TenantID: 101, StudentID: int64Ptr(9), Limit: 10})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "REVERSAL", listed[0].Type)

	// From/to window keeps only the charge.
	listed, err = repo.List(ctx, nil, services.ListSourceEventsParams{
		TenantID: 101,
		From:     timePtr(base.Add(-90 * time.Minute)),
		To:       timePtr(base.Add(-45 * time.Minute)),
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "CHARGE", listed[0].Type)

	// Caller limit truncates from the newest end.
	listed, err = repo.List(ctx, nil, services.ListSourceEventsParams{TenantID: 101, Limit: 2})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "REVERSAL", listed[0].Type)
}
