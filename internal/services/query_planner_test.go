package services

import (
	"testing"

	"github.com/tutoro/services-feed/internal/models/vo"

	"github.com/stretchr/testify/require"
)

func TestPlanFanOut_EmptyQueriesAllSources(t *testing.T) {
	plan := PlanFanOut(nil, 20)

	require.True(t, plan.QueryActivity)
	require.True(t, plan.QueryPayment)
	require.True(t, plan.QueryNotification)
	require.Empty(t, plan.ActivityCategories)
	require.Equal(t, 120, plan.PerSourceLimit)
}

func TestPlanFanOut_PaymentOnlySkipsOtherSources(t *testing.T) {
	plan := PlanFanOut([]vo.Category{vo.CategoryPayment}, 20)

	require.False(t, plan.QueryActivity)
	require.True(t, plan.QueryPayment)
	require.False(t, plan.QueryNotification)
}

func TestPlanFanOut_ActivitySubsetNarrowsCategories(t *testing.T) {
	plan := PlanFanOut([]vo.Category{vo.CategoryLesson, vo.CategoryHomework, vo.CategoryNotification}, 10)

	require.True(t, plan.QueryActivity)
	require.False(t, plan.QueryPayment)
	require.True(t, plan.QueryNotification)
	require.Equal(t, []vo.Category{vo.CategoryLesson, vo.CategoryHomework}, plan.ActivityCategories)
}

func TestPlanFanOut_OverFetchLimitIsCapped(t *testing.T) {
	require.Equal(t, 6, PlanFanOut(nil, 1).PerSourceLimit)
	require.Equal(t, 240, PlanFanOut(nil, 40).PerSourceLimit)
	// 50*6 exceeds the cap.
	require.Equal(t, 300, PlanFanOut(nil, 50).PerSourceLimit)
}
