package services

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/tutoro/services-feed/internal/models/vo"

	"github.com/stretchr/testify/require"
)

func feedItemAt(kind vo.SourceKind, id int64, occurredAt time.Time) vo.FeedItem {
	return vo.FeedItem{
		ID:           string(kind) + "_" + strconv.FormatInt(id, 10),
		SourceKind:   kind,
		OccurredAt:   occurredAt,
		SourceID:     id,
		OccurredAtMS: occurredAt.UnixMilli(),
	}
}

func TestMergePage_SourcePriorityBreaksTies(t *testing.T) {
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		feedItemAt(vo.SourceKindNotification, 1, at),
		feedItemAt(vo.SourceKindActivity, 1, at),
		feedItemAt(vo.SourceKindPayment, 1, at),
	}

	page := MergePage(items, vo.Cursor{}, false, 10)

	require.Len(t, page.Items, 3)
	require.Equal(t, vo.SourceKindActivity, page.Items[0].SourceKind)
	require.Equal(t, vo.SourceKindPayment, page.Items[1].SourceKind)
	require.Equal(t, vo.SourceKindNotification, page.Items[2].SourceKind)
	require.Empty(t, page.NextCursor)
}

func TestMergePage_NonPositivePageSizeClampsToOne(t *testing.T) {
	at := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		feedItemAt(vo.SourceKindActivity, 2, at),
		feedItemAt(vo.SourceKindActivity, 1, at.Add(-time.Minute)),
	}

	for _, pageSize := range []int{0, -5} {
		page := MergePage(items, vo.Cursor{}, false, pageSize)
		require.Len(t, page.Items, 1)
		require.Equal(t, "ACTIVITY_2", page.Items[0].ID)
		require.NotEmpty(t, page.NextCursor)
	}
}

func TestMergePage_OrderIsDeterministic(t *testing.T) {
	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := make([]vo.FeedItem, 0, 30)
	for i := int64(1); i <= 10; i++ {
		// Three sources sharing three distinct milliseconds.
		at := base.Add(time.Duration(i%3) * time.Millisecond)
		items = append(items,
			feedItemAt(vo.SourceKindActivity, i, at),
			feedItemAt(vo.SourceKindPayment, i, at),
			feedItemAt(vo.SourceKindNotification, i, at),
		)
	}

	reference := MergePage(items, vo.Cursor{}, false, len(items))
	rng := rand.New(rand.NewSource(1))
	for attempt := 0; attempt < 5; attempt++ {
		shuffled := make([]vo.FeedItem, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		page := MergePage(shuffled, vo.Cursor{}, false, len(items))
		require.Equal(t, reference.Items, page.Items)
	}
}

func TestMergePage_CursorBoundaryIsExclusive(t *testing.T) {
	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		feedItemAt(vo.SourceKindActivity, 3, base.Add(2*time.Second)),
		feedItemAt(vo.SourceKindActivity, 2, base.Add(time.Second)),
		feedItemAt(vo.SourceKindActivity, 1, base),
	}

	first := MergePage(items, vo.Cursor{}, false, 2)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)

	cursor, ok := vo.DecodeCursor(first.NextCursor)
	require.True(t, ok)

	second := MergePage(items, cursor, true, 2)
	require.Len(t, second.Items, 1)
	require.Equal(t, int64(1), second.Items[0].SourceID)
	require.Empty(t, second.NextCursor)
}

func TestMergePage_PageWalkEmitsEachItemExactlyOnce(t *testing.T) {
	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := make([]vo.FeedItem, 0, 21)
	for i := int64(1); i <= 7; i++ {
		// Shared timestamps across sources exercise both tie-break levels.
		at := base.Add(time.Duration(i/2) * time.Second)
		items = append(items,
			feedItemAt(vo.SourceKindActivity, i, at),
			feedItemAt(vo.SourceKindPayment, i, at),
			feedItemAt(vo.SourceKindNotification, i, at),
		)
	}

	seen := make(map[string]int)
	var walked []vo.FeedItem
	cursor := vo.Cursor{}
	hasCursor := false
	for pages := 0; pages < 20; pages++ {
		page := MergePage(items, cursor, hasCursor, 4)
		for _, item := range page.Items {
			seen[item.ID]++
			walked = append(walked, item)
		}
		if page.NextCursor == "" {
			break
		}
		var ok bool
		cursor, ok = vo.DecodeCursor(page.NextCursor)
		require.True(t, ok)
		hasCursor = true
	}

	require.Len(t, walked, len(items))
	for id, count := range seen {
		require.Equalf(t, 1, count, "item %s emitted %d times", id, count)
	}
	full := MergePage(items, vo.Cursor{}, false, len(items))
	require.Equal(t, full.Items, walked)
}

func TestMergePage_EmptyInput(t *testing.T) {
	page := MergePage(nil, vo.Cursor{}, false, 20)

	require.Empty(t, page.Items)
	require.Empty(t, page.NextCursor)
}

func TestMergePage_NoCursorWhenPageExactlyFull(t *testing.T) {
	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []vo.FeedItem{
		feedItemAt(vo.SourceKindActivity, 2, base.Add(time.Second)),
		feedItemAt(vo.SourceKindActivity, 1, base),
	}

	page := MergePage(items, vo.Cursor{}, false, 2)

	require.Len(t, page.Items, 2)
	require.Empty(t, page.NextCursor)
}
