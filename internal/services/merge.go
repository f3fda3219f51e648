package services

import (
	"sort"

	"github.com/tutoro/services-feed/internal/models/vo"
)

// MergePage 将各来源的候选条目排成全序、应用游标边界并切出一页。
// 排序键是三级的（毫秒时间戳、来源优先级、来源 ID，均倒序），
// 对相同输入可复现，游标语义依赖这一点。
func MergePage(items []vo.FeedItem, cursor vo.Cursor, hasCursor bool, pageSize int) vo.FeedPage {
	// 页大小至少为 1，不依赖调用方先行钳制。
	if pageSize < 1 {
		pageSize = 1
	}
	ordered := make([]vo.FeedItem, len(items))
	copy(ordered, items)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Before(ordered[j])
	})

	if hasCursor {
		bounded := ordered[:0]
		for _, item := range ordered {
			if item.OlderThan(cursor) {
				bounded = append(bounded, item)
			}
		}
		ordered = bounded
	}

	page := vo.FeedPage{}
	if len(ordered) > pageSize {
		page.Items = ordered[:pageSize]
		page.NextCursor = vo.CursorFromItem(page.Items[pageSize-1]).Encode()
		return page
	}
	page.Items = ordered
	return page
}
