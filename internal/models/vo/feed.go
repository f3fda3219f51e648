// Package vo 定义向上层返回的 Feed 视图对象。
package vo

import "time"

// SourceKind 标识 Feed 条目的来源日志。
type SourceKind string

// 三个来源日志，优先级用于同毫秒事件的排序决胜。
const (
	SourceKindActivity     SourceKind = "ACTIVITY"
	SourceKindPayment      SourceKind = "PAYMENT"
	SourceKindNotification SourceKind = "NOTIFICATION"
)

// Priority 返回来源在排序中的优先级，未知来源为 0。
func (k SourceKind) Priority() int {
	switch k {
	case SourceKindActivity:
		return 3
	case SourceKindPayment:
		return 2
	case SourceKindNotification:
		return 1
	default:
		return 0
	}
}

// Valid 判断是否为已知来源。
func (k SourceKind) Valid() bool {
	return k.Priority() > 0
}

// Category 是 Feed 条目的业务分类。PAYMENT 与 NOTIFICATION 是伪分类，
// 各自只对应一个来源日志。
type Category string

const (
	CategoryLesson   Category = "LESSON"
	CategoryHomework Category = "HOMEWORK"
	CategoryStudent  Category = "STUDENT"
	CategorySchedule Category = "SCHEDULE"
	CategorySettings Category = "SETTINGS"

	CategoryPayment      Category = "PAYMENT"
	CategoryNotification Category = "NOTIFICATION"
)

// ParseCategory 解析分类标识，未知值返回 false。
func ParseCategory(raw string) (Category, bool) {
	switch Category(raw) {
	case CategoryLesson, CategoryHomework, CategoryStudent, CategorySchedule, CategorySettings,
		CategoryPayment, CategoryNotification:
		return Category(raw), true
	default:
		return "", false
	}
}

// IsActivitySubject 判断该分类是否由 Activity 日志承载。
func (c Category) IsActivitySubject() bool {
	switch c {
	case CategoryLesson, CategoryHomework, CategoryStudent, CategorySchedule, CategorySettings:
		return true
	default:
		return false
	}
}

// 条目状态与触发方。来源记录上的未知值由工厂映射到这些安全默认值。
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"

	TriggerManual = "MANUAL"
	TriggerAuto   = "AUTO"
	TriggerSystem = "SYSTEM"
)

// ActionPaymentReminder 是手动催缴动作的统一标识，
// Activity 日志与 Notification 日志可能各记一笔，见去重逻辑。
const ActionPaymentReminder = "PAYMENT_REMINDER"

// FeedItem 表示归一化后的单条 Feed 事件。
// SourceID 与 OccurredAtMS 仅用于排序，不对外序列化。
type FeedItem struct {
	ID          string
	SourceKind  SourceKind
	Category    Category
	Action      string
	Status      string
	Source      string
	Title       string
	Details     *string
	Payload     map[string]any
	OccurredAt  time.Time
	StudentID   *int64
	StudentName *string
	LessonID    *int64
	HomeworkID  *int64

	SourceID     int64
	OccurredAtMS int64
}

// Before 按全序（时间倒序、来源优先级倒序、来源 ID 倒序）判断 item 是否排在 other 之前。
func (i FeedItem) Before(other FeedItem) bool {
	if i.OccurredAtMS != other.OccurredAtMS {
		return i.OccurredAtMS > other.OccurredAtMS
	}
	if p, q := i.SourceKind.Priority(), other.SourceKind.Priority(); p != q {
		return p > q
	}
	return i.SourceID > other.SourceID
}

// OlderThan 判断 item 是否严格排在游标之后（即严格晚于上一页最后一条的位置）。
// 边界是排他的：等于游标本身的条目不会再次出现。
func (i FeedItem) OlderThan(c Cursor) bool {
	cms := c.OccurredAt.UnixMilli()
	if i.OccurredAtMS != cms {
		return i.OccurredAtMS < cms
	}
	if p, q := i.SourceKind.Priority(), c.SourceKind.Priority(); p != q {
		return p < q
	}
	return i.SourceID < c.SourceID
}

// FeedPage 汇总一页 Feed 结果。NextCursor 为空表示已到流末尾。
type FeedPage struct {
	Items       []FeedItem
	NextCursor  string
	GeneratedAt time.Time
}
