package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tutoro/services-feed/internal/models/po"
	"github.com/tutoro/services-feed/internal/models/vo"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/sync/errgroup"
)

// GetFeedInput 描述获取 Feed 所需的参数。
// Cursor 与 Categories 中的非法值按缺省处理，不报错。
type GetFeedInput struct {
	TenantID   int64
	Limit      int
	Cursor     string
	Categories []string
	StudentID  *int64
	From       *time.Time
	To         *time.Time
}

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// FeedService 将三个独立排序的来源日志合并为单一的游标分页时间线。
type FeedService struct {
	activity      ActivityLogRepository
	payments      PaymentLogRepository
	notifications NotificationLogRepository
	directory     DirectoryRepository
	log           *log.Helper
}

// NewFeedService 构造 FeedService。
func NewFeedService(
	activity ActivityLogRepository,
	payments PaymentLogRepository,
	notifications NotificationLogRepository,
	directory DirectoryRepository,
	logger log.Logger,
) *FeedService {
	return &FeedService{
		activity:      activity,
		payments:      payments,
		notifications: notifications,
		directory:     directory,
		log:           log.NewHelper(logger),
	}
}

// GetFeed 返回一页按全序排列的 Feed 条目。
// 流程：扇出计划 → 并发查询来源日志 → 并发补水 → 归一化 → 去重 → 合并分页。
func (s *FeedService) GetFeed(ctx context.Context, input GetFeedInput) (*vo.FeedPage, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	categories := parseCategories(input.Categories)
	plan := PlanFanOut(categories, limit)
	cursor, hasCursor := vo.DecodeCursor(input.Cursor)

	base := ListSourceEventsParams{
		TenantID:  input.TenantID,
		StudentID: input.StudentID,
		From:      input.From,
		To:        input.To,
		Limit:     plan.PerSourceLimit,
	}
	notificationBase := base
	if hasCursor {
		// 游标携带的时间作为上界下推，让超额拉取窗口贴着续读位置。
		// 上界放宽到游标所在毫秒的末尾：排序只比较毫秒，而 timestamptz
		// 有微秒精度，同毫秒里微秒更晚的行仍排在游标之后，按原始时间
		// 下推会让这些行在翻页中消失。多取的行由内存侧的排他过滤决胜。
		before := cursor.OccurredAt.Truncate(time.Millisecond).Add(time.Millisecond)
		base.Before = &before
		// 通知是去重的事实来源：上界再放宽一个去重窗口，游标之前的
		// 手动催缴 Activity 才能在后续页里找到与之配对的通知。
		notificationBefore := before.Add(reminderSuppressionWindow)
		notificationBase.Before = &notificationBefore
	}

	var (
		activityRows     []*po.ActivityEvent
		paymentRows      []*po.PaymentEvent
		notificationRows []*po.NotificationEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	if plan.QueryActivity {
		g.Go(func() error {
			rows, err := s.activity.List(gctx, nil, ListActivityEventsParams{
				ListSourceEventsParams: base,
				Categories:             plan.ActivityCategories,
			})
			if err != nil {
				return fmt.Errorf("%w: activity log: %v", ErrSourceUnavailable, err)
			}
			activityRows = rows
			return nil
		})
	}
	if plan.QueryPayment {
		g.Go(func() error {
			rows, err := s.payments.List(gctx, nil, base)
			if err != nil {
				return fmt.Errorf("%w: payment log: %v", ErrSourceUnavailable, err)
			}
			paymentRows = rows
			return nil
		})
	}
	if plan.QueryNotification {
		g.Go(func() error {
			rows, err := s.notifications.List(gctx, nil, notificationBase)
			if err != nil {
				return fmt.Errorf("%w: notification log: %v", ErrSourceUnavailable, err)
			}
			notificationRows = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	enrich := s.loadEnrichment(ctx, activityRows, paymentRows, notificationRows)

	items := make([]vo.FeedItem, 0, len(activityRows)+len(paymentRows)+len(notificationRows))
	for _, row := range activityRows {
		items = append(items, vo.FeedItemFromActivity(row, enrich))
	}
	for _, row := range paymentRows {
		items = append(items, vo.FeedItemFromPayment(row, enrich))
	}
	for _, row := range notificationRows {
		items = append(items, vo.FeedItemFromNotification(row, enrich))
	}

	items = SuppressManualReminderDuplicates(items)
	page := MergePage(items, cursor, hasCursor, limit)
	page.GeneratedAt = time.Now().UTC()
	return &page, nil
}

// loadEnrichment 并发加载学生姓名与课程开始时间。补水是尽力而为的：
// 目录投影不可用时降级为空上下文，不影响主流程。
func (s *FeedService) loadEnrichment(
	ctx context.Context,
	activityRows []*po.ActivityEvent,
	paymentRows []*po.PaymentEvent,
	notificationRows []*po.NotificationEvent,
) vo.EnrichmentContext {
	studentIDs := make(map[int64]struct{})
	lessonIDs := make(map[int64]struct{})
	collect := func(studentID, lessonID *int64) {
		if studentID != nil {
			studentIDs[*studentID] = struct{}{}
		}
		if lessonID != nil {
			lessonIDs[*lessonID] = struct{}{}
		}
	}
	for _, row := range activityRows {
		collect(row.StudentID, row.LessonID)
	}
	for _, row := range paymentRows {
		collect(&row.StudentID, row.LessonID)
	}
	for _, row := range notificationRows {
		collect(row.StudentID, row.LessonID)
	}

	enrich := vo.EnrichmentContext{}
	g, gctx := errgroup.WithContext(ctx)
	if len(studentIDs) > 0 {
		ids := keysOf(studentIDs)
		g.Go(func() error {
			names, err := s.directory.StudentNames(gctx, nil, ids)
			if err != nil {
				s.log.WithContext(ctx).Warnw("msg", "student name enrichment failed", "error", err)
				return nil
			}
			enrich.StudentNames = names
			return nil
		})
	}
	if len(lessonIDs) > 0 {
		ids := keysOf(lessonIDs)
		g.Go(func() error {
			startTimes, err := s.directory.LessonStartTimes(gctx, nil, ids)
			if err != nil {
				s.log.WithContext(ctx).Warnw("msg", "lesson start enrichment failed", "error", err)
				return nil
			}
			enrich.LessonStartTimes = startTimes
			return nil
		})
	}
	_ = g.Wait()
	return enrich
}

// parseCategories 宽容解析分类，未知 token 直接丢弃。
func parseCategories(raw []string) []vo.Category {
	if len(raw) == 0 {
		return nil
	}
	categories := make([]vo.Category, 0, len(raw))
	for _, token := range raw {
		if category, ok := vo.ParseCategory(token); ok {
			categories = append(categories, category)
		}
	}
	return categories
}

func keysOf(set map[int64]struct{}) []int64 {
	keys := make([]int64, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	return keys
}
