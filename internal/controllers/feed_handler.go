package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tutoro/services-feed/internal/models/vo"
	"github.com/tutoro/services-feed/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/labstack/echo/v4"
)

// FeedServiceAPI 定义 FeedHandler 依赖的 Service 能力。
type FeedServiceAPI interface {
	GetFeed(ctx context.Context, input services.GetFeedInput) (*vo.FeedPage, error)
}

// FeedHandler 实现 Feed 读取接口。
type FeedHandler struct {
	*BaseHandler
	service FeedServiceAPI
	log     *log.Helper
}

// NewFeedHandler 构造 FeedHandler。
func NewFeedHandler(feed FeedServiceAPI, base *BaseHandler, logger log.Logger) *FeedHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &FeedHandler{
		BaseHandler: base,
		service:     feed,
		log:         log.NewHelper(logger),
	}
}

// Register 挂载路由。
func (h *FeedHandler) Register(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed 返回一页聚合时间线。非法的查询参数按缺省处理，不会拒绝请求。
func (h *FeedHandler) GetFeed(c echo.Context) error {
	tenantID, err := h.ExtractTenant(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid user info")
	}

	input := services.GetFeedInput{
		TenantID: tenantID,
		Cursor:   c.QueryParam("cursor"),
	}
	if limit, parseErr := strconv.Atoi(c.QueryParam("limit")); parseErr == nil {
		input.Limit = limit
	}
	if raw := c.QueryParam("categories"); raw != "" {
		input.Categories = strings.Split(raw, ",")
	}
	if studentID, parseErr := strconv.ParseInt(c.QueryParam("studentId"), 10, 64); parseErr == nil && studentID > 0 {
		input.StudentID = &studentID
	}
	if from, ok := parseTimeParam(c.QueryParam("from")); ok {
		input.From = &from
	}
	if to, ok := parseTimeParam(c.QueryParam("to")); ok {
		input.To = &to
	}

	timeoutCtx, cancel := h.WithTimeout(c.Request().Context(), HandlerTypeQuery)
	defer cancel()

	page, err := h.service.GetFeed(timeoutCtx, input)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, toFeedPageDTO(page))
	case errors.Is(err, services.ErrSourceUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "feed source unavailable")
	default:
		h.log.WithContext(c.Request().Context()).Errorw("msg", "get feed failed", "tenant_id", tenantID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "get feed failed")
	}
}

func parseTimeParam(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

type feedItemDTO struct {
	ID          string         `json:"id"`
	SourceKind  string         `json:"sourceKind"`
	Category    string         `json:"category"`
	Action      string         `json:"action"`
	Status      string         `json:"status,omitempty"`
	Source      string         `json:"source,omitempty"`
	Title       string         `json:"title"`
	Details     *string        `json:"details,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
	OccurredAt  time.Time      `json:"occurredAt"`
	StudentID   *int64         `json:"studentId,omitempty"`
	StudentName *string        `json:"studentName,omitempty"`
	LessonID    *int64         `json:"lessonId,omitempty"`
	HomeworkID  *int64         `json:"homeworkId,omitempty"`
}

type feedPageDTO struct {
	Items       []feedItemDTO `json:"items"`
	NextCursor  *string       `json:"nextCursor"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

func toFeedPageDTO(page *vo.FeedPage) feedPageDTO {
	if page == nil {
		return feedPageDTO{Items: []feedItemDTO{}}
	}
	dto := feedPageDTO{
		Items:       make([]feedItemDTO, 0, len(page.Items)),
		GeneratedAt: page.GeneratedAt.UTC(),
	}
	if page.NextCursor != "" {
		cursor := page.NextCursor
		dto.NextCursor = &cursor
	}
	for _, item := range page.Items {
		dto.Items = append(dto.Items, feedItemDTO{
			ID:          item.ID,
			SourceKind:  string(item.SourceKind),
			Category:    string(item.Category),
			Action:      item.Action,
			Status:      item.Status,
			Source:      item.Source,
			Title:       item.Title,
			Details:     item.Details,
			Payload:     item.Payload,
			OccurredAt:  item.OccurredAt.UTC(),
			StudentID:   item.StudentID,
			StudentName: item.StudentName,
			LessonID:    item.LessonID,
			HomeworkID:  item.HomeworkID,
		})
	}
	return dto
}
