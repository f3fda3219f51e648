package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tutoro/services-feed/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/labstack/echo/v4"
)

// ActivityServiceAPI 定义 ActivityHandler 依赖的 Service 能力。
type ActivityServiceAPI interface {
	Record(ctx context.Context, input services.RecordActivityInput) (*services.RecordActivityResult, error)
}

// ActivityHandler 实现 Activity 日志的追加接口。
type ActivityHandler struct {
	*BaseHandler
	service ActivityServiceAPI
	log     *log.Helper
}

// NewActivityHandler 构造 ActivityHandler。
func NewActivityHandler(activity ActivityServiceAPI, base *BaseHandler, logger log.Logger) *ActivityHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &ActivityHandler{
		BaseHandler: base,
		service:     activity,
		log:         log.NewHelper(logger),
	}
}

// Register 挂载路由。
func (h *ActivityHandler) Register(g *echo.Group) {
	g.POST("/activities", h.Record)
}

type recordActivityRequest struct {
	Category       string          `json:"category"`
	Action         string          `json:"action"`
	Title          string          `json:"title"`
	Status         string          `json:"status"`
	Source         string          `json:"source"`
	Details        string          `json:"details"`
	Payload        json.RawMessage `json:"payload"`
	StudentID      int64           `json:"studentId"`
	LessonID       int64           `json:"lessonId"`
	HomeworkID     int64           `json:"homeworkId"`
	IdempotencyKey string          `json:"idempotencyKey"`
	OccurredAt     *time.Time      `json:"occurredAt"`
}

type recordActivityResponse struct {
	ID              int64 `json:"id,omitempty"`
	AlreadyRecorded bool  `json:"alreadyRecorded"`
}

// Record 追加一条 Activity 记录。幂等键命中既有记录时返回 200 而非 201。
func (h *ActivityHandler) Record(c echo.Context) error {
	tenantID, err := h.ExtractTenant(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid user info")
	}

	var req recordActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Category == "" || req.Action == "" || req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category, action and title are required")
	}

	input := services.RecordActivityInput{
		TenantID:       tenantID,
		Category:       req.Category,
		Action:         req.Action,
		Title:          req.Title,
		Status:         req.Status,
		Source:         req.Source,
		Details:        req.Details,
		Payload:        req.Payload,
		StudentID:      req.StudentID,
		LessonID:       req.LessonID,
		HomeworkID:     req.HomeworkID,
		IdempotencyKey: req.IdempotencyKey,
	}
	if req.OccurredAt != nil {
		input.OccurredAt = *req.OccurredAt
	}

	timeoutCtx, cancel := h.WithTimeout(c.Request().Context(), HandlerTypeMutation)
	defer cancel()

	result, err := h.service.Record(timeoutCtx, input)
	if err != nil {
		h.log.WithContext(c.Request().Context()).Errorw("msg", "record activity failed", "tenant_id", tenantID, "action", req.Action, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "record activity failed")
	}
	if result.AlreadyRecorded {
		return c.JSON(http.StatusOK, recordActivityResponse{AlreadyRecorded: true})
	}
	return c.JSON(http.StatusCreated, recordActivityResponse{ID: result.ID})
}
