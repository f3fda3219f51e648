package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tutoro/services-feed/internal/models/po"
	"github.com/tutoro/services-feed/internal/txmanager"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// 上游目录事件类型，由报名/排课服务经 Inbox 投递。
const (
	eventTypeStudentUpserted = "tutoring.student.upserted"
	eventTypeLessonUpserted  = "tutoring.lesson.upserted"
)

type studentUpsertedPayload struct {
	StudentID   int64  `json:"student_id"`
	TenantID    int64  `json:"tenant_id"`
	DisplayName string `json:"display_name"`
	Version     int64  `json:"version"`
}

type lessonUpsertedPayload struct {
	LessonID  int64     `json:"lesson_id"`
	TenantID  int64     `json:"tenant_id"`
	StudentID *int64    `json:"student_id"`
	StartsAt  time.Time `json:"starts_at"`
	Version   int64     `json:"version"`
}

// DirectoryService 消费 Inbox 中的目录事件，维护补水用的学生/课程投影。
type DirectoryService struct {
	inbox     InboxRepository
	directory DirectoryProjectionRepository
	tx        *txmanager.Manager
	log       *log.Helper
}

// NewDirectoryService 构造 DirectoryService。
func NewDirectoryService(inbox InboxRepository, directory DirectoryProjectionRepository, tx *txmanager.Manager, logger log.Logger) *DirectoryService {
	return &DirectoryService{
		inbox:     inbox,
		directory: directory,
		tx:        tx,
		log:       log.NewHelper(logger),
	}
}

// ProcessPending 处理一批未消费的 Inbox 事件，返回成功处理的数量。
// 单条失败只记录在该行上，不阻塞批次里的其他事件。
func (s *DirectoryService) ProcessPending(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	events, err := s.inbox.ListUnprocessed(ctx, nil, batchSize)
	if err != nil {
		return 0, fmt.Errorf("list unprocessed inbox events: %w", err)
	}
	processed := 0
	for _, evt := range events {
		eventID, parseErr := uuid.Parse(evt.EventID)
		if parseErr != nil {
			s.log.WithContext(ctx).Errorw("msg", "invalid inbox event id", "event_id", evt.EventID, "error", parseErr)
			continue
		}
		if applyErr := s.apply(ctx, eventID, evt); applyErr != nil {
			s.log.WithContext(ctx).Errorw("msg", "apply inbox event failed", "event_id", evt.EventID, "event_type", evt.EventType, "error", applyErr)
			if recordErr := s.inbox.RecordError(ctx, nil, eventID, applyErr.Error()); recordErr != nil {
				s.log.WithContext(ctx).Errorw("msg", "record inbox error failed", "event_id", evt.EventID, "error", recordErr)
			}
			continue
		}
		processed++
	}
	return processed, nil
}

// Run 以固定间隔轮询 Inbox，直到 ctx 取消。
func (s *DirectoryService) Run(ctx context.Context, interval time.Duration, batchSize int) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := s.ProcessPending(ctx, batchSize); err != nil {
			s.log.WithContext(ctx).Errorw("msg", "inbox poll failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// apply 在单个事务里应用投影变更并标记事件已处理。
// 未知事件类型直接标记处理，避免毒事件卡住队列。
func (s *DirectoryService) apply(ctx context.Context, eventID uuid.UUID, evt *po.InboxEvent) error {
	return s.tx.Within(ctx, func(ctx context.Context, sess txmanager.Session) error {
		switch evt.EventType {
		case eventTypeStudentUpserted:
			var payload studentUpsertedPayload
			if err := json.Unmarshal(evt.Payload, &payload); err != nil {
				return fmt.Errorf("unmarshal %s: %w", evt.EventType, err)
			}
			if err := s.directory.UpsertStudent(ctx, sess, po.StudentProjection{
				StudentID:   payload.StudentID,
				TenantID:    payload.TenantID,
				DisplayName: payload.DisplayName,
				Version:     payload.Version,
			}); err != nil {
				return err
			}
		case eventTypeLessonUpserted:
			var payload lessonUpsertedPayload
			if err := json.Unmarshal(evt.Payload, &payload); err != nil {
				return fmt.Errorf("unmarshal %s: %w", evt.EventType, err)
			}
			if err := s.directory.UpsertLesson(ctx, sess, po.LessonProjection{
				LessonID:  payload.LessonID,
				TenantID:  payload.TenantID,
				StudentID: payload.StudentID,
				StartsAt:  payload.StartsAt,
				Version:   payload.Version,
			}); err != nil {
				return err
			}
		default:
			s.log.WithContext(ctx).Warnw("msg", "skipping unknown inbox event type", "event_type", evt.EventType)
		}
		now := time.Now().UTC()
		return s.inbox.MarkProcessed(ctx, sess, eventID, &now)
	})
}
