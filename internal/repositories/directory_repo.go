package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tutoro/services-feed/internal/models/po"
	"github.com/tutoro/services-feed/internal/repositories/feeddb"
	"github.com/tutoro/services-feed/internal/repositories/mappers"
	"github.com/tutoro/services-feed/internal/services"
	"github.com/tutoro/services-feed/internal/txmanager"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DirectoryRepository 维护学生与课程两张目录投影表，
// 读侧服务于补水，写侧服务于 Inbox 投影器。
type DirectoryRepository struct {
	db      *pgxpool.Pool
	queries *feeddb.Queries
	log     *log.Helper
}

// NewDirectoryRepository 构造仓储实例。
func NewDirectoryRepository(db *pgxpool.Pool, logger log.Logger) *DirectoryRepository {
	return &DirectoryRepository{
		db:      db,
		queries: feeddb.New(db),
		log:     log.NewHelper(logger),
	}
}

// StudentNames 批量查询学生展示名，投影缺失的 ID 不会出现在结果里。
func (r *DirectoryRepository) StudentNames(ctx context.Context, sess txmanager.Session, ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	rows, err := queries.ListStudentNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list student names: %w", err)
	}
	names := make(map[int64]string, len(rows))
	for _, row := range rows {
		names[row.StudentID] = row.DisplayName
	}
	return names, nil
}

// LessonStartTimes 批量查询课程开始时间，投影缺失的 ID 不会出现在结果里。
func (r *DirectoryRepository) LessonStartTimes(ctx context.Context, sess txmanager.Session, ids []int64) (map[int64]time.Time, error) {
	if len(ids) == 0 {
		return map[int64]time.Time{}, nil
	}
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	rows, err := queries.ListLessonStartTimes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list lesson start times: %w", err)
	}
	starts := make(map[int64]time.Time, len(rows))
	for _, row := range rows {
		if !row.StartsAt.Valid {
			continue
		}
		starts[row.LessonID] = row.StartsAt.Time
	}
	return starts, nil
}

// UpsertStudent 按版本号写入学生投影，过期版本会被条件更新忽略。
func (r *DirectoryRepository) UpsertStudent(ctx context.Context, sess txmanager.Session, projection po.StudentProjection) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	err := queries.UpsertStudentProjection(ctx, feeddb.UpsertStudentProjectionParams{
		StudentID:   projection.StudentID,
		TenantID:    projection.TenantID,
		DisplayName: projection.DisplayName,
		Version:     projection.Version,
	})
	if err != nil {
		return fmt.Errorf("upsert student projection: %w", err)
	}
	return nil
}

// UpsertLesson 按版本号写入课程投影。
func (r *DirectoryRepository) UpsertLesson(ctx context.Context, sess txmanager.Session, projection po.LessonProjection) error {
	queries := r.queries
	if sess != nil {
		queries = queries.WithTx(sess.Tx())
	}
	err := queries.UpsertLessonProjection(ctx, feeddb.UpsertLessonProjectionParams{
		LessonID:  projection.LessonID,
		TenantID:  projection.TenantID,
		StudentID: mappers.ToPgInt8(projection.StudentID),
		StartsAt:  mappers.ToPgTimestamptz(projection.StartsAt),
		Version:   projection.Version,
	})
	if err != nil {
		return fmt.Errorf("upsert lesson projection: %w", err)
	}
	return nil
}

var (
	_ services.DirectoryRepository           = (*DirectoryRepository)(nil)
	_ services.DirectoryProjectionRepository = (*DirectoryRepository)(nil)
)
