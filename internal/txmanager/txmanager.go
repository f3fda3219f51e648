// Package txmanager 提供跨仓储共享事务的最小抽象。
// 仓储方法接收 Session 参数，传 nil 表示直接使用连接池。
package txmanager

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session 暴露当前事务，供仓储通过 WithTx 绑定查询。
type Session interface {
	Tx() pgx.Tx
}

type session struct {
	tx pgx.Tx
}

func (s session) Tx() pgx.Tx { return s.tx }

// Manager 基于 pgx 连接池开启事务。
type Manager struct {
	pool *pgxpool.Pool
}

// NewManager 构造 Manager。
func NewManager(pool *pgxpool.Pool) *Manager {
	return &Manager{pool: pool}
}

// Within 在单个事务中执行 fn，fn 返回错误时回滚。
func (m *Manager) Within(ctx context.Context, fn func(ctx context.Context, sess Session) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, session{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
