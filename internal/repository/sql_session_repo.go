package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/todolist/internal/database"
	"github.com/hitoshi/todolist/internal/model"
)

// SQLSessionRepo はdatabase/sql経由のセッションリポジトリ。
type SQLSessionRepo struct {
	db *database.DB
}

// NewSQLSessionRepo はSQLSessionRepoを生成する。
func NewSQLSessionRepo(db *database.DB) *SQLSessionRepo {
	return &SQLSessionRepo{db: db}
}

// Create はセッションを作成する。
func (r *SQLSessionRepo) Create(ctx context.Context, session *model.Session) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`),
		session.ID, session.UserID, session.ExpiresAt.Unix(), session.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// FindByID は指定IDのセッションを取得する。期限切れまたは未ヒットの場合はnilを返す。
func (r *SQLSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	session := &model.Session{}
	var expiresAt, createdAt int64

	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ? AND expires_at > ?`),
		id, time.Now().Unix(),
	).Scan(&session.ID, &session.UserID, &expiresAt, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	session.ExpiresAt = time.Unix(expiresAt, 0)
	session.CreatedAt = time.Unix(createdAt, 0)
	return session, nil
}

// DeleteByID は指定IDのセッションを削除する。存在しないIDでもエラーにしない。
func (r *SQLSessionRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM sessions WHERE id = ?`), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SessionRepository = (*SQLSessionRepo)(nil)
