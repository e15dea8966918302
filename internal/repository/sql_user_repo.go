package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/todolist/internal/database"
	"github.com/hitoshi/todolist/internal/model"
)

// SQLUserRepo はdatabase/sql経由のユーザーリポジトリ。
// PostgreSQL・SQLiteの両方言で動作する。
type SQLUserRepo struct {
	db *database.DB
}

// NewSQLUserRepo はSQLUserRepoを生成する。
func NewSQLUserRepo(db *database.DB) *SQLUserRepo {
	return &SQLUserRepo{db: db}
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *SQLUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT id, name, email FROM users WHERE id = ?`, id)
}

// FindByEmail は指定emailのユーザーを取得する。見つからない場合はnilを返す。
func (r *SQLUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT id, name, email FROM users WHERE email = ?`, email)
}

// findOne は単一行のユーザー検索を実行する。未ヒットはnilを返し、エラーにしない。
func (r *SQLUserRepo) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	var name, email sql.NullString

	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), arg).
		Scan(&user.ID, &name, &email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Name = name.String
	user.Email = email.String
	return user, nil
}

// CreateWithIdentity はユーザーとidentityを同一トランザクションで作成する。
func (r *SQLUserRepo) CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO users (id, name, email) VALUES (?, ?, ?)`),
		user.ID, user.Name, user.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO identities (id, user_id, provider, provider_user_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`),
		identity.ID, identity.UserID, identity.Provider, identity.ProviderUserID, identity.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert identity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// compile-time interface check
var _ UserRepository = (*SQLUserRepo)(nil)
