package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/todolist/internal/database"
	"github.com/hitoshi/todolist/internal/model"
)

// SQLTodoRepo はdatabase/sql経由のTodoリポジトリ。
type SQLTodoRepo struct {
	db *database.DB
}

// NewSQLTodoRepo はSQLTodoRepoを生成する。
func NewSQLTodoRepo(db *database.DB) *SQLTodoRepo {
	return &SQLTodoRepo{db: db}
}

// ListByOwner は指定ユーザーが所有するTodoを所有者情報付きで返す。
// usersとのLEFT JOINで所有者の表示名を取得し、所有者のIDで絞り込む。
// 元のストアは順序未指定だったため、ID昇順を明示して安定させている。
func (r *SQLTodoRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.TodoView, error) {
	rows, err := r.db.QueryContext(ctx,
		r.db.Rebind(`SELECT t.id, t.title, t.description, u.id, u.name
		 FROM todos t
		 LEFT JOIN users u ON u.id = t.user_id
		 WHERE u.id = ?
		 ORDER BY t.id ASC`),
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	views := []model.TodoView{}
	for rows.Next() {
		var v model.TodoView
		var ownerIDCol, ownerName sql.NullString

		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &ownerIDCol, &ownerName); err != nil {
			return nil, fmt.Errorf("failed to scan todo row: %w", err)
		}
		if ownerIDCol.Valid {
			v.Owner = &model.TodoOwner{ID: ownerIDCol.String, Name: ownerName.String}
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todo rows: %w", err)
	}

	return views, nil
}

// Create はTodoを作成する。
// created_at/updated_atはストア側のDEFAULTで採番し、
// RETURNINGでID・タイムスタンプをtodoに書き戻す。
func (r *SQLTodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`INSERT INTO todos (title, description, user_id) VALUES (?, ?, ?)
		 RETURNING id, created_at, updated_at`),
		todo.Title, todo.Description, todo.UserID,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// DeleteByIDAndOwner は指定IDかつ指定所有者のTodoを削除し、削除行数を返す。
// 所有者スコープで絞るため、他ユーザーのTodoは削除されない。
// 該当行がない場合は0を返す（冪等）。
func (r *SQLTodoRepo) DeleteByIDAndOwner(ctx context.Context, id int64, ownerID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM todos WHERE id = ? AND user_id = ?`),
		id, ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// compile-time interface check
var _ TodoRepository = (*SQLTodoRepo)(nil)
