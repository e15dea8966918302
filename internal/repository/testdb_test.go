package repository

import (
	"context"
	"testing"
	"time"

	"github.com/hitoshi/todolist/internal/database"
	"github.com/hitoshi/todolist/internal/model"
)

// setupTestDB はマイグレーション適用済みのインメモリSQLiteを返す。
// インメモリDBはコネクションごとに独立するため、プールを1本に制限する。
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(database.Target{Dialect: database.DialectSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.MigrateUp(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// insertTestUser はテスト用ユーザーを作成する。
func insertTestUser(t *testing.T, db *database.DB, id, name, email string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO users (id, name, email) VALUES (?, ?, ?)`,
		id, name, email,
	)
	if err != nil {
		t.Fatalf("failed to insert test user: %v", err)
	}
}

// insertTestTodo はテスト用Todoを作成し、採番されたIDを返す。
func insertTestTodo(t *testing.T, db *database.DB, title, userID string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO todos (title, description, user_id) VALUES (?, ?, ?) RETURNING id`,
		title, "", userID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to insert test todo: %v", err)
	}
	return id
}

// countTodos はtodosテーブルの全行数を返す。
func countTodos(t *testing.T, db *database.DB) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		t.Fatalf("failed to count todos: %v", err)
	}
	return n
}

// newTestSession は有効期限付きのテスト用セッションを生成する。
func newTestSession(id, userID string, ttl time.Duration) *model.Session {
	now := time.Now()
	return &model.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

var testCtx = context.Background()
