package repository

import (
	"testing"

	"github.com/hitoshi/todolist/internal/model"
)

// ListByOwnerが所有者のTodoのみをID昇順で返すことを検証
func TestSQLTodoRepo_ListByOwner_OwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	insertTestUser(t, db, "u1", "Alice", "a@example.com")
	insertTestUser(t, db, "u2", "Bob", "b@example.com")

	id1 := insertTestTodo(t, db, "first", "u1")
	insertTestTodo(t, db, "other users todo", "u2")
	id3 := insertTestTodo(t, db, "second", "u1")

	repo := NewSQLTodoRepo(db)
	views, err := repo.ListByOwner(testCtx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("len(views) = %d, want 2", len(views))
	}
	if views[0].ID != id1 || views[1].ID != id3 {
		t.Errorf("ids = [%d, %d], want [%d, %d] (ascending)", views[0].ID, views[1].ID, id1, id3)
	}
	for _, v := range views {
		if v.Owner == nil || v.Owner.ID != "u1" {
			t.Errorf("owner = %+v, want u1", v.Owner)
		}
		if v.Owner != nil && v.Owner.Name != "Alice" {
			t.Errorf("owner name = %q, want Alice", v.Owner.Name)
		}
	}
}

// Todoを持たないユーザーには空スライスが返ることを検証
func TestSQLTodoRepo_ListByOwner_Empty(t *testing.T) {
	db := setupTestDB(t)
	insertTestUser(t, db, "u1", "Alice", "a@example.com")

	repo := NewSQLTodoRepo(db)
	views, err := repo.ListByOwner(testCtx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if views == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(views) != 0 {
		t.Errorf("len(views) = %d, want 0", len(views))
	}
}

// CreateがストアのDEFAULTでタイムスタンプを採番し、IDを書き戻すことを検証
func TestSQLTodoRepo_Create_AssignsIDAndTimestamps(t *testing.T) {
	db := setupTestDB(t)
	insertTestUser(t, db, "u1", "Alice", "a@example.com")

	repo := NewSQLTodoRepo(db)
	todo := &model.Todo{
		Title:       "Some New Todo",
		Description: "",
		UserID:      "u1",
	}

	if err := repo.Create(testCtx, todo); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if todo.ID == 0 {
		t.Error("expected assigned ID, got 0")
	}
	if todo.CreatedAt == 0 || todo.UpdatedAt == 0 {
		t.Errorf("expected store-assigned timestamps, got created=%d updated=%d",
			todo.CreatedAt, todo.UpdatedAt)
	}

	// 作成したTodoが一覧から取得できること
	views, err := repo.ListByOwner(testCtx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if len(views) != 1 || views[0].ID != todo.ID {
		t.Errorf("views = %+v, want single todo with ID %d", views, todo.ID)
	}
}

// 連続作成でIDが一意に採番されることを検証
func TestSQLTodoRepo_Create_UniqueIDs(t *testing.T) {
	db := setupTestDB(t)
	insertTestUser(t, db, "u1", "Alice", "a@example.com")

	repo := NewSQLTodoRepo(db)
	first := &model.Todo{Title: "Some New Todo", UserID: "u1"}
	second := &model.Todo{Title: "Some New Todo", UserID: "u1"}

	if err := repo.Create(testCtx, first); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if err := repo.Create(testCtx, second); err != nil {
		t.Fatalf("second Create returned error: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("expected unique ids, both = %d", first.ID)
	}
}

// DeleteByIDAndOwnerが所有者のTodoを削除し、行数1を返すことを検証
func TestSQLTodoRepo_DeleteByIDAndOwner(t *testing.T) {
	db := setupTestDB(t)
	insertTestUser(t, db, "u1", "Alice", "a@example.com")
	id := insertTestTodo(t, db, "to delete", "u1")

	repo := NewSQLTodoRepo(db)
	affected, err := repo.DeleteByIDAndOwner(testCtx, id, "u1")
	if err != nil {
		t.Fatalf("DeleteByIDAndOwner returned error: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}
	if n := countTodos(t, db); n != 0 {
		t.Errorf("todos remaining = %d, want 0", n)
	}
}

// 他ユーザーのTodoは削除されないこと（所有者スコープ）を検証
func TestSQLTodoRepo_DeleteByIDAndOwner_OtherOwner_NoOp(t *testing.T) {
	db := setupTestDB(t)
	insertTestUser(t, db, "u1", "Alice", "a@example.com")
	insertTestUser(t, db, "u2", "Bob", "b@example.com")
	id := insertTestTodo(t, db, "alices todo", "u1")

	repo := NewSQLTodoRepo(db)
	affected, err := repo.DeleteByIDAndOwner(testCtx, id, "u2")
	if err != nil {
		t.Fatalf("DeleteByIDAndOwner returned error: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}
	if n := countTodos(t, db); n != 1 {
		t.Errorf("todos remaining = %d, want 1", n)
	}
}

// 存在しないIDの削除は行数0でエラーにならないこと（冪等）を検証
func TestSQLTodoRepo_DeleteByIDAndOwner_NonexistentID(t *testing.T) {
	db := setupTestDB(t)
	insertTestUser(t, db, "u1", "Alice", "a@example.com")

	repo := NewSQLTodoRepo(db)
	affected, err := repo.DeleteByIDAndOwner(testCtx, 9999, "u1")
	if err != nil {
		t.Fatalf("DeleteByIDAndOwner returned error: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}
}
