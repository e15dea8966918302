// Package todo はTodoの一覧・作成・削除のビジネスロジックを提供する。
// 全操作はセッションのemailからユーザーを解決し、解決できない場合は
// エラーではなく空結果・no-opとして扱う（匿名・未登録は正常系）。
package todo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hitoshi/todolist/internal/model"
	"github.com/hitoshi/todolist/internal/repository"
)

// PlaceholderTitle は作成時に使用する固定タイトル。
// 作成操作は呼び出し側からの入力を受け付けない。
const PlaceholderTitle = "Some New Todo"

// Recorder はTodo操作のメトリクス記録インターフェース。
type Recorder interface {
	RecordTodoCreated()
	RecordTodoDeleted()
}

// Service はTodoに関するビジネスロジックを提供する。
type Service struct {
	users repository.UserRepository
	todos repository.TodoRepository
	rec   Recorder
}

// NewService はServiceを生成する。recはnil可（メトリクス無効）。
func NewService(users repository.UserRepository, todos repository.TodoRepository, rec Recorder) *Service {
	return &Service{
		users: users,
		todos: todos,
		rec:   rec,
	}
}

// ResolveUser はセッションのemailから登録ユーザーを解決する。
// emailが空（匿名）、または該当ユーザーが存在しない（認証済み未登録）場合は
// nilを返す。どちらもエラーではない。副作用なし。
func (s *Service) ResolveUser(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}

// List は解決したユーザーが所有するTodoの一覧を返す。
// ユーザーを解決できない場合は空スライスを返す。
// 「未登録で空」と「登録済みでTodoゼロ」は戻り値の形では区別されない。
func (s *Service) List(ctx context.Context, email string) ([]model.TodoView, error) {
	user, err := s.ResolveUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []model.TodoView{}, nil
	}

	return s.todos.ListByOwner(ctx, user.ID)
}

// Create は解決したユーザーを所有者として固定タイトルのTodoを1件作成する。
// ユーザーを解決できない場合は何もせずnilを返す（サイレントno-op）。
func (s *Service) Create(ctx context.Context, email string) (*model.Todo, error) {
	user, err := s.ResolveUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	todo := &model.Todo{
		Title:       PlaceholderTitle,
		Description: "",
		UserID:      user.ID,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}

	if s.rec != nil {
		s.rec.RecordTodoCreated()
	}
	return todo, nil
}

// Delete は指定IDのTodoを削除する。
// rawIDが整数に変換できない場合はストアにアクセスせずValidationErrorを返す。
// ユーザーを解決できない場合はno-op。削除は所有者スコープで行うため、
// 他ユーザーのTodoは削除されない（一覧と同じ可視性ポリシー）。
// 該当行がない削除は冪等にゼロ行で成功する。
func (s *Service) Delete(ctx context.Context, email, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return model.NewInvalidTodoIDError(rawID)
	}

	user, err := s.ResolveUser(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	affected, err := s.todos.DeleteByIDAndOwner(ctx, id, user.ID)
	if err != nil {
		return err
	}

	if affected > 0 && s.rec != nil {
		s.rec.RecordTodoDeleted()
	}
	return nil
}
