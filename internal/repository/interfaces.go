// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/todolist/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定emailのユーザーを取得する。見つからない場合はnilを返す。
	// emailは登録ユーザー間で一意（UNIQUE制約）。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// CreateWithIdentity はユーザーとidentityを同一トランザクションで作成する。
	CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error
}

// IdentityRepository は外部IdP紐付け情報の永続化インターフェース。
type IdentityRepository interface {
	// FindByProviderAndProviderUserID はproviderとprovider_user_idでidentityを検索する。
	// 見つからない場合はnilを返す。
	FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// TodoRepository はTodoデータの永続化インターフェース。
type TodoRepository interface {
	// ListByOwner は指定ユーザーが所有するTodoを所有者情報付きで返す。
	// 結果はID昇順で安定ソートされる。
	ListByOwner(ctx context.Context, ownerID string) ([]model.TodoView, error)

	// Create はTodoを作成し、ストアが採番したIDとタイムスタンプをtodoに書き戻す。
	Create(ctx context.Context, todo *model.Todo) error

	// DeleteByIDAndOwner は指定IDかつ指定所有者のTodoを削除し、削除行数を返す。
	// 該当行がない場合は0を返す（エラーにしない）。
	DeleteByIDAndOwner(ctx context.Context, id int64, ownerID string) (int64, error)
}
