// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// Emailは外部IdPとの照合キーであり、登録ユーザー間で一意。
type User struct {
	ID    string
	Name  string
	Email string
}

// Identity は外部IdPとの紐付け情報を表す。
// 将来的に複数のIdP（Google, GitHub等）に対応可能な構造。
type Identity struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	CreatedAt      time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionIdentity は認証済みセッションの身元情報を表す。
// 外部認証レイヤーが返すemail/nameのペアで、nilは匿名（未ログイン）を意味する。
type SessionIdentity struct {
	Email string
	Name  string
}
