package model

// Todo はユーザーが所有するTodoアイテムを表す。
// CreatedAt/UpdatedAtはストア側でINSERT時に付与されるunix秒。
// UpdatedAtを更新する操作は現状存在しない（更新APIがないため）。
type Todo struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   int64
	UpdatedAt   int64
	UserID      string
}

// TodoOwner はTodo一覧表示用の所有者情報。
type TodoOwner struct {
	ID   string
	Name string
}

// TodoView はTodo一覧の1行を表す。
// OwnerはusersとのLEFT JOIN結果のため、理論上nilになりうる。
type TodoView struct {
	ID          int64
	Title       string
	Description string
	Owner       *TodoOwner
}
