package handler

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/hitoshi/todolist/internal/middleware"
	"github.com/hitoshi/todolist/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// TodoServiceInterface はページハンドラーが必要とするTodoサービスインターフェース。
type TodoServiceInterface interface {
	List(ctx context.Context, email string) ([]model.TodoView, error)
	Create(ctx context.Context, email string) (*model.Todo, error)
	Delete(ctx context.Context, email, rawID string) error
}

// PageHandler はサーバーレンダリングのページとフォームPOSTを処理する。
type PageHandler struct {
	todos TodoServiceInterface
	tmpl  *template.Template
}

// NewPageHandler はPageHandlerを生成する。
// テンプレートのパースに失敗した場合はエラーを返す。
func NewPageHandler(todos TodoServiceInterface) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		todos: todos,
		tmpl:  tmpl,
	}, nil
}

// indexData はトップページテンプレートに渡すデータ。
type indexData struct {
	Identity  *model.SessionIdentity // 匿名時はnil
	Todos     []model.TodoView
	CSRFToken string
}

// Index はトップページを表示する。
// GET /
// 匿名・未登録ユーザーにはサインイン導線と空の一覧を表示する。
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	email := ""
	if identity != nil {
		email = identity.Email
	}

	todos, err := h.todos.List(r.Context(), email)
	if err != nil {
		slog.Error("failed to list todos", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := indexData{
		Identity:  identity,
		Todos:     todos,
		CSRFToken: middleware.CSRFTokenFromRequest(r),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.Error("failed to render index", slog.String("error", err.Error()))
	}
}

// CreateTodo はTodoを1件作成してトップページに戻る。
// POST /todos
// タイトルは固定で、フォーム入力は受け付けない。
// 未登録ユーザーのPOSTは何も作成せずリダイレクトする。
func (h *PageHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	email := emailFromRequest(r)

	if _, err := h.todos.Create(r.Context(), email); err != nil {
		slog.Error("failed to create todo", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteTodo はフォームのtodoIdで指定されたTodoを削除してトップページに戻る。
// POST /todos/delete
// todoIdが整数でない場合は400を返す。存在しないIDの削除は成功扱い。
func (h *PageHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	email := emailFromRequest(r)
	rawID := r.PostFormValue("todoId")

	if err := h.todos.Delete(r.Context(), email, rawID); err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			middleware.WriteErrorResponse(w, http.StatusBadRequest, apiErr)
			return
		}
		slog.Error("failed to delete todo", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// emailFromRequest はリクエストコンテキストからemailを取り出す。匿名は空文字。
func emailFromRequest(r *http.Request) string {
	if identity := middleware.IdentityFromContext(r.Context()); identity != nil {
		return identity.Email
	}
	return ""
}
