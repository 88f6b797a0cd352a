package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogman/internal/article"
	"github.com/hitoshi/blogman/internal/middleware"
)

// ArticleServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type ArticleServiceInterface interface {
	Add(ctx context.Context, input article.AddInput) (*article.Result, error)
	Archive(ctx context.Context, id int64) (*article.Result, error)
	List(ctx context.Context, page *int) (*article.Result, error)
	ListByStatus(ctx context.Context, status string, page *int) (*article.Result, error)
}

// ArticleHandler は記事関連のHTTPハンドラー。
type ArticleHandler struct {
	service ArticleServiceInterface
}

// NewArticleHandler はArticleHandlerを生成する。
func NewArticleHandler(service ArticleServiceInterface) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// articleForm は記事作成リクエストのボディ。
// JSONボディとHTMLフォームの両方を受け付ける。
type articleForm struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	Status          string `json:"status"`
	PublicationDate string `json:"publication_date"`
}

// parseArticleForm はContent-Typeに応じてリクエストボディを解釈する。
func parseArticleForm(r *http.Request) (*articleForm, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var form articleForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return nil, err
		}
		return &form, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &articleForm{
		Title:           r.PostFormValue("title"),
		Content:         r.PostFormValue("content"),
		Status:          r.PostFormValue("status"),
		PublicationDate: r.PostFormValue("publication_date"),
	}, nil
}

// New は記事を作成する。著者は認証済みセッションのユーザーに固定される。
// POST /api/article/new
func (h *ArticleHandler) New(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	form, err := parseArticleForm(r)
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "リクエストボディを解釈できません。")
		return
	}

	result, err := h.service.Add(r.Context(), article.AddInput{
		Title:               form.Title,
		Content:             form.Content,
		Status:              form.Status,
		AuthorID:            userID,
		PublicationDateHint: form.PublicationDate,
	})
	if err != nil {
		slog.Error("failed to add article",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		middleware.WriteInternalServerError(w)
		return
	}

	writeResult(w, r, result)
}

// Archive は記事をアーカイブ状態に遷移させる。
// PUT /api/article/{id}/archive
func (h *ArticleHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, r, http.StatusBadRequest, "不正な記事IDです。")
		return
	}

	result, err := h.service.Archive(r.Context(), id)
	if err != nil {
		slog.Error("failed to archive article",
			slog.Int64("article_id", id),
			slog.String("error", err.Error()),
		)
		middleware.WriteInternalServerError(w)
		return
	}

	writeResult(w, r, result)
}

// List は記事サマリーの一覧を返す。
//
//	GET /api/articles              全件
//	GET /api/articles/{arg}        argが数値ならそのページ、それ以外はステータス絞り込みの全件
//	GET /api/articles/{arg}/{page} ステータス絞り込み + ページ指定
//
// ページに1未満の値が指定された場合はページネーションなしとして扱う。
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	arg := chi.URLParam(r, "arg")
	pageParam := chi.URLParam(r, "page")

	var result *article.Result
	var err error

	switch {
	case arg == "":
		result, err = h.service.List(r.Context(), nil)
	case pageParam == "":
		// 第1セグメントが数値の場合は全件一覧のページ番号とみなす
		if n, convErr := strconv.Atoi(arg); convErr == nil {
			result, err = h.service.List(r.Context(), pageOrNil(n))
		} else {
			result, err = h.service.ListByStatus(r.Context(), arg, nil)
		}
	default:
		n, convErr := strconv.Atoi(pageParam)
		if convErr != nil {
			writeMessage(w, r, http.StatusBadRequest, "不正なページ番号です。")
			return
		}
		result, err = h.service.ListByStatus(r.Context(), arg, pageOrNil(n))
	}

	if err != nil {
		slog.Error("failed to list articles", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	writeResult(w, r, result)
}

// pageOrNil は1以上のページ番号のみを有効として返す。
func pageOrNil(n int) *int {
	if n < 1 {
		return nil
	}
	return &n
}
