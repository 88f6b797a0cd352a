// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/blogman/internal/model"
)

// ArticleRepository は記事データの永続化インターフェース。
// 一覧系はサマリー（著者ユーザー名をJOINした射影）を返す。
type ArticleRepository interface {
	// Create は新規記事を作成し、採番されたIDを返す。
	// 制約違反（著者不在等）やバックエンド障害はエラーとして返す。
	Create(ctx context.Context, article *model.Article) (int64, error)

	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Article, error)

	// FindAll は記事サマリーの一覧を返す。
	// pageがnilの場合は全件、指定された場合は1ページ10件のウィンドウを返す。
	// データ範囲外のページは空スライスを返す（エラーではない）。
	// 並び順はID昇順で、同一クエリに対して常に安定している。
	FindAll(ctx context.Context, page *int) ([]model.ArticleSummary, error)

	// FindByStatus は指定ステータスの記事サマリー一覧を返す。
	// ページネーション挙動はFindAllと同一。
	FindByStatus(ctx context.Context, status model.Status, page *int) ([]model.ArticleSummary, error)

	// Save は既存記事の変更を永続化する（アーカイブで使用）。
	Save(ctx context.Context, article *model.Article) error
}

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create は新規ユーザーを作成し、採番されたIDを返す。
	Create(ctx context.Context, user *model.User) (int64, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
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
