package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/blogman/internal/model"
)

// pageSize は一覧取得の1ページあたりの件数。
const pageSize = 10

// PostgresArticleRepo はPostgreSQLを使用した記事リポジトリ。
type PostgresArticleRepo struct {
	db *sql.DB
}

// NewPostgresArticleRepo はPostgresArticleRepoを生成する。
func NewPostgresArticleRepo(db *sql.DB) *PostgresArticleRepo {
	return &PostgresArticleRepo{db: db}
}

// Create は新規記事を作成し、採番されたIDを返す。
func (r *PostgresArticleRepo) Create(ctx context.Context, article *model.Article) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO articles (title, content, author_id, publication_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		article.Title, article.Content, article.AuthorID,
		article.PublicationDate, string(article.Status),
		article.CreatedAt, article.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert article: %w", err)
	}
	return id, nil
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *PostgresArticleRepo) FindByID(ctx context.Context, id int64) (*model.Article, error) {
	article := &model.Article{}
	var status string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, author_id, publication_date, status, created_at, updated_at
		 FROM articles WHERE id = $1`,
		id,
	).Scan(
		&article.ID, &article.Title, &article.Content, &article.AuthorID,
		&article.PublicationDate, &status, &article.CreatedAt, &article.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find article by ID: %w", err)
	}

	article.Status = model.Status(status)
	return article, nil
}

// FindAll は記事サマリーの一覧を返す。
// pageがnilの場合は全件、指定された場合は1ページ10件のウィンドウを返す。
func (r *PostgresArticleRepo) FindAll(ctx context.Context, page *int) ([]model.ArticleSummary, error) {
	query := `
		SELECT a.id, a.title, a.content, a.publication_date, a.status, u.username AS author
		FROM articles a
		JOIN users u ON a.author_id = u.id
		ORDER BY a.id`

	args := []interface{}{}
	if page != nil {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, pageSize, (*page-1)*pageSize)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// FindByStatus は指定ステータスの記事サマリー一覧を返す。
func (r *PostgresArticleRepo) FindByStatus(ctx context.Context, status model.Status, page *int) ([]model.ArticleSummary, error) {
	query := `
		SELECT a.id, a.title, a.content, a.publication_date, a.status, u.username AS author
		FROM articles a
		JOIN users u ON a.author_id = u.id
		WHERE a.status = $1
		ORDER BY a.id`

	args := []interface{}{string(status)}
	if page != nil {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, pageSize, (*page-1)*pageSize)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles by status: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// Save は既存記事の変更を永続化する。
func (r *PostgresArticleRepo) Save(ctx context.Context, article *model.Article) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE articles SET
		    title = $2, content = $3, publication_date = $4, status = $5, updated_at = $6
		 WHERE id = $1`,
		article.ID, article.Title, article.Content,
		article.PublicationDate, string(article.Status), article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

// scanSummaries は一覧クエリの結果行をArticleSummaryスライスに変換する。
func scanSummaries(rows *sql.Rows) ([]model.ArticleSummary, error) {
	summaries := []model.ArticleSummary{}
	for rows.Next() {
		var s model.ArticleSummary
		var status string

		if err := rows.Scan(
			&s.ID, &s.Title, &s.Content, &s.PublicationDate, &status, &s.AuthorUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}

		s.Status = model.Status(status)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate article rows: %w", err)
	}

	return summaries, nil
}

// compile-time interface check
var _ ArticleRepository = (*PostgresArticleRepo)(nil)
