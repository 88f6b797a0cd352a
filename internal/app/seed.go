package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/blogman/internal/article"
	"github.com/hitoshi/blogman/internal/auth"
	"github.com/hitoshi/blogman/internal/config"
	"github.com/hitoshi/blogman/internal/database"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

const (
	seedUsername = "writer"
	seedPassword = "password"
)

// runSeed は開発・検証用の初期データを投入する。
// シードユーザーと各ステータスの記事を作成する。
// シードユーザーが既に存在する場合は何もせずに終了する（冪等）。
func runSeed(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	userRepo := repository.NewPostgresUserRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)
	articleRepo := repository.NewPostgresArticleRepo(db)

	authService := auth.NewService(
		userRepo, sessionRepo,
		auth.ServiceConfig{SessionMaxAge: cfg.SessionMaxAge},
	)
	articleService := article.NewService(
		articleRepo,
		security.NewMarkupEscaper(),
		security.NewExcerptBuilder(),
		nil,
		nil,
	)

	ctx := context.Background()

	// 冪等性: シードユーザーが既に存在する場合はスキップ
	existing, err := userRepo.FindByUsername(ctx, seedUsername)
	if err != nil {
		return fmt.Errorf("failed to check seed user: %w", err)
	}
	if existing != nil {
		slog.Info("seed user already exists, skipping", slog.String("username", seedUsername))
		return nil
	}

	user, err := authService.Register(ctx, seedUsername, seedPassword)
	if err != nil {
		return fmt.Errorf("failed to create seed user: %w", err)
	}
	slog.Info("seed user created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	futureDate := time.Now().Add(30 * 24 * time.Hour).Format("2006-01-02 15:04:05")
	created := 0

	for i := 1; i <= 15; i++ {
		input := article.AddInput{
			Title:    fmt.Sprintf("公開記事 その%d", i),
			Content:  fmt.Sprintf("<p>これは%d番目の公開記事の本文です。</p>", i),
			Status:   "published",
			AuthorID: user.ID,
		}
		if err := seedArticle(ctx, articleService, input); err != nil {
			return err
		}
		created++
	}

	for i := 1; i <= 5; i++ {
		input := article.AddInput{
			Title:               fmt.Sprintf("下書き記事 その%d", i),
			Content:             fmt.Sprintf("<p>これは%d番目の下書き記事の本文です。</p>", i),
			Status:              "draft",
			AuthorID:            user.ID,
			PublicationDateHint: futureDate,
		}
		if err := seedArticle(ctx, articleService, input); err != nil {
			return err
		}
		created++
	}

	// アーカイブ済み記事は一度作成してからアーカイブする
	for i := 1; i <= 5; i++ {
		input := article.AddInput{
			Title:    fmt.Sprintf("アーカイブ記事 その%d", i),
			Content:  fmt.Sprintf("<p>これは%d番目のアーカイブ記事の本文です。</p>", i),
			Status:   "published",
			AuthorID: user.ID,
		}
		if err := seedArticle(ctx, articleService, input); err != nil {
			return err
		}
		created++
	}

	summaries, err := articleRepo.FindByStatus(ctx, "published", nil)
	if err != nil {
		return fmt.Errorf("failed to list seeded articles: %w", err)
	}
	archived := 0
	for _, s := range summaries {
		if archived >= 5 {
			break
		}
		result, err := articleService.Archive(ctx, s.ID)
		if err != nil {
			return fmt.Errorf("failed to archive seeded article %d: %w", s.ID, err)
		}
		if result.Code != http.StatusOK {
			return fmt.Errorf("unexpected archive result for article %d: %s", s.ID, result.Message)
		}
		archived++
	}

	slog.Info("seed completed",
		slog.Int("articles_created", created),
		slog.Int("articles_archived", archived),
	)
	return nil
}

func seedArticle(ctx context.Context, svc *article.Service, input article.AddInput) error {
	result, err := svc.Add(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create seed article %q: %w", input.Title, err)
	}
	if result.Code != http.StatusOK {
		return fmt.Errorf("seed article %q rejected: %s", input.Title, result.Message)
	}
	return nil
}
