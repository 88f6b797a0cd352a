// Package article は記事のライフサイクル管理のドメインロジックを提供する。
package article

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// publicationDateLayouts は公開日ヒントとして受理する日時フォーマット。
// RFC3339と "YYYY-MM-DD HH:MM:SS"（サーバーローカル時刻として解釈）を受け付ける。
var publicationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Clock は現在時刻を返す関数型。テストで固定時刻を注入するために使用する。
type Clock func() time.Time

// MetricsRecorder は記事操作のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordArticleCreated()
	RecordArticleArchived()
	RecordValidationFailure()
}

// AddInput は記事作成の入力を表す。
// AuthorIDは認証済みユーザーのIDを呼び出し側が明示的に渡す。
// PublicationDateHintはステータスがdraftの場合のみ必須。
type AddInput struct {
	Title               string
	Content             string
	Status              string
	AuthorID            int64
	PublicationDateHint string
}

// Result は各操作の結果エンベロープを表す。
// CodeはHTTPステータスコード相当の結果区分（200/400/404）として扱う。
type Result struct {
	Code     int
	Message  string
	Articles []model.ArticleSummary
}

// Service は記事ライフサイクルのサービス層。
// 入力のエスケープ、バリデーション、ステータス遷移、ページネーションの調整を担う。
// ストア障害はエンベロープに変換せず、errorとして呼び出し側に伝播する。
type Service struct {
	repo     repository.ArticleRepository
	escaper  security.MarkupEscaperService
	excerpts security.ExcerptBuilderService
	metrics  MetricsRecorder
	now      Clock
}

// NewService はServiceの新しいインスタンスを生成する。
// clockがnilの場合はtime.Nowを使用する。metricsはnil許容。
func NewService(
	repo repository.ArticleRepository,
	escaper security.MarkupEscaperService,
	excerpts security.ExcerptBuilderService,
	metrics MetricsRecorder,
	clock Clock,
) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		repo:     repo,
		escaper:  escaper,
		excerpts: excerpts,
		metrics:  metrics,
		now:      clock,
	}
}

// Add は記事を作成する。
// 処理順序: エスケープ → 下書き公開日ルール → バリデーション → 永続化。
// バリデーションは永続化より前に完結し、失敗時は一切の永続化を行わない。
func (s *Service) Add(ctx context.Context, input AddInput) (*Result, error) {
	// 1. マークアップ上意味を持つ文字のエスケープ（必須の変換）
	title := s.escaper.Escape(input.Title)
	content := s.escaper.Escape(input.Content)
	status := s.escaper.Escape(input.Status)

	// 2. 公開日のデフォルトは作成時刻
	now := s.now()
	candidate := &model.Article{
		Title:           title,
		Content:         content,
		AuthorID:        input.AuthorID,
		PublicationDate: now,
		Status:          model.Status(status),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// 3. 下書きの場合、公開日ヒントは現在時刻より厳密に後でなければならない
	if candidate.Status == model.StatusDraft {
		hint, err := parsePublicationDate(input.PublicationDateHint)
		if err != nil || !hint.After(now) {
			s.recordValidationFailure()
			return &Result{
				Code:    http.StatusBadRequest,
				Message: "公開日は現在時刻より後を指定してください。",
			}, nil
		}
		candidate.PublicationDate = hint
	}

	// 4. データモデル不変条件のバリデーション
	if violations := validateArticle(candidate); len(violations) > 0 {
		s.recordValidationFailure()
		return &Result{
			Code:    http.StatusBadRequest,
			Message: "記事を作成できません。不正な値: " + strings.Join(violations, "、"),
		}, nil
	}

	// 5. 永続化。ストア障害はエンベロープに変換せず伝播する
	id, err := s.repo.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("記事の作成に失敗しました: %w", err)
	}

	slog.Info("article created",
		slog.Int64("article_id", id),
		slog.Int64("author_id", candidate.AuthorID),
		slog.String("status", string(candidate.Status)),
	)
	if s.metrics != nil {
		s.metrics.RecordArticleCreated()
	}

	return &Result{
		Code:    http.StatusOK,
		Message: "記事を作成しました。",
	}, nil
}

// Archive は記事をアーカイブ状態に遷移させる。
// どのステータスからも遷移可能で、アーカイブ済み記事への再実行も冪等に成功する。
// ステータスの上書きにはエスケープを適用しない（archived定数の直接書き込み）。
func (s *Service) Archive(ctx context.Context, id int64) (*Result, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if article == nil {
		return &Result{
			Code:    http.StatusNotFound,
			Message: "記事が見つかりません。",
		}, nil
	}

	article.Status = model.StatusArchived
	article.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, article); err != nil {
		return nil, fmt.Errorf("記事のアーカイブに失敗しました: %w", err)
	}

	slog.Info("article archived", slog.Int64("article_id", id))
	if s.metrics != nil {
		s.metrics.RecordArticleArchived()
	}

	return &Result{
		Code:    http.StatusOK,
		Message: "記事をアーカイブしました。",
	}, nil
}

// List は記事サマリーの一覧を返す。
// 範囲外ページの空結果は正常系であり、常に200を返す。
func (s *Service) List(ctx context.Context, page *int) (*Result, error) {
	summaries, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("記事一覧の取得に失敗しました: %w", err)
	}

	return &Result{
		Code:     http.StatusOK,
		Articles: s.withExcerpts(summaries),
	}, nil
}

// ListByStatus は指定ステータスの記事サマリー一覧を返す。
// ステータスが集合に属さない場合は400を返し、ストアには問い合わせない。
func (s *Service) ListByStatus(ctx context.Context, status string, page *int) (*Result, error) {
	if !model.ValidStatus(status) {
		s.recordValidationFailure()
		return &Result{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("無効なステータスです。%s のいずれかを指定してください。", model.StatusValuesString()),
		}, nil
	}

	summaries, err := s.repo.FindByStatus(ctx, model.Status(status), page)
	if err != nil {
		return nil, fmt.Errorf("ステータス別記事一覧の取得に失敗しました: %w", err)
	}

	return &Result{
		Code:     http.StatusOK,
		Articles: s.withExcerpts(summaries),
	}, nil
}

// withExcerpts は各サマリーに抜粋を付与する。結果は常に非nilスライス。
func (s *Service) withExcerpts(summaries []model.ArticleSummary) []model.ArticleSummary {
	if summaries == nil {
		return []model.ArticleSummary{}
	}
	if s.excerpts == nil {
		return summaries
	}
	for i := range summaries {
		summaries[i].Excerpt = s.excerpts.Build(summaries[i].Content)
	}
	return summaries
}

// recordValidationFailure はバリデーション失敗メトリクスを記録する。
func (s *Service) recordValidationFailure() {
	if s.metrics != nil {
		s.metrics.RecordValidationFailure()
	}
}

// parsePublicationDate は公開日ヒント文字列を日時として解釈する。
func parsePublicationDate(hint string) (time.Time, error) {
	if hint == "" {
		return time.Time{}, fmt.Errorf("publication date hint is empty")
	}
	for _, layout := range publicationDateLayouts {
		if t, err := time.ParseInLocation(layout, hint, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported publication date format: %q", hint)
}
