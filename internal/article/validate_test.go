package article

import (
	"strings"
	"testing"

	"github.com/hitoshi/blogman/internal/model"
)

func validArticle() *model.Article {
	return &model.Article{
		Title:    "test",
		Content:  "a valid test content",
		AuthorID: 1,
		Status:   model.StatusPublished,
	}
}

func TestValidateArticle_Valid(t *testing.T) {
	if violations := validateArticle(validArticle()); len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}
}

func TestValidateArticle_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Article)
		want   string
	}{
		{
			name:   "空のタイトル",
			mutate: func(a *model.Article) { a.Title = "" },
			want:   "タイトルは必須です",
		},
		{
			name:   "空白のみのタイトル",
			mutate: func(a *model.Article) { a.Title = "  \t " },
			want:   "タイトルは必須です",
		},
		{
			name:   "長すぎるタイトル",
			mutate: func(a *model.Article) { a.Title = strings.Repeat("あ", 129) },
			want:   "タイトルは128文字以内で指定してください",
		},
		{
			name:   "空の本文",
			mutate: func(a *model.Article) { a.Content = "" },
			want:   "本文は必須です",
		},
		{
			name:   "無効なステータス",
			mutate: func(a *model.Article) { a.Status = "bogus" },
			want:   "ステータスは draft, published, archived のいずれかを指定してください",
		},
		{
			name:   "著者なし",
			mutate: func(a *model.Article) { a.AuthorID = 0 },
			want:   "著者は必須です",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArticle()
			tt.mutate(a)

			violations := validateArticle(a)
			found := false
			for _, v := range violations {
				if v == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("violations = %v, want to contain %q", violations, tt.want)
			}
		})
	}
}

// TestValidateArticle_TitleBoundary は128文字ちょうどが有効であることを検証する。
func TestValidateArticle_TitleBoundary(t *testing.T) {
	a := validArticle()
	a.Title = strings.Repeat("あ", 128)

	if violations := validateArticle(a); len(violations) != 0 {
		t.Errorf("expected 128-rune title to be valid, got %v", violations)
	}
}

// TestValidateArticle_MultipleViolations は複数の違反がすべて列挙されることを検証する。
func TestValidateArticle_MultipleViolations(t *testing.T) {
	a := &model.Article{}

	violations := validateArticle(a)
	if len(violations) != 4 {
		t.Errorf("expected 4 violations for a zero-value article, got %d: %v", len(violations), violations)
	}
}
