package article

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hitoshi/blogman/internal/model"
)

// titleMaxLength はタイトルの最大文字数。
const titleMaxLength = 128

// validateArticle は記事候補をデータモデル不変条件に対して検証し、
// 違反メッセージの一覧を返す。違反がなければ空を返す。
// フレームワークに依存しない純粋な述語関数の合成として実装する。
func validateArticle(a *model.Article) []string {
	var violations []string

	if isBlank(a.Title) {
		violations = append(violations, "タイトルは必須です")
	} else if utf8.RuneCountInString(a.Title) > titleMaxLength {
		violations = append(violations, fmt.Sprintf("タイトルは%d文字以内で指定してください", titleMaxLength))
	}

	if isBlank(a.Content) {
		violations = append(violations, "本文は必須です")
	}

	if !model.ValidStatus(string(a.Status)) {
		violations = append(violations, fmt.Sprintf("ステータスは %s のいずれかを指定してください", model.StatusValuesString()))
	}

	if a.AuthorID <= 0 {
		violations = append(violations, "著者は必須です")
	}

	return violations
}

// isBlank は空白のみの文字列を空とみなす述語。
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
