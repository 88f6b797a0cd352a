// Package security はアプリケーションのセキュリティ機能を提供する。
//
// MarkupEscaperService は記事の入力値をHTMLエンティティにエスケープし、
// 後段でレンダリングされる際のインジェクションからユーザーを保護する。
// ExcerptBuilderService は一覧表示用にマークアップを除去した抜粋を生成する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// excerptMaxRunes は抜粋の最大文字数。
const excerptMaxRunes = 200

// MarkupEscaperService は入力値エスケープ機能のインターフェースを定義する。
// 記事のタイトル・本文・ステータスの保存前に必ず適用される。
type MarkupEscaperService interface {
	// Escape はマークアップ上意味を持つ文字（< > & ' "）をHTMLエンティティに変換する。
	// タグの除去は行わず、入力の情報を失わない可逆な変換である。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等ではない点に注意: 二重適用は二重エスケープになる）。
	Escape(raw string) string
}

// ExcerptBuilderService は一覧用抜粋の生成機能のインターフェースを定義する。
type ExcerptBuilderService interface {
	// Build はエスケープ済み本文からマークアップを全て除去したプレーンテキスト抜粋を返す。
	// 抜粋は最大200文字に切り詰められる。
	Build(escapedContent string) string
}

// markupEscaper はMarkupEscaperServiceの実装。
type markupEscaper struct{}

// NewMarkupEscaper はMarkupEscaperServiceの新しいインスタンスを生成する。
func NewMarkupEscaper() *markupEscaper {
	return &markupEscaper{}
}

// Escape はマークアップ上意味を持つ文字をHTMLエンティティに変換する。
func (e *markupEscaper) Escape(raw string) string {
	return html.EscapeString(raw)
}

// excerptBuilder はExcerptBuilderServiceの実装。
// bluemondayのStrictPolicy（全タグ除去）を保持し、スレッドセーフに処理を行う。
type excerptBuilder struct {
	policy *bluemonday.Policy
}

// NewExcerptBuilder はExcerptBuilderServiceの新しいインスタンスを生成する。
// StrictPolicyは許可タグを一切持たないため、入力中のあらゆるマークアップが除去される。
func NewExcerptBuilder() *excerptBuilder {
	return &excerptBuilder{
		policy: bluemonday.StrictPolicy(),
	}
}

// Build はエスケープ済み本文からプレーンテキスト抜粋を生成する。
// 保存形式はエスケープ済みのため、一度アンエスケープして元のマークアップを復元し、
// StrictPolicyで全タグを除去した上で最大200文字に切り詰める。
func (b *excerptBuilder) Build(escapedContent string) string {
	raw := html.UnescapeString(escapedContent)
	plain := html.UnescapeString(b.policy.Sanitize(raw))
	plain = strings.TrimSpace(plain)

	runes := []rune(plain)
	if len(runes) > excerptMaxRunes {
		return string(runes[:excerptMaxRunes])
	}
	return plain
}
