// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// Article はブログ記事を表す。
// AuthorIDは作成時に認証済みユーザーから設定され、以降変更されない。
type Article struct {
	ID              int64
	Title           string // エスケープ済み
	Content         string // エスケープ済み
	AuthorID        int64
	PublicationDate time.Time
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ArticleSummary は記事一覧用のサマリーを表す。
// usersテーブルとJOINして取得され、著者はユーザー名で表現される。
type ArticleSummary struct {
	ID              int64
	Title           string
	Content         string
	Excerpt         string // マークアップ除去済みの抜粋
	PublicationDate time.Time
	Status          Status
	AuthorUsername  string
}

// Status は記事の公開ステータスを表す。
type Status string

const (
	// StatusDraft は下書き状態。公開日は作成時点より未来でなければならない。
	StatusDraft Status = "draft"
	// StatusPublished は公開済み状態。
	StatusPublished Status = "published"
	// StatusArchived はアーカイブ済み状態。どのステータスからも遷移可能で、以降の遷移はない。
	StatusArchived Status = "archived"
)

// StatusValues は全ステータス値を定義順で返す。
func StatusValues() []Status {
	return []Status{StatusDraft, StatusPublished, StatusArchived}
}

// ValidStatus は任意の文字列がステータス集合に属するかを判定する。
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// StatusValuesString はステータス値をカンマ区切りで連結した文字列を返す。
// バリデーションエラーメッセージで使用する。
func StatusValuesString() string {
	values := StatusValues()
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = string(v)
	}
	return strings.Join(strs, ", ")
}
