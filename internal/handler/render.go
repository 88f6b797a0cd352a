package handler

import (
	"encoding/json"
	"encoding/xml"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/article"
	"github.com/hitoshi/blogman/internal/model"
)

const (
	formatQueryParam    = "_format"
	formatXML           = "xml"
	publicationDateView = "2006-01-02 15:04:05"
)

// articleView はレスポンスに含める記事サマリーの表現。
type articleView struct {
	ID              int64  `json:"id" xml:"id"`
	Title           string `json:"title" xml:"title"`
	Content         string `json:"content" xml:"content"`
	Excerpt         string `json:"excerpt" xml:"excerpt"`
	PublicationDate string `json:"publication_date" xml:"publication_date"`
	Status          string `json:"status" xml:"status"`
	Author          string `json:"author" xml:"author"`
}

// messageEnvelope はメッセージのみを持つ結果エンベロープ。
type messageEnvelope struct {
	XMLName xml.Name `json:"-" xml:"result"`
	Code    int      `json:"code" xml:"code"`
	Message string   `json:"message" xml:"message"`
}

// listEnvelope は記事一覧データを持つ結果エンベロープ。
// 空の一覧でもdataフィールドは常に出力する。
type listEnvelope struct {
	XMLName xml.Name      `json:"-" xml:"result"`
	Code    int           `json:"code" xml:"code"`
	Data    []articleView `json:"data" xml:"data>article"`
}

// toArticleViews はサマリーをレスポンス表現に変換する。
func toArticleViews(summaries []model.ArticleSummary) []articleView {
	views := make([]articleView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, articleView{
			ID:              s.ID,
			Title:           s.Title,
			Content:         s.Content,
			Excerpt:         s.Excerpt,
			PublicationDate: s.PublicationDate.Format(publicationDateView),
			Status:          string(s.Status),
			Author:          s.AuthorUsername,
		})
	}
	return views
}

// writeResult は結果エンベロープをレスポンスとして書き込む。
// HTTPステータスコードにはエンベロープのcodeをそのまま使用する。
// ?_format=xml が指定された場合はXML、それ以外はJSONで応答する。
func writeResult(w http.ResponseWriter, r *http.Request, result *article.Result) {
	var body interface{}
	if result.Message != "" {
		body = messageEnvelope{Code: result.Code, Message: result.Message}
	} else {
		body = listEnvelope{Code: result.Code, Data: toArticleViews(result.Articles)}
	}

	if r.URL.Query().Get(formatQueryParam) == formatXML {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(result.Code)
		if err := xml.NewEncoder(w).Encode(body); err != nil {
			slog.Error("failed to encode xml response", slog.String("error", err.Error()))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.Code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode json response", slog.String("error", err.Error()))
	}
}

// writeMessage は任意のコードとメッセージをエンベロープとして書き込む。
func writeMessage(w http.ResponseWriter, r *http.Request, code int, message string) {
	writeResult(w, r, &article.Result{Code: code, Message: message})
}
