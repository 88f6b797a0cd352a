// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とハンドラー層から利用する。
type MetricsCollector interface {
	RecordArticleCreated()
	RecordArticleArchived()
	RecordValidationFailure()
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	articlesCreated    prometheus.Counter
	articlesArchived   prometheus.Counter
	validationFailures prometheus.Counter
	httpStatus         *prometheus.CounterVec
	requestDuration    prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		articlesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogman_articles_created_total",
			Help: "作成された記事の合計数",
		}),
		articlesArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogman_articles_archived_total",
			Help: "アーカイブされた記事の合計数",
		}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogman_validation_failures_total",
			Help: "バリデーション失敗の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogman_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogman_request_duration_seconds",
			Help:    "リクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.articlesCreated,
		c.articlesArchived,
		c.validationFailures,
		c.httpStatus,
		c.requestDuration,
	)

	return c
}

// RecordArticleCreated は記事作成を記録する。
func (c *Collector) RecordArticleCreated() {
	c.articlesCreated.Inc()
}

// RecordArticleArchived は記事アーカイブを記録する。
func (c *Collector) RecordArticleArchived() {
	c.articlesArchived.Inc()
}

// RecordValidationFailure はバリデーション失敗を記録する。
func (c *Collector) RecordValidationFailure() {
	c.validationFailures.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
