// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はTalk2Meのアプリケーションメトリクスを収集する。
// state.Recorderおよびcoach.Recorderを実装する。
type Collector struct {
	storeWriteFail *prometheus.CounterVec
	moodsSaved     *prometheus.CounterVec
	journalSaved   prometheus.Counter
	postsSaved     prometheus.Counter
	postsFlagged   prometheus.Counter
	coachReplies   *prometheus.CounterVec
	httpStatus     *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		storeWriteFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talk2me_store_write_fail_total",
			Help: "キー別のストア書き込み失敗数",
		}, []string{"key"}),
		moodsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talk2me_moods_saved_total",
			Help: "記録されたムードチェックインの数（値別）",
		}, []string{"value"}),
		journalSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "talk2me_journal_entries_saved_total",
			Help: "保存されたジャーナルエントリの合計数",
		}),
		postsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "talk2me_feed_posts_saved_total",
			Help: "匿名壁へ保存された投稿の合計数",
		}),
		postsFlagged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "talk2me_feed_posts_flagged_total",
			Help: "モデレーションでフラグ語がマスクされた投稿の数",
		}),
		coachReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talk2me_coach_replies_total",
			Help: "生成されたコーチ応答の数（テンプレート別）",
		}, []string{"template"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talk2me_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.storeWriteFail,
		c.moodsSaved,
		c.journalSaved,
		c.postsSaved,
		c.postsFlagged,
		c.coachReplies,
		c.httpStatus,
	)

	return c
}

// RecordStoreWriteFailure はストア書き込み失敗を記録する。
func (c *Collector) RecordStoreWriteFailure(key string) {
	c.storeWriteFail.WithLabelValues(key).Inc()
}

// RecordMoodSaved はムードチェックインの保存を記録する。
func (c *Collector) RecordMoodSaved(value int) {
	c.moodsSaved.WithLabelValues(strconv.Itoa(value)).Inc()
}

// RecordJournalEntrySaved はジャーナルエントリの保存を記録する。
func (c *Collector) RecordJournalEntrySaved() {
	c.journalSaved.Inc()
}

// RecordFeedPostSaved は壁投稿の保存を記録する。
// flaggedはモデレーションでマスクが発生したかどうか。
func (c *Collector) RecordFeedPostSaved(flagged bool) {
	c.postsSaved.Inc()
	if flagged {
		c.postsFlagged.Inc()
	}
}

// RecordCoachReply はコーチ応答の生成を記録する。
func (c *Collector) RecordCoachReply(template string) {
	c.coachReplies.WithLabelValues(template).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
