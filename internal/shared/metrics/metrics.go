package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	surveysSubmittedTotal         atomic.Uint64
	recommendationsGeneratedTotal atomic.Uint64
	recommendationRunsTotal       atomic.Uint64
	recommendationReviewsTotal    atomic.Uint64
	loginFailuresTotal            atomic.Uint64

	generationDuration = newHistogram([]float64{0.1, 0.5, 1, 5, 10, 50, 100, 500})
)

// IncSurveysSubmitted counts a stored questionnaire submission.
func IncSurveysSubmitted() {
	surveysSubmittedTotal.Add(1)
}

// AddRecommendationsGenerated counts one generation run producing n recommendations.
func AddRecommendationsGenerated(n int) {
	recommendationRunsTotal.Add(1)
	if n > 0 {
		recommendationsGeneratedTotal.Add(uint64(n))
	}
}

// IncRecommendationReviews counts clinician status or text changes.
func IncRecommendationReviews() {
	recommendationReviewsTotal.Add(1)
}

// IncLoginFailures counts rejected password logins.
func IncLoginFailures() {
	loginFailuresTotal.Add(1)
}

// ObserveGenerationDuration records a generation run duration.
func ObserveGenerationDuration(d time.Duration) {
	value := float64(d.Microseconds()) / 1000.0
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "surveys_submitted_total", "Total questionnaires submitted", surveysSubmittedTotal.Load())
	writeCounter(&buf, "recommendation_runs_total", "Total recommendation generation runs", recommendationRunsTotal.Load())
	writeCounter(&buf, "recommendations_generated_total", "Total recommendations generated", recommendationsGeneratedTotal.Load())
	writeCounter(&buf, "recommendation_reviews_total", "Total clinician recommendation reviews", recommendationReviewsTotal.Load())
	writeCounter(&buf, "login_failures_total", "Total rejected logins", loginFailuresTotal.Load())
	writeHistogram(&buf, "recommendation_generation_duration_ms", "Recommendation generation duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket whose bound it does not exceed.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

// writeHistogram emits cumulative buckets; counts hold per-bucket hits.
func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
