package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LoginsTotal counts login attempts by outcome (success, failure).
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_logins_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// ActiveSessions is the number of live server-side sessions (session mode only).
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "forum_active_sessions",
			Help: "Number of live server-side sessions",
		},
	)

	// PostsCreatedTotal counts posts created since process start.
	PostsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_posts_created_total",
			Help: "Total number of posts created",
		},
	)

	// CommentsCreatedTotal counts comments created since process start.
	CommentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_comments_created_total",
			Help: "Total number of comments created",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestDuration, RequestTotal,
			LoginsTotal, ActiveSessions,
			PostsCreatedTotal, CommentsCreatedTotal,
		)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/comments/123 -> /api/comments/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncLogins increments the login counter for the given outcome (success, failure).
func IncLogins(outcome string) {
	LoginsTotal.WithLabelValues(outcome).Inc()
}

// SetActiveSessions records the current live session count.
func SetActiveSessions(n int) {
	ActiveSessions.Set(float64(n))
}

// IncPostsCreated increments the created-posts counter.
func IncPostsCreated() {
	PostsCreatedTotal.Inc()
}

// IncCommentsCreated increments the created-comments counter.
func IncCommentsCreated() {
	CommentsCreatedTotal.Inc()
}
