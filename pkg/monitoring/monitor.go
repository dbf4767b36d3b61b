package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 分析流水线指标
	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_analyzed_total",
			Help: "Graded submissions ingested and analyzed",
		},
		[]string{"module_id", "error_kind"},
	)

	GapCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_gaps_detected_total",
			Help: "Skill gaps emitted by gap detection runs",
		},
		[]string{"severity"},
	)

	ReportCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Reports rendered, by kind",
		},
		[]string{"kind"},
	)

	// 实时反馈通道指标
	FeedOnlineClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_online_clients",
			Help: "Currently connected feedback feed clients",
		},
	)

	FeedMessageCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_messages_total",
			Help: "Feedback feed messages, by type and direction",
		},
		[]string{"type", "direction"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(SubmissionCounter)
	prometheus.MustRegister(GapCounter)
	prometheus.MustRegister(ReportCounter)
	prometheus.MustRegister(FeedOnlineClients)
	prometheus.MustRegister(FeedMessageCounter)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
