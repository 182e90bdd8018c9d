package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batyrbol_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batyrbol_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batyrbol_llm_requests_total",
			Help: "Total number of language model requests",
		},
		[]string{"provider", "status"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batyrbol_llm_request_duration_seconds",
			Help:    "Language model request duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batyrbol_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"bucket"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "batyrbol_active_sessions",
			Help: "Number of active web sessions",
		},
	)

	BotUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batyrbol_bot_updates_total",
			Help: "Total number of Telegram updates by kind",
		},
		[]string{"kind"},
	)

	AnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batyrbol_answers_total",
			Help: "Total number of evaluated answers",
		},
		[]string{"result"},
	)
)
