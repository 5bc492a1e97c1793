package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	MessagesProcessed *prometheus.CounterVec
	MessagesFailed    *prometheus.CounterVec
	ProcessDuration   *prometheus.HistogramVec
	FeedbackRatings   *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the assistant metrics on reg. Each registry accepts one
// Metrics.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		MessagesProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_messages_processed_total",
				Help: "Total number of chat messages answered, by intent",
			},
			[]string{"intent"},
		),

		MessagesFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_messages_failed_total",
				Help: "Total number of chat messages that could not be answered",
			},
			[]string{"stage"},
		),

		ProcessDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatbot_process_duration_seconds",
				Help:    "Duration of message processing in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"intent"},
		),

		FeedbackRatings: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatbot_feedback_rating",
				Help:    "Ratings submitted for bot responses",
				Buckets: []float64{1, 2, 3, 4, 5},
			},
			[]string{"intent"},
		),

		gatherer: reg,
	}
}

func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
