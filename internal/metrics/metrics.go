// Package metrics provides Prometheus metrics for webhook handling,
// intent detection, and outbound messaging API calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec

	// Intent detection metrics
	IntentDetectionsTotal   *prometheus.CounterVec
	IntentDetectionDuration prometheus.Histogram

	// Messaging API metrics
	MessagingCallsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "bmbot_webhook_requests_total",
				Help: "Total number of webhook requests by event type and status",
			},
			[]string{"event_type", "status"}, // event_type: message, suggestion, status, fulfillment
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bmbot_webhook_duration_seconds",
				Help:    "Webhook processing duration in seconds by event type",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"event_type"},
		),

		IntentDetectionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "bmbot_intent_detections_total",
				Help: "Total number of Dialogflow detectIntent calls by intent and status",
			},
			[]string{"intent", "status"}, // status: success, error
		),

		IntentDetectionDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bmbot_intent_detection_duration_seconds",
				Help:    "Dialogflow detectIntent call duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),

		MessagingCallsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "bmbot_messaging_calls_total",
				Help: "Total number of Business Messages API calls by kind and status",
			},
			[]string{"kind", "status"}, // kind: event, message
		),
	}
}

// RecordWebhook records a webhook request with its processing duration.
func (m *Metrics) RecordWebhook(eventType, status string, durationSeconds float64) {
	m.WebhookRequestsTotal.WithLabelValues(eventType, status).Inc()
	if durationSeconds > 0 {
		m.WebhookDurationSeconds.WithLabelValues(eventType).Observe(durationSeconds)
	}
}

// RecordIntentDetection records a detectIntent call outcome.
func (m *Metrics) RecordIntentDetection(intent, status string, durationSeconds float64) {
	m.IntentDetectionsTotal.WithLabelValues(intent, status).Inc()
	m.IntentDetectionDuration.Observe(durationSeconds)
}

// RecordMessagingCall records an outbound Business Messages API call.
func (m *Metrics) RecordMessagingCall(kind, status string) {
	m.MessagingCallsTotal.WithLabelValues(kind, status).Inc()
}
