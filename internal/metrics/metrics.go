// Package metrics holds the Prometheus collectors of the notification worker.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eurekastreams"

// Translation outcomes.
const (
	ResultBatch    = "batch"
	ResultNone     = "none"
	ResultDisabled = "disabled"
	ResultError    = "error"
)

var (
	RequestsTranslated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_requests_total",
		Help:      "Notification requests processed, by request type and outcome.",
	}, []string{"request_type", "result"})

	NotificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Recipients handed to a notifier, by notifier and notification type.",
	}, []string{"notifier", "notification_type"})

	NotifierFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifier_failures_total",
		Help:      "Notifier calls that returned an error.",
	}, []string{"notifier", "notification_type"})

	DispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_dispatch_duration_seconds",
		Help:      "Time to translate and dispatch one notification request.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"request_type"})

	FilterDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_filter_duration_seconds",
		Help:      "Time spent in each activity filter stage.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	InAppPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "in_app_notifications_purged_total",
		Help:      "Expired in-app notifications deleted by the purge job.",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
