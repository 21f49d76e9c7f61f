package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_sessions_created_total",
			Help: "Total number of sessions successfully scheduled",
		},
		[]string{"kind"},
	)

	BookingRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_booking_rejections_total",
			Help: "Total number of booking requests rejected by a feasibility check",
		},
		[]string{"reason"},
	)

	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_class_registrations_total",
			Help: "Total number of class registrations admitted",
		},
	)

	AvailabilityWindowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_availability_windows_total",
			Help: "Total number of trainer availability windows added",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_notifications_total",
			Help: "Total number of notification emails processed",
		},
		[]string{"type", "status"},
	)

	NotifyQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymdesk_notify_queue_length",
			Help: "Current length of the notification queue",
		},
	)

	PaymentsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSessionCreated(kind string) {
	SessionsCreatedTotal.WithLabelValues(kind).Inc()
}

func RecordBookingRejection(reason string) {
	BookingRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordRegistration() {
	RegistrationsTotal.Inc()
}

func RecordAvailabilityWindow() {
	AvailabilityWindowsTotal.Inc()
}

func RecordNotification(notifyType, status string) {
	NotificationsTotal.WithLabelValues(notifyType, status).Inc()
}

func RecordPayment() {
	PaymentsRecordedTotal.Inc()
}

func SetNotifyQueueLength(n int64) {
	NotifyQueueLength.Set(float64(n))
}
