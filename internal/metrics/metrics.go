package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teesheet_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teesheet_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teesheet_bookings_total",
			Help: "Total number of booking attempts by outcome",
		},
		[]string{"status"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teesheet_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	SheetRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teesheet_sheet_requests_total",
			Help: "Total number of tee sheets computed",
		},
		[]string{"course"},
	)

	SlotUtilization = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "teesheet_slot_utilization",
			Help:    "Share of a slot's places taken, observed per slot on every computed sheet",
			Buckets: []float64{0, 0.25, 0.5, 0.75, 1},
		},
	)

	UnmatchedReservationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teesheet_unmatched_reservations_total",
			Help: "Reservations whose tee time is not on the computed grid",
		},
	)

	UnconfiguredCourseBookingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teesheet_unconfigured_course_bookings_total",
			Help: "Bookings made against a course name missing from the course catalog",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teesheet_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "teesheet_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

// RecordSheet counts one computed sheet and the fill ratio of each slot on it.
func RecordSheet(course string, fill []float64, unmatched int) {
	SheetRequestsTotal.WithLabelValues(course).Inc()
	for _, f := range fill {
		SlotUtilization.Observe(f)
	}
	UnmatchedReservationsTotal.Add(float64(unmatched))
}

func RecordUnconfiguredCourse() {
	UnconfiguredCourseBookingsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
