package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	chatMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iwacu",
			Name:      "chat_messages_total",
			Help:      "Chat messages handled, by classified intent and language.",
		},
		[]string{"intent", "lang"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "iwacu",
			Name:      "bookings_created_total",
			Help:      "Accepted reservations.",
		},
	)

	bookingsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iwacu",
			Name:      "bookings_rejected_total",
			Help:      "Rejected reservations by reason.",
		},
		[]string{"reason"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iwacu",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(chatMessages, bookingsCreated, bookingsRejected, httpRequests)
	})
}

// IncChat counts one handled chat message.
func IncChat(intent, lang string) {
	chatMessages.WithLabelValues(intent, lang).Inc()
}

// IncBookingCreated counts one accepted reservation.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingRejected counts one rejection with its reason label.
func IncBookingRejected(reason string) {
	bookingsRejected.WithLabelValues(reason).Inc()
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}
