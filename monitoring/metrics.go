package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evofest_checkout_sessions_total",
			Help: "Checkout sessions opened with the payment gateway",
		},
		[]string{"status"},
	)

	WebhookNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evofest_webhook_notifications_total",
			Help: "Payment gateway notifications by outcome",
		},
		[]string{"result"},
	)

	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "evofest_bookings_created_total",
			Help: "Bookings persisted by webhook fulfillment",
		},
	)

	TicketEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evofest_ticket_emails_total",
			Help: "Guest ticket emails by outcome",
		},
		[]string{"status"},
	)

	CheckIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evofest_checkins_total",
			Help: "Guest check-in attempts by outcome",
		},
		[]string{"status"},
	)

	FulfillmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "evofest_fulfillment_duration_seconds",
			Help:    "Time spent in the webhook fulfillment transaction",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
)
