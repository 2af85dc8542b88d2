// Package metrics defines and registers all custom Prometheus metrics for the
// SB Works marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - usertype: "freelancer", "client" or "admin"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered, by usertype.",
	},
	[]string{"usertype"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_request", "user_not_found", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)

// ── Project metrics ───────────────────────────────────────────────────────────

var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects posted.",
	},
)

// ProjectTransitionsTotal counts applied status transitions.
// Label:
//   - to: the new project status (e.g. "In Progress")
var ProjectTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_transitions_total",
		Help:      "Total number of project status transitions, by target status.",
	},
	[]string{"to"},
)

// ── Domain event metrics ──────────────────────────────────────────────────────

// EventsPublishedTotal counts domain events handed to the broker.
// Labels:
//   - type: event type (e.g. "user.registered")
//   - result: "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of domain events published, by type and result.",
	},
	[]string{"type", "result"},
)

// EventsDroppedTotal counts events that could not be enqueued.
var EventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of domain events dropped before publishing, by reason.",
	},
	[]string{"reason"},
)

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventPublishDuration measures how long the broker takes to accept one event.
var EventPublishDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_publish_duration_seconds",
		Help:      "Duration of a single domain event publish.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

var ChatConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chat_connections",
		Help:      "Number of open chat websocket connections.",
	},
)

// ChatMessagesTotal counts relayed chat messages.
// Label:
//   - result: "delivered" or "dropped" (slow receiver)
var ChatMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Total number of chat messages relayed, by result.",
	},
	[]string{"result"},
)
