// Package metrics defines the custom Prometheus metrics of the smart facility
// service. Metrics are registered with the default registry on import through
// promauto, so exposing /metrics is enough to publish them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "facility"

// ── Booking and ticket metrics ────────────────────────────────────────────────

// BookingsCreatedTotal counts bookings persisted as PENDING.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created.",
	},
)

// TicketsCreatedTotal counts maintenance tickets opened.
// Label:
//   - priority: LOW, MEDIUM, HIGH or CRITICAL
var TicketsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of maintenance tickets created, by priority.",
	},
	[]string{"priority"},
)

// StatusChangesTotal counts status overwrites.
// Labels:
//   - entity: "booking" or "ticket"
//   - status: the status written
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of booking and ticket status updates.",
	},
	[]string{"entity", "status"},
)

// ── Attachment metrics ────────────────────────────────────────────────────────

// AttachmentBytes observes the size of stored attachments.
var AttachmentBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "attachment_bytes",
		Help:      "Size of stored ticket attachments in bytes.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
	},
)

// AttachmentErrorsTotal counts rejected or failed uploads.
// Label:
//   - reason: "empty", "too_large", "ticket_not_found" or "io"
var AttachmentErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attachment_errors_total",
		Help:      "Total number of attachment uploads that were rejected or failed.",
	},
	[]string{"reason"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "disabled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SpaceCacheTotal counts active-space cache lookups.
// Label:
//   - result: "hit" or "miss"
var SpaceCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "space_cache_total",
		Help:      "Total number of active-space cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Activity dispatcher metrics ───────────────────────────────────────────────

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts events discarded because a worker channel was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity events dropped because the queue was full.",
	},
)

// ActivityWriteDuration measures how long persisting one activity event takes.
// Label:
//   - result: "ok" or "error"
var ActivityWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_write_duration_seconds",
		Help:      "Duration of activity event persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
