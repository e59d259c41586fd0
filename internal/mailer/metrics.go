package mailer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mail_tasks_queued_total",
		Help: "Number of send tasks accepted by the mail executor.",
	})
	taskPanics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mail_task_panics_total",
		Help: "Number of send tasks that panicked and were recovered.",
	})
	mailSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_sent_total",
		Help: "Number of emails delivered, labeled by provider.",
	}, []string{"provider"})
	mailFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_failed_total",
		Help: "Number of per-recipient send failures, labeled by provider.",
	}, []string{"provider"})
	mailDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mail_dropped_total",
		Help: "Number of notification requests dropped before submission (no usable recipients or executor closed).",
	})
	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mail_queue_depth",
		Help: "Number of send tasks waiting for a worker.",
	})
)
