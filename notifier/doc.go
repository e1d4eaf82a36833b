// Package notifier delivers the one-byte wake-up signal to the FIFO of a
// matched waiter. The FIFO open is non-blocking so that an absent listener
// is detected immediately rather than waited for.
package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "notifydb_notifications_total",
	Help: "Cumulative number of notification attempts, by outcome",
}, []string{"status"})
