// Package registry reads the per-identity registration log: an append-only
// text file of `<timestamp> <id> <path>` lines maintained by an external
// writer under an exclusive advisory lock. It provides an incremental
// Iterator which parses records from a byte stream through a fixed-capacity
// working buffer, and Find, which scans a locked log for the first record
// covering a candidate path.
package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifydb_registry_records_total",
		Help: "Cumulative number of registration records parsed from registry logs",
	})
	readBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifydb_registry_read_bytes_total",
		Help: "Cumulative number of registry log bytes read",
	})
)
