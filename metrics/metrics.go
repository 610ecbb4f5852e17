// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values
const (
	StatusOK    = "ok"
	StatusError = "error"

	ResultGranted = "granted"
	ResultDenied  = "denied"
)

var (
	storeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garkas_store_operations_total",
			Help: "Total event store operations",
		},
		[]string{"operation", "status"},
	)

	activeSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garkas_store_subscribers",
			Help: "Current number of live snapshot subscribers",
		},
	)

	snapshotEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garkas_snapshot_events",
			Help: "Number of events in the latest snapshot",
		},
	)

	accessAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garkas_access_attempts_total",
			Help: "Access code checks by result",
		},
		[]string{"result"},
	)

	importedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garkas_imported_records_total",
			Help: "Imported event records by status",
		},
		[]string{"status"},
	)
)

// ObserveStoreOperation records one store call
func ObserveStoreOperation(operation string, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	storeOperations.WithLabelValues(operation, status).Inc()
}

func SubscriberAdded()   { activeSubscribers.Inc() }
func SubscriberRemoved() { activeSubscribers.Dec() }

// SetSnapshotSize records the size of the latest broadcast snapshot
func SetSnapshotSize(n int) {
	snapshotEvents.Set(float64(n))
}

// ObserveAccess records one access gate check
func ObserveAccess(granted bool) {
	result := ResultDenied
	if granted {
		result = ResultGranted
	}
	accessAttempts.WithLabelValues(result).Inc()
}

// ObserveImport records one imported record
func ObserveImport(err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	importedRecords.WithLabelValues(status).Inc()
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
