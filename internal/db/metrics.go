package db

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	vacuumRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mercurybridge_db_vacuum_total",
			Help: "Total number of VACUUM operations",
		},
	)

	dbSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mercurybridge_db_size_bytes",
			Help: "Database file size in bytes, including WAL and shared memory files",
		},
	)
)

func VacuumRunsInc() {
	vacuumRuns.Inc()
}

func DBSizeLog(sizeBytes int64) {
	dbSize.Set(float64(sizeBytes))
}
