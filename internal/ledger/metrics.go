package ledger

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mercurybridge_ledger_writes_total",
			Help: "Total number of write-channel attempts recorded in the ledger",
		},
		[]string{"accepted"},
	)

	ledgerPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mercurybridge_ledger_pruned_total",
			Help: "Total number of ledger entries removed by retention pruning",
		},
	)
)

func LedgerWriteInc(accepted bool) {
	ledgerWrites.WithLabelValues(strconv.FormatBool(accepted)).Inc()
}

func LedgerPrunedAdd(n int64) {
	ledgerPruned.Add(float64(n))
}
