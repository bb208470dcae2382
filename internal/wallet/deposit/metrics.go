package deposit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tron_custody_monitor_sessions_active",
		Help: "Number of currently polling deposit monitor sessions.",
	})
	processedDeposits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tron_custody_deposits_processed_total",
		Help: "Deposits handed to the processor, by outcome.",
	}, []string{"outcome"})
)
