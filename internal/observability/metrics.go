package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Purchase metrics
var (
	PurchaseOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buycmd_purchase_outcomes_total",
			Help: "Purchase attempts by outcome and weapon key.",
		},
		[]string{"outcome", "weapon"},
	)

	ConnectedPlayers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "buycmd_connected_players",
			Help: "Number of players with live purchase state.",
		},
	)
)
