package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WagersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betting_wagers_placed_total",
		Help: "Number of wagers accepted.",
	})

	WagersSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betting_wagers_settled_total",
		Help: "Number of wagers settled after match resolution.",
	})

	MatchesSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betting_matches_simulated_total",
		Help: "Number of matches resolved by the simulator.",
	})

	RechargesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betting_recharges_total",
		Help: "Number of balance top-ups processed.",
	})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
