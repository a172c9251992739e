package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipeclub_gateway_requests_total",
		Help: "API requests by outcome (ok, api_error, transport_error, decode_error).",
	}, []string{"outcome"})

	StoreFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipeclub_store_failures_total",
		Help: "Store operations that settled in the failure branch, by store.",
	}, []string{"store"})

	StaleResponsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipeclub_stale_responses_total",
		Help: "Responses discarded because a newer invocation of the same operation superseded them.",
	})
)
