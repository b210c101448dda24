package intelligence

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeStale   = "stale"
)

var (
	aggregateCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm_intelligence",
		Name:      "aggregate_calls_total",
		Help:      "Chamadas aos procedimentos de agregação por resultado",
	}, []string{"call", "outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "crm_intelligence",
		Name:      "fetch_batch_duration_seconds",
		Help:      "Duração da busca conjunta dos quatro agregados",
		Buckets:   prometheus.DefBuckets,
	})

	changeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm_intelligence",
		Name:      "change_events_total",
		Help:      "Eventos do change feed que provocaram nova busca",
	}, []string{"table"})
)
