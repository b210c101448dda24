package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "crm_intelligence",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "Duração das requisições HTTP por rota",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "method", "code"})
