package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rollbook_imports_total",
		Help: "Number of successful dashboard imports.",
	})
	importRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rollbook_import_rows_total",
		Help: "Number of rows processed by successful imports.",
	})
	importFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rollbook_import_failures_total",
		Help: "Number of imports rejected by the parser or store.",
	})
)
