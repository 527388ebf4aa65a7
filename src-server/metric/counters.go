package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// incremented once per RSVP parent address that could not be
	// resolved during an enrichment pass
	ResolutionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nostrcal_rsvp_resolution_failures_total",
		Help: "RSVP parent lookups that failed or returned nothing",
	})

	// latency of the most recent enrichment pass
	EnrichmentPassMicrosec = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nostrcal_enrichment_pass_microsec",
		Help: "The latency of the last enrichment pass in microseconds",
	})
)
