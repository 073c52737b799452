// Package metrics exposes Prometheus counters for contract runs and mock
// traffic. The demo and mock servers mount Handler at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ContractsRun counts contract tests executed.
	ContractsRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apipact_contracts_run_total",
		Help: "Number of contract tests executed.",
	})

	// ContractsFailed counts contract tests that did not pass.
	ContractsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apipact_contracts_failed_total",
		Help: "Number of contract tests that failed.",
	})

	// SchemaViolations counts individual schema validation errors found in
	// responses.
	SchemaViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apipact_schema_violations_total",
		Help: "Number of schema violations found in responses.",
	})

	// MockHits counts requests served by the mock server, by outcome.
	MockHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apipact_mock_requests_total",
		Help: "Number of requests served by the mock server.",
	}, []string{"matched"})
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
