package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"pingscope/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

var invalidMetricChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

type Exporter struct {
	probeTotal     *prometheus.CounterVec
	registryErrors prometheus.Counter
}

func NewExporter(registry prometheus.Registerer, prefix string) (*Exporter, error) {
	normalizedPrefix := normalizeMetricPrefix(prefix)

	probeTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: normalizedPrefix + "_probe_total",
			Help: "Reachability probes by server and outcome.",
		},
		[]string{"server", "outcome"},
	)

	registryErrors := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: normalizedPrefix + "_registry_load_errors_total",
			Help: "Registry loads that failed and degraded to empty results.",
		},
	)

	for _, collector := range []prometheus.Collector{probeTotal, registryErrors} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("register prometheus collector: %w", err)
		}
	}

	return &Exporter{
		probeTotal:     probeTotal,
		registryErrors: registryErrors,
	}, nil
}

// ObserveProbe records one probe outcome.
func (e *Exporter) ObserveProbe(server string, reachable bool) {
	outcome := "unreachable"
	if reachable {
		outcome = "reachable"
	}

	e.probeTotal.WithLabelValues(server, outcome).Inc()
}

// ObserveRegistryError records a registry load failure swallowed by the
// directory loader.
func (e *Exporter) ObserveRegistryError() {
	e.registryErrors.Inc()
}

func normalizeMetricPrefix(prefix string) string {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return model.DefaultPrefix
	}

	normalized := invalidMetricChars.ReplaceAllString(trimmed, "_")
	normalized = strings.Trim(normalized, "_")
	if normalized == "" {
		return model.DefaultPrefix
	}

	return normalized
}
