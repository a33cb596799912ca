package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMetricPrefix(t *testing.T) {
	assert.Equal(t, "pingscope", normalizeMetricPrefix(""))
	assert.Equal(t, "pingscope", normalizeMetricPrefix("  "))
	assert.Equal(t, "pingscope", normalizeMetricPrefix("---"))
	assert.Equal(t, "my_app", normalizeMetricPrefix("my-app"))
	assert.Equal(t, "custom", normalizeMetricPrefix("custom"))
}

func TestExporterObservations(t *testing.T) {
	registry := prometheus.NewRegistry()
	exporter, err := NewExporter(registry, "test")
	require.NoError(t, err)

	exporter.ObserveProbe("A1", true)
	exporter.ObserveProbe("A1", true)
	exporter.ObserveProbe("B1", false)
	exporter.ObserveRegistryError()

	assert.Equal(t, float64(2), testutil.ToFloat64(exporter.probeTotal.WithLabelValues("A1", "reachable")))
	assert.Equal(t, float64(1), testutil.ToFloat64(exporter.probeTotal.WithLabelValues("B1", "unreachable")))
	assert.Equal(t, float64(1), testutil.ToFloat64(exporter.registryErrors))
}

func TestNewExporterRejectsDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	_, err := NewExporter(registry, "test")
	require.NoError(t, err)

	_, err = NewExporter(registry, "test")
	assert.Error(t, err)
}
