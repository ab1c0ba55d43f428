package provisioning

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects run metrics on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	phaseDuration     *prometheus.HistogramVec
	declaredResources prometheus.Gauge
	operations        *prometheus.CounterVec
}

// NewMetrics creates metrics labelled with the stack name.
func NewMetrics(stackName string) *Metrics {
	labels := prometheus.Labels{"stack": stackName}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   "ec2stack",
				Subsystem:   "provisioning",
				Name:        "phase_duration_seconds",
				Help:        "Duration of provisioning phases in seconds",
				ConstLabels: labels,
				Buckets:     prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms to ~16s
			},
			[]string{"phase", "result"},
		),
		declaredResources: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   "ec2stack",
				Subsystem:   "stack",
				Name:        "declared_resources",
				Help:        "Number of resources declared in the stack",
				ConstLabels: labels,
			},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "ec2stack",
				Subsystem:   "stack",
				Name:        "operations_total",
				Help:        "Stack operations by kind and result",
				ConstLabels: labels,
			},
			[]string{"operation", "result"},
		),
	}
	m.registry.MustRegister(m.phaseDuration, m.declaredResources, m.operations)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObservePhase records a phase duration.
func (m *Metrics) ObservePhase(phase string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase, result(err)).Observe(d.Seconds())
}

// SetDeclaredResources records the resource count of the composed stack.
func (m *Metrics) SetDeclaredResources(n int) {
	if m == nil {
		return
	}
	m.declaredResources.Set(float64(n))
}

// RecordOperation counts a synth, deploy, or destroy run.
func (m *Metrics) RecordOperation(operation string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result(err)).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteToFile writes the metrics in the node_exporter textfile format.
func (m *Metrics) WriteToFile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
