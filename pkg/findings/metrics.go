// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package findings

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsFindings holds Prometheus metrics for finding conversion.
type metricsFindings struct {
	once sync.Once

	// Descriptors
	converted   prometheus.Counter
	passthrough prometheus.Counter
	zeroArity   prometheus.Counter
	paramCount  prometheus.Histogram

	// Bugs
	skipped prometheus.Counter
	emitted prometheus.Counter
}

var findMetrics metricsFindings

func (m *metricsFindings) init() {
	m.once.Do(func() {
		m.converted = prometheus.NewCounter(prometheus.CounterOpts{Name: "spotbench_descriptors_converted_total", Help: "Method descriptors converted to benchmark notation"})
		m.passthrough = prometheus.NewCounter(prometheus.CounterOpts{Name: "spotbench_descriptors_passthrough_total", Help: "Signatures kept verbatim because they are not method descriptors"})
		m.zeroArity = prometheus.NewCounter(prometheus.CounterOpts{Name: "spotbench_descriptors_zero_arity_total", Help: "Converted descriptors without parameters"})
		m.paramCount = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "spotbench_descriptor_params", Help: "Parameters per converted descriptor", Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12, 16}})

		m.skipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "spotbench_bugs_skipped_total", Help: "Bugs dropped because they have no primary method"})
		m.emitted = prometheus.NewCounter(prometheus.CounterOpts{Name: "spotbench_findings_emitted_total", Help: "Findings produced from analyzer bugs"})

		prometheus.MustRegister(
			m.converted, m.passthrough, m.zeroArity, m.paramCount,
			m.skipped, m.emitted,
		)
	})
}

func recordConverted(params int) {
	findMetrics.init()
	findMetrics.converted.Inc()
	findMetrics.paramCount.Observe(float64(params))
	if params == 0 {
		findMetrics.zeroArity.Inc()
	}
}

func recordPassthrough() { findMetrics.init(); findMetrics.passthrough.Inc() }
func recordSkipped() { findMetrics.init(); findMetrics.skipped.Inc() }
func recordEmitted(n int) { findMetrics.init(); findMetrics.emitted.Add(float64(n)) }

// WriteMetricsFile writes the default Prometheus registry to path in the text
// exposition format, suitable for the node exporter textfile collector.
func WriteMetricsFile(path string) error {
	findMetrics.init()
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
