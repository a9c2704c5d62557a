// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a lazy-registration facade over
// github.com/prometheus/client_golang: every Counter/Gauge/Histogram
// (and their label-vector variants) is created on first access and
// cached by name, defaulting to a noop backend until
// InitializePrometheusMetrics is called. proof.Stats, cache.LRU and the
// admin HTTP surface are its consumers.
package metrics

import "sync"

// CounterMetric is a monotonically increasing value.
type CounterMetric interface {
	Add(n int64)
}

// CounterVecMetric is a CounterMetric partitioned by label values.
type CounterVecMetric interface {
	AddWithLabel(n int64, labels map[string]string)
}

// GaugeMetric is a value that can move up or down.
type GaugeMetric interface {
	Add(n int64)
}

// GaugeVecMetric is a GaugeMetric partitioned by label values.
type GaugeVecMetric interface {
	AddWithLabel(n int64, labels map[string]string)
}

// HistogramMetric records a distribution of observed values.
type HistogramMetric interface {
	Observe(n int64)
}

// HistogramVecMetric is a HistogramMetric partitioned by label values.
type HistogramVecMetric interface {
	ObserveWithLabels(n int64, labels map[string]string)
}

// meterSet is the backend a moment in this package's lifetime delegates
// to: the noop backend until InitializePrometheusMetrics swaps in the
// prometheus-backed one.
type meterSet interface {
	newCounter(name string) CounterMetric
	newCounterVec(name string, labels []string) CounterVecMetric
	newGauge(name string) GaugeMetric
	newGaugeVec(name string, labels []string) GaugeVecMetric
	newHistogram(name string, buckets []float64) HistogramMetric
	newHistogramVec(name string, labels []string, buckets []float64) HistogramVecMetric
}

var (
	mu      sync.Mutex
	metrics meterSet = defaultNoopMetrics()

	counters      = map[string]CounterMetric{}
	counterVecs   = map[string]CounterVecMetric{}
	gauges        = map[string]GaugeMetric{}
	gaugeVecs     = map[string]GaugeVecMetric{}
	histograms    = map[string]HistogramMetric{}
	histogramVecs = map[string]HistogramVecMetric{}
)

// InitializePrometheusMetrics swaps the backend to a prometheus-backed
// one. Call once, during process startup, before serving /metrics.
// Metrics created against the noop backend before this call stay noop;
// only subsequently-first-accessed names are prometheus-backed, which
// is why every metric name should be reached via a lazy accessor
// (Counter/Gauge/... or the LazyLoad* helpers) rather than resolved at
// package-init time.
func InitializePrometheusMetrics() {
	mu.Lock()
	defer mu.Unlock()
	metrics = newPromMeterSet()
	counters = map[string]CounterMetric{}
	counterVecs = map[string]CounterVecMetric{}
	gauges = map[string]GaugeMetric{}
	gaugeVecs = map[string]GaugeVecMetric{}
	histograms = map[string]HistogramMetric{}
	histogramVecs = map[string]HistogramVecMetric{}
}

// Counter returns the named CounterMetric, creating it against the
// current backend on first access.
func Counter(name string) CounterMetric {
	mu.Lock()
	defer mu.Unlock()
	if c, ok := counters[name]; ok {
		return c
	}
	c := metrics.newCounter(name)
	counters[name] = c
	return c
}

// CounterVec returns the named CounterVecMetric, creating it against
// the current backend on first access.
func CounterVec(name string, labels []string) CounterVecMetric {
	mu.Lock()
	defer mu.Unlock()
	if c, ok := counterVecs[name]; ok {
		return c
	}
	c := metrics.newCounterVec(name, labels)
	counterVecs[name] = c
	return c
}

// Gauge returns the named GaugeMetric, creating it against the current
// backend on first access.
func Gauge(name string) GaugeMetric {
	mu.Lock()
	defer mu.Unlock()
	if g, ok := gauges[name]; ok {
		return g
	}
	g := metrics.newGauge(name)
	gauges[name] = g
	return g
}

// GaugeVec returns the named GaugeVecMetric, creating it against the
// current backend on first access.
func GaugeVec(name string, labels []string) GaugeVecMetric {
	mu.Lock()
	defer mu.Unlock()
	if g, ok := gaugeVecs[name]; ok {
		return g
	}
	g := metrics.newGaugeVec(name, labels)
	gaugeVecs[name] = g
	return g
}

// Histogram returns the named HistogramMetric, creating it against the
// current backend on first access. buckets may be nil to accept the
// backend's default bucket boundaries.
func Histogram(name string, buckets []float64) HistogramMetric {
	mu.Lock()
	defer mu.Unlock()
	if h, ok := histograms[name]; ok {
		return h
	}
	h := metrics.newHistogram(name, buckets)
	histograms[name] = h
	return h
}

// HistogramVec returns the named HistogramVecMetric, creating it
// against the current backend on first access.
func HistogramVec(name string, labels []string, buckets []float64) HistogramVecMetric {
	mu.Lock()
	defer mu.Unlock()
	if h, ok := histogramVecs[name]; ok {
		return h
	}
	h := metrics.newHistogramVec(name, labels, buckets)
	histogramVecs[name] = h
	return h
}

// LazyLoadCounter returns a closure resolving Counter(name) at call
// time rather than at LazyLoad time, so a metric declared before
// InitializePrometheusMetrics still resolves against whichever backend
// is current when it is first actually used.
func LazyLoadCounter(name string) func() CounterMetric { return func() CounterMetric { return Counter(name) } }

// LazyLoadCounterVec is the CounterVec counterpart of LazyLoadCounter.
func LazyLoadCounterVec(name string, labels []string) func() CounterVecMetric {
	return func() CounterVecMetric { return CounterVec(name, labels) }
}

// LazyLoadGauge is the Gauge counterpart of LazyLoadCounter.
func LazyLoadGauge(name string) func() GaugeMetric { return func() GaugeMetric { return Gauge(name) } }

// LazyLoadGaugeVec is the GaugeVec counterpart of LazyLoadCounter.
func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMetric {
	return func() GaugeVecMetric { return GaugeVec(name, labels) }
}

// LazyLoadHistogram is the Histogram counterpart of LazyLoadCounter.
func LazyLoadHistogram(name string, buckets []float64) func() HistogramMetric {
	return func() HistogramMetric { return Histogram(name, buckets) }
}

// LazyLoadHistogramVec is the HistogramVec counterpart of
// LazyLoadCounter.
func LazyLoadHistogramVec(name string, labels []string, buckets []float64) func() HistogramVecMetric {
	return func() HistogramVecMetric { return HistogramVec(name, labels, buckets) }
}
