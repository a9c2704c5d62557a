// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "scaleout_metrics"

type promMeterSet struct{}

func newPromMeterSet() meterSet { return promMeterSet{} }

type promCountMeter struct{ c prometheus.Counter }

func (m *promCountMeter) Add(n int64) { m.c.Add(float64(n)) }

func (promMeterSet) newCounter(name string) CounterMetric {
	c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
	prometheus.MustRegister(c)
	return &promCountMeter{c: c}
}

type promCountVecMeter struct{ cv *prometheus.CounterVec }

func (m *promCountVecMeter) AddWithLabel(n int64, labels map[string]string) {
	m.cv.With(prometheus.Labels(labels)).Add(float64(n))
}

func (promMeterSet) newCounterVec(name string, labels []string) CounterVecMetric {
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
	prometheus.MustRegister(cv)
	return &promCountVecMeter{cv: cv}
}

type promGaugeMeter struct{ g prometheus.Gauge }

func (m *promGaugeMeter) Add(n int64) { m.g.Add(float64(n)) }

func (promMeterSet) newGauge(name string) GaugeMetric {
	g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
	prometheus.MustRegister(g)
	return &promGaugeMeter{g: g}
}

type promGaugeVecMeter struct{ gv *prometheus.GaugeVec }

func (m *promGaugeVecMeter) AddWithLabel(n int64, labels map[string]string) {
	m.gv.With(prometheus.Labels(labels)).Add(float64(n))
}

func (promMeterSet) newGaugeVec(name string, labels []string) GaugeVecMetric {
	gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
	prometheus.MustRegister(gv)
	return &promGaugeVecMeter{gv: gv}
}

type promHistogramMeter struct{ h prometheus.Histogram }

func (m *promHistogramMeter) Observe(n int64) { m.h.Observe(float64(n)) }

func (promMeterSet) newHistogram(name string, buckets []float64) HistogramMetric {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: name, Buckets: buckets})
	prometheus.MustRegister(h)
	return &promHistogramMeter{h: h}
}

type promHistogramVecMeter struct{ hv *prometheus.HistogramVec }

func (m *promHistogramVecMeter) ObserveWithLabels(n int64, labels map[string]string) {
	m.hv.With(prometheus.Labels(labels)).Observe(float64(n))
}

func (promMeterSet) newHistogramVec(name string, labels []string, buckets []float64) HistogramVecMetric {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Buckets: buckets}, labels)
	prometheus.MustRegister(hv)
	return &promHistogramVecMeter{hv: hv}
}
