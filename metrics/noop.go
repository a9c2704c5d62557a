// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

// noopMeters discards everything. It is the single type returned for
// every metric kind by the noop backend, which is why a type assertion
// against it is enough to tell a test that no real backend is active.
type noopMeters struct{}

func (*noopMeters) Add(int64)                                  {}
func (*noopMeters) AddWithLabel(int64, map[string]string)      {}
func (*noopMeters) Observe(int64)                              {}
func (*noopMeters) ObserveWithLabels(int64, map[string]string) {}

type noopMeterSet struct{}

func defaultNoopMetrics() meterSet { return noopMeterSet{} }

func (noopMeterSet) newCounter(string) CounterMetric                                   { return &noopMeters{} }
func (noopMeterSet) newCounterVec(string, []string) CounterVecMetric                   { return &noopMeters{} }
func (noopMeterSet) newGauge(string) GaugeMetric                                       { return &noopMeters{} }
func (noopMeterSet) newGaugeVec(string, []string) GaugeVecMetric                       { return &noopMeters{} }
func (noopMeterSet) newHistogram(string, []float64) HistogramMetric                    { return &noopMeters{} }
func (noopMeterSet) newHistogramVec(string, []string, []float64) HistogramVecMetric {
	return &noopMeters{}
}
