package tomstore

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// storageMetrics holds one isolated VictoriaMetrics metric set per
// Storage, so that multiple Storage instances in the same process don't
// collide on metric names and can be torn down independently.
type storageMetrics struct {
	set *metrics.Set

	mounts     *metrics.Counter
	unmounts   *metrics.Counter
	reads      *metrics.Counter
	writes     *metrics.Counter
	inserts    *metrics.Counter
	removes    *metrics.Counter
	unmounted  *metrics.Counter
}

func newStorageMetrics() *storageMetrics {
	set := metrics.NewSet()
	m := &storageMetrics{
		set:       set,
		mounts:    set.NewCounter("tomkv_mounts_total"),
		unmounts:  set.NewCounter("tomkv_unmounts_total"),
		reads:     set.NewCounter("tomkv_reads_total"),
		writes:    set.NewCounter("tomkv_writes_total"),
		inserts:   set.NewCounter("tomkv_inserts_total"),
		removes:   set.NewCounter("tomkv_removes_total"),
		unmounted: set.NewCounter("tomkv_unmounted_path_total"),
	}
	return m
}

func (m *storageMetrics) unregister() {
	for _, name := range m.set.ListMetricNames() {
		m.set.UnregisterMetric(name)
	}
}

// WritePrometheus writes every metric tracked for s in Prometheus exposition
// format, for the HTTP control surface's /metrics endpoint.
func (s *Storage[K, M]) WritePrometheus(w io.Writer) {
	s.metrics.set.WritePrometheus(w)
}
