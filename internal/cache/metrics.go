package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Store metrics, labelled by the Options.Metrics name so several stores can
// share the process.
var (
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipocas_archive_cache_hits_total",
			Help: "Total number of archive cache hits.",
		},
		[]string{"store"},
	)

	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipocas_archive_cache_misses_total",
			Help: "Total number of archive cache misses.",
		},
		[]string{"store"},
	)

	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipocas_archive_cache_evictions_total",
			Help: "Total number of payloads evicted from the archive cache.",
		},
		[]string{"store"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		EvictionsTotal,
	)
}

// entriesCollector reports the live entry count of one store at scrape time.
// Reading the size lazily keeps the count honest for backends where Redis
// expires fields on its own.
type entriesCollector struct {
	desc *prometheus.Desc
	size func() int
}

func (c *entriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.size()))
}

var (
	collectorMu sync.Mutex
	collectors  = make(map[string]*entriesCollector)
	// collectorReg is swappable so tests can use an isolated registry.
	collectorReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector tracks the entry count for a labelled store. An
// existing collector for the same label is replaced, so re-opening a store
// under a label that was used before is safe.
func registerEntriesCollector(label string, size func() int) {
	desc := prometheus.NewDesc(
		"pipocas_archive_cache_entries",
		"Current number of payloads in the archive cache.",
		nil,
		prometheus.Labels{"store": label},
	)
	c := &entriesCollector{desc: desc, size: size}

	collectorMu.Lock()
	defer collectorMu.Unlock()

	if old, ok := collectors[label]; ok {
		collectorReg.Unregister(old)
	}
	collectors[label] = c
	_ = collectorReg.Register(c)
}

func unregisterEntriesCollector(label string) {
	collectorMu.Lock()
	defer collectorMu.Unlock()

	if c, ok := collectors[label]; ok {
		collectorReg.Unregister(c)
		delete(collectors, label)
	}
}
