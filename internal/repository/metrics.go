package repository

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts repository outcomes.
type Metrics struct {
	fetches *prometheus.CounterVec
	writes  *prometheus.CounterVec
	entries prometheus.Gauge
}

// NewMetrics registers the repository collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calleditor",
			Name:      "fetch_total",
			Help:      "Call-log fetches by result.",
		}, []string{"result"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calleditor",
			Name:      "write_total",
			Help:      "Call-log writes by result.",
		}, []string{"result"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "calleditor",
			Name:      "fetched_entries",
			Help:      "Entries returned by the last successful fetch.",
		}),
	}
	reg.MustRegister(m.fetches, m.writes, m.entries)
	return m
}

func (m *Metrics) fetch(result string, count int) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(result).Inc()
	if result == resultOK {
		m.entries.Set(float64(count))
	}
}

func (m *Metrics) write(result string) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(result).Inc()
}

const (
	resultOK      = "ok"
	resultError   = "error"
	resultDenied  = "denied"
	resultInvalid = "invalid"
)
