package daemon

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts daemon requests.
type Metrics struct {
	requests    *prometheus.CounterVec
	connections prometheus.Gauge
}

// NewMetrics registers the daemon collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calleditor",
			Subsystem: "daemon",
			Name:      "requests_total",
			Help:      "Daemon commands by name and result.",
		}, []string{"cmd", "result"}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "calleditor",
			Subsystem: "daemon",
			Name:      "connections",
			Help:      "Open client connections.",
		}),
	}
	reg.MustRegister(m.requests, m.connections)
	return m
}

func (m *Metrics) request(cmd string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.requests.WithLabelValues(cmd, result).Inc()
}

func (m *Metrics) connected(delta float64) {
	if m == nil {
		return
	}
	m.connections.Add(delta)
}
