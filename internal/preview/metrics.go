package preview

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the preview server's Prometheus collectors.
type Metrics struct {
	requests *prom.CounterVec
	builds   *prom.CounterVec
}

// NewMetrics constructs the collectors and registers them with reg.
func NewMetrics(reg prom.Registerer) *Metrics {
	m := &Metrics{
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "site",
			Name:      "requests_total",
			Help:      "Preview requests by response status code",
		}, []string{"code"}),
		builds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "site",
			Name:      "builds_total",
			Help:      "Site builds by result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests, m.builds)
	return m
}

// ObserveBuild counts one finished build.
func (m *Metrics) ObserveBuild(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.builds.WithLabelValues(result).Inc()
}
