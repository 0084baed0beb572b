package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the chat pipeline.
type ChatMetrics struct {
	messagesTotal   *prometheus.CounterVec
	adapterDegraded *prometheus.CounterVec
	resolveLatency  prometheus.Histogram
	feedbackTotal   *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total chat messages processed",
		}, []string{"status"}),
		adapterDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "chat",
			Name:      "adapter_degraded_total",
			Help:      "Total adapter calls that fell back to degraded behavior",
		}, []string{"adapter"}),
		resolveLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wellness",
			Subsystem: "chat",
			Name:      "send_latency_seconds",
			Help:      "Latency of the full send pipeline",
			Buckets:   prometheus.DefBuckets,
		}),
		feedbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "feedback",
			Name:      "submissions_total",
			Help:      "Total feedback submissions",
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.adapterDegraded, m.resolveLatency, m.feedbackTotal)
	return m
}

func (m *ChatMetrics) ObserveMessage(status string, seconds float64) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(status).Inc()
	m.resolveLatency.Observe(seconds)
}

func (m *ChatMetrics) ObserveAdapterDegraded(adapter string) {
	if m == nil {
		return
	}
	m.adapterDegraded.WithLabelValues(adapter).Inc()
}

func (m *ChatMetrics) ObserveFeedback(kind string) {
	if m == nil {
		return
	}
	m.feedbackTotal.WithLabelValues(kind).Inc()
}
