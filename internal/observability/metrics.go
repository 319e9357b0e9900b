package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the engine daemon.
type Metrics struct {
	registry      *prometheus.Registry
	Completions   *prometheus.CounterVec
	CompletionDur *prometheus.HistogramVec
	ChatTurns     *prometheus.CounterVec
	ChatDur       *prometheus.HistogramVec
	AgentSteps    *prometheus.CounterVec
	ActiveStreams *prometheus.GaugeVec
	TransportErrs *prometheus.CounterVec
	HistoryLen    prometheus.Gauge
}

// NewMetrics constructs a metrics registry with engine collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	completions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catsdk_completions_total",
		Help: "Completion requests by matched pattern",
	}, []string{"pattern"})

	completionDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catsdk_completion_duration_seconds",
		Help:    "Completion request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"pattern"})

	chatTurns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catsdk_chat_turns_total",
		Help: "Chat turns by classified intent",
	}, []string{"intent"})

	chatDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catsdk_chat_duration_seconds",
		Help:    "Chat response duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"intent"})

	agentSteps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catsdk_agent_steps_total",
		Help: "Agent steps executed by action",
	}, []string{"action"})

	active := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catsdk_transport_active_streams",
		Help: "Active streaming sessions by transport",
	}, []string{"transport"})

	trErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catsdk_transport_errors_total",
		Help: "Transport-level errors by transport and reason",
	}, []string{"transport", "reason"})

	historyLen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catsdk_history_turns",
		Help: "Current conversation history length in turns",
	})

	reg.MustRegister(completions, completionDur, chatTurns, chatDur, agentSteps, active, trErrors, historyLen)

	return &Metrics{
		registry:      reg,
		Completions:   completions,
		CompletionDur: completionDur,
		ChatTurns:     chatTurns,
		ChatDur:       chatDur,
		AgentSteps:    agentSteps,
		ActiveStreams: active,
		TransportErrs: trErrors,
		HistoryLen:    historyLen,
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordCompletion records a completion request and its duration.
func (m *Metrics) RecordCompletion(pattern string, duration time.Duration) {
	if m == nil {
		return
	}
	if pattern == "" {
		pattern = "fallback"
	}
	m.Completions.WithLabelValues(pattern).Inc()
	m.CompletionDur.WithLabelValues(pattern).Observe(duration.Seconds())
}

// RecordChatTurn records a chat exchange and its duration.
func (m *Metrics) RecordChatTurn(intent string, duration time.Duration, historyLen int) {
	if m == nil {
		return
	}
	if intent == "" {
		intent = "unknown"
	}
	m.ChatTurns.WithLabelValues(intent).Inc()
	m.ChatDur.WithLabelValues(intent).Observe(duration.Seconds())
	m.HistoryLen.Set(float64(historyLen))
}

// RecordAgentStep increments the step counter for an action.
func (m *Metrics) RecordAgentStep(action string) {
	if m == nil {
		return
	}
	if action == "" {
		action = "unknown"
	}
	m.AgentSteps.WithLabelValues(action).Inc()
}

// IncActiveStreams increments the active stream gauge.
func (m *Metrics) IncActiveStreams(transport string) {
	if m == nil {
		return
	}
	m.ActiveStreams.WithLabelValues(transport).Inc()
}

// DecActiveStreams decrements the active stream gauge.
func (m *Metrics) DecActiveStreams(transport string) {
	if m == nil {
		return
	}
	m.ActiveStreams.WithLabelValues(transport).Dec()
}

// RecordTransportError records a transport-level error.
func (m *Metrics) RecordTransportError(transport, reason string) {
	if m == nil {
		return
	}
	if transport == "" {
		transport = "unknown"
	}
	if reason == "" {
		reason = "unknown"
	}
	m.TransportErrs.WithLabelValues(transport, reason).Inc()
}
