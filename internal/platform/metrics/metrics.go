// Package metrics holds the Prometheus collectors for the intake service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Methods are safe
// to call on a nil receiver so services can run without instrumentation.
type Metrics struct {
	WizardTransitions   *prometheus.CounterVec
	WizardExits         *prometheus.CounterVec
	IdentityResolutions *prometheus.CounterVec
	Submissions         *prometheus.CounterVec
	PaymentOutcomes     *prometheus.CounterVec
	LifecycleChanges    *prometheus.CounterVec
	CollaboratorLatency *prometheus.HistogramVec
	DraftStoreErrors    *prometheus.CounterVec
	CircuitState        *prometheus.GaugeVec
}

// New creates and registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		WizardTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rxintake_wizard_transitions_total",
			Help: "Wizard step transitions by source step and direction",
		}, []string{"step", "direction"}),
		WizardExits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rxintake_wizard_exits_total",
			Help: "Wizard terminal exits by kind",
		}, []string{"exit"}),
		IdentityResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rxintake_identity_resolutions_total",
			Help: "Identity resolution outcomes",
		}, []string{"outcome"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rxintake_submissions_total",
			Help: "Draft submissions by result (submitted, degraded, reconciled)",
		}, []string{"result"}),
		PaymentOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rxintake_payment_outcomes_total",
			Help: "Payment checkpoint outcomes by checkpoint and result",
		}, []string{"checkpoint", "result"}),
		LifecycleChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rxintake_lifecycle_transitions_total",
			Help: "Request status transitions driven through this service",
		}, []string{"to", "role"}),
		CollaboratorLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rxintake_collaborator_request_duration_seconds",
			Help:    "Latency of collaborator calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		DraftStoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rxintake_draft_store_errors_total",
			Help: "Draft store failures by operation",
		}, []string{"operation"}),
		CircuitState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rxintake_circuit_open",
			Help: "1 when the named circuit breaker is open",
		}, []string{"name"}),
	}
}

func (m *Metrics) IncWizardTransition(step, direction string) {
	if m == nil {
		return
	}
	m.WizardTransitions.WithLabelValues(step, direction).Inc()
}

func (m *Metrics) IncWizardExit(exit string) {
	if m == nil {
		return
	}
	m.WizardExits.WithLabelValues(exit).Inc()
}

func (m *Metrics) IncIdentityResolution(outcome string) {
	if m == nil {
		return
	}
	m.IdentityResolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncSubmission(result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(result).Inc()
}

func (m *Metrics) IncPaymentOutcome(checkpoint, result string) {
	if m == nil {
		return
	}
	m.PaymentOutcomes.WithLabelValues(checkpoint, result).Inc()
}

func (m *Metrics) IncLifecycleTransition(to, role string) {
	if m == nil {
		return
	}
	m.LifecycleChanges.WithLabelValues(to, role).Inc()
}

func (m *Metrics) ObserveCollaborator(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.CollaboratorLatency.WithLabelValues(operation, outcome).Observe(seconds)
}

func (m *Metrics) IncDraftStoreError(operation string) {
	if m == nil {
		return
	}
	m.DraftStoreErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) SetCircuitOpen(name string, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.CircuitState.WithLabelValues(name).Set(v)
}
