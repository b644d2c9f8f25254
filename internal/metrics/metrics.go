package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	scheduleLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "receptionist",
			Name:      "business_hours_loads_total",
			Help:      "Count of business-hours loads by result.",
		},
		[]string{"result"},
	)

	scheduleSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "receptionist",
			Name:      "business_hours_saves_total",
			Help:      "Count of business-hours saves by result.",
		},
		[]string{"result"},
	)

	validationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "receptionist",
			Name:      "business_hours_validation_failures_total",
			Help:      "Count of saves rejected by the form validator.",
		},
	)

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "receptionist",
			Name:      "dashboard_api_requests_total",
			Help:      "Count of dashboard API requests by endpoint and status code.",
		},
		[]string{"endpoint", "code"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "receptionist",
			Name:      "onboarding_sessions_active",
			Help:      "Number of open onboarding form sessions.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(scheduleLoads, scheduleSaves, validationFailures, apiRequests, activeSessions)
	})
}

func IncScheduleLoad(result string) {
	scheduleLoads.WithLabelValues(result).Inc()
}

func IncScheduleSave(result string) {
	scheduleSaves.WithLabelValues(result).Inc()
}

func IncValidationFailure() {
	validationFailures.Inc()
}

func IncAPIRequest(endpoint, code string) {
	apiRequests.WithLabelValues(endpoint, code).Inc()
}

func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
