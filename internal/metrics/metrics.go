package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "shift_scheduler"

const (
	LabelOperation = "operation"
	LabelResult    = "result"
	LabelPeriod    = "period"
)

// Result label values.
const (
	ResultOK        = "ok"
	ResultNotFound  = "not_found"
	ResultInvalid   = "invalid"
	ResultConflict  = "conflict"
	ResultError     = "error"
	ResultPublished = "published"
	ResultDropped   = "dropped"
)

// Metrics groups the collectors used by the services.  It is built once and
// handed to each component; nothing here is package-global.
type Metrics struct {
	ShiftOperations    *prometheus.CounterVec
	EmployeeOperations *prometheus.CounterVec
	ShiftConflicts     prometheus.Counter
	AnalyticsQueries   *prometheus.CounterVec
	Events             *prometheus.CounterVec
}

// New registers the collectors on reg.  A nil reg builds unregistered
// collectors, which is what tests use.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ShiftOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "shift_operations_total",
			Help:      "Shift create/update/delete calls by outcome",
		}, []string{LabelOperation, LabelResult}),
		EmployeeOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "employee_operations_total",
			Help:      "Employee create/update/delete calls by outcome",
		}, []string{LabelOperation, LabelResult}),
		ShiftConflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "shift_conflicts_total",
			Help:      "Shift writes rejected because of an overlapping shift",
		}),
		AnalyticsQueries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analytics_queries_total",
			Help:      "Analytics aggregations by resolved period",
		}, []string{LabelPeriod}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "shift_events_total",
			Help:      "Shift lifecycle events handed to the broker",
		}, []string{LabelResult}),
	}
}
