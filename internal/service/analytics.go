package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/shift-scheduler/internal/metrics"
	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/repository"
)

// Period keywords.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

// Bounds reported for the all-time window.
var (
	MinDate = model.NewDate(1, time.January, 1)
	MaxDate = model.NewDate(9999, time.December, 31)
)

// Window is a resolved, inclusive analytics date range.
type Window struct {
	Label string
	Start model.Date
	End   model.Date
	All   bool
}

// ResolvePeriod turns a period keyword and optional reference date into a
// window.  Without both it covers all time; a reference date on its own is
// rejected.  today stands in for a missing reference date.
func ResolvePeriod(period string, refDate *model.Date, today model.Date) (Window, error) {
	p := strings.ToLower(strings.TrimSpace(period))
	if p == "" {
		if refDate != nil {
			return Window{}, &PeriodError{Reason: "ref_date requires a period"}
		}
		p = PeriodAll
	}

	ref := today
	if refDate != nil {
		ref = *refDate
	}

	switch p {
	case PeriodAll:
		return Window{Label: PeriodAll, Start: MinDate, End: MaxDate, All: true}, nil
	case PeriodDay:
		return Window{Label: p, Start: ref, End: ref}, nil
	case PeriodWeek:
		// Monday-first: Sunday is the last day of the week.
		offset := (int(ref.Weekday()) + 6) % 7
		start := ref.AddDays(-offset)
		return Window{Label: p, Start: start, End: start.AddDays(6)}, nil
	case PeriodMonth:
		start := model.NewDate(ref.Year(), ref.Month(), 1)
		end := model.DateOf(start.AddDate(0, 1, -1))
		return Window{Label: p, Start: start, End: end}, nil
	}
	return Window{}, &PeriodError{Period: period, Reason: "must be one of day, week, month, all"}
}

// AnalyticsService aggregates worked hours per employee.
type AnalyticsService struct {
	store   *repository.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewAnalyticsService(store *repository.Store, m *metrics.Metrics, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, metrics: m, logger: logger, now: time.Now}
}

// Aggregate returns one row per employee with at least one shift in the
// resolved window, ordered by employee id.
func (s *AnalyticsService) Aggregate(ctx context.Context, period string, refDate *model.Date) ([]model.EmployeeAnalytics, error) {
	w, err := ResolvePeriod(period, refDate, model.DateOf(s.now().UTC()))
	if err != nil {
		return nil, err
	}

	var rows []model.EmployeeAnalytics
	err = s.store.Session(ctx, true, func(sess *repository.Session) error {
		var from, to *model.Date
		if !w.All {
			from, to = &w.Start, &w.End
		}
		var err error
		rows, err = sess.Analytics.ByEmployee(ctx, from, to)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	for i := range rows {
		rows[i].Period = w.Label
		rows[i].StartDate = w.Start
		rows[i].EndDate = w.End
	}
	s.metrics.AnalyticsQueries.WithLabelValues(w.Label).Inc()
	s.logger.DebugContext(ctx, "analytics aggregated",
		slog.String("period", w.Label), slog.String("start", w.Start.String()), slog.String("end", w.End.String()), slog.Int("rows", len(rows)))
	return rows, nil
}

// AggregateByEmployee keeps only the rows of employeeID.  The result is
// empty when the employee had no shifts in the window.
func (s *AnalyticsService) AggregateByEmployee(ctx context.Context, employeeID uint64, period string, refDate *model.Date) ([]model.EmployeeAnalytics, error) {
	rows, err := s.Aggregate(ctx, period, refDate)
	if err != nil {
		return nil, err
	}
	out := []model.EmployeeAnalytics{}
	for _, r := range rows {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}
