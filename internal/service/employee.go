package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/shift-scheduler/internal/metrics"
	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/queue"
	"github.com/iliyamo/shift-scheduler/internal/repository"
)

// EmployeeService manages employee records.
type EmployeeService struct {
	store   *repository.Store
	events  queue.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewEmployeeService(store *repository.Store, events queue.Publisher, m *metrics.Metrics, logger *slog.Logger) *EmployeeService {
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &EmployeeService{store: store, events: events, metrics: m, logger: logger, now: time.Now}
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	var list []model.Employee
	err := s.store.Session(ctx, true, func(sess *repository.Session) error {
		var err error
		list, err = sess.Employees.List(ctx)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint64) (*model.Employee, error) {
	var e *model.Employee
	err := s.store.Session(ctx, true, func(sess *repository.Session) error {
		var err error
		e, err = sess.Employees.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (s *EmployeeService) Create(ctx context.Context, d model.EmployeeDraft) (*model.Employee, error) {
	if err := d.Validate(); err != nil {
		err = invalid(err)
		s.count("create", err)
		return nil, err
	}
	e := model.Employee{
		Name:         strings.TrimSpace(d.Name),
		Role:         strings.TrimSpace(d.Role),
		Availability: d.Availability,
	}
	err := s.store.Session(ctx, false, func(sess *repository.Session) error {
		return sess.Employees.Create(ctx, &e)
	})
	if err != nil {
		err = translate(err)
		s.count("create", err)
		return nil, err
	}
	s.count("create", nil)
	s.logger.InfoContext(ctx, "employee created", slog.Uint64("employee_id", e.ID))
	return &e, nil
}

// Update applies p to the stored employee.  Absent fields are kept and a
// null availability clears it.
func (s *EmployeeService) Update(ctx context.Context, id uint64, p model.EmployeePatch) (*model.Employee, error) {
	if err := p.Validate(); err != nil {
		err = invalid(err)
		s.count("update", err)
		return nil, err
	}
	var updated model.Employee
	err := s.store.Session(ctx, false, func(sess *repository.Session) error {
		cur, err := sess.Employees.GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated = p.Apply(*cur)
		return sess.Employees.Update(ctx, &updated)
	})
	if err != nil {
		err = translate(err)
		s.count("update", err)
		return nil, err
	}
	s.count("update", nil)
	return &updated, nil
}

// Delete removes the employee together with every shift it owns.
func (s *EmployeeService) Delete(ctx context.Context, id uint64) (*model.Removal, error) {
	var removed []uint64
	err := s.store.Session(ctx, false, func(sess *repository.Session) error {
		shifts, err := sess.Shifts.List(ctx, repository.ShiftFilter{EmployeeID: &id})
		if err != nil {
			return err
		}
		for _, sh := range shifts {
			removed = append(removed, sh.ID)
		}
		return sess.Employees.Delete(ctx, id)
	})
	if err != nil {
		err = translate(err)
		s.count("delete", err)
		return nil, err
	}

	s.count("delete", nil)
	s.logger.InfoContext(ctx, "employee deleted", slog.Uint64("employee_id", id), slog.Int("removed_shifts", len(removed)))
	ev := queue.ShiftEvent{
		Type:            queue.EmployeeDeleted,
		EmployeeID:      id,
		RemovedShiftIDs: removed,
		OccurredAt:      s.now().UTC().Format(time.RFC3339),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.metrics.Events.WithLabelValues(metrics.ResultDropped).Inc()
		s.logger.WarnContext(ctx, "employee event dropped", slog.Any("error", err))
	} else {
		s.metrics.Events.WithLabelValues(metrics.ResultPublished).Inc()
	}
	return &model.Removal{ID: id, Deleted: true}, nil
}

func (s *EmployeeService) count(op string, err error) {
	s.metrics.EmployeeOperations.WithLabelValues(op, outcome(err)).Inc()
}
