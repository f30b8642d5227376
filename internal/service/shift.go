package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/iliyamo/shift-scheduler/internal/metrics"
	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/queue"
	"github.com/iliyamo/shift-scheduler/internal/repository"
)

// ShiftService schedules shifts and keeps each employee's shifts on a given
// date free of overlaps.
type ShiftService struct {
	store   *repository.Store
	events  queue.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewShiftService(store *repository.Store, events queue.Publisher, m *metrics.Metrics, logger *slog.Logger) *ShiftService {
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &ShiftService{store: store, events: events, metrics: m, logger: logger, now: time.Now}
}

// Get returns ErrShiftNotFound when id does not resolve.
func (s *ShiftService) Get(ctx context.Context, id uint64) (*model.Shift, error) {
	var sh *model.Shift
	err := s.store.Session(ctx, true, func(sess *repository.Session) error {
		var err error
		sh, err = sess.Shifts.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return sh, nil
}

// List returns the shifts matching f, ordered by shift date.
func (s *ShiftService) List(ctx context.Context, f repository.ShiftFilter) ([]model.Shift, error) {
	var shifts []model.Shift
	err := s.store.Session(ctx, true, func(sess *repository.Session) error {
		var err error
		shifts, err = sess.Shifts.List(ctx, f)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return shifts, nil
}

// HasOverlap reports whether employeeID already has a shift on date that
// intersects [start, end).  excludeID leaves one shift out of the check.
func (s *ShiftService) HasOverlap(ctx context.Context, employeeID uint64, date model.Date, start, end model.DateTime, excludeID *uint64) (bool, error) {
	var found bool
	err := s.store.Session(ctx, true, func(sess *repository.Session) error {
		overlaps, err := sess.Shifts.FindOverlapping(ctx, employeeID, date, start, end, excludeID)
		found = len(overlaps) > 0
		return err
	})
	if err != nil {
		return false, translate(err)
	}
	return found, nil
}

// Create validates d and books it.  The employee row is locked before the
// overlap check so concurrent writers for the same employee serialize.
func (s *ShiftService) Create(ctx context.Context, d model.ShiftDraft) (*model.Shift, error) {
	sh, err := s.draftToShift(d)
	if err != nil {
		s.count("create", err)
		return nil, err
	}

	err = s.store.Session(ctx, false, func(sess *repository.Session) error {
		if err := sess.Employees.Lock(ctx, sh.EmployeeID); err != nil {
			return err
		}
		if err := checkOverlap(ctx, sess, sh, nil); err != nil {
			return err
		}
		return sess.Shifts.Create(ctx, &sh)
	})
	if err != nil {
		err = translate(err)
		s.count("create", err)
		return nil, err
	}

	s.count("create", nil)
	s.logger.InfoContext(ctx, "shift created",
		slog.Uint64("shift_id", sh.ID), slog.Uint64("employee_id", sh.EmployeeID), slog.String("shift_date", sh.ShiftDate.String()))
	s.publish(ctx, queue.NewShiftEvent(queue.ShiftCreated, sh, s.stamp()))
	return &sh, nil
}

// Update merges p onto the stored shift and re-runs every check Create
// performs against the merged result.
func (s *ShiftService) Update(ctx context.Context, id uint64, p model.ShiftPatch) (*model.Shift, error) {
	if err := p.Validate(); err != nil {
		err = invalid(err)
		s.count("update", err)
		return nil, err
	}
	if p.ShiftType.Present() && !p.ShiftType.Value.Valid() {
		err := &ValidationError{Field: "shift", Message: "must be one of MORNING, AFTERNOON, EVENING, NIGHT"}
		s.count("update", err)
		return nil, err
	}

	var updated model.Shift
	err := s.store.Session(ctx, false, func(sess *repository.Session) error {
		// The employee lock comes before the shift row lock, the same order
		// Create takes, and every read after it is a locking read.
		owner, err := sess.Shifts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if merged := p.Apply(*owner); !merged.StartTime.Before(merged.EndTime) {
			return ErrTimeOrdering
		}
		target := p.EmployeeID.Or(owner.EmployeeID)
		if err := sess.Employees.Lock(ctx, target); err != nil {
			return err
		}
		cur, err := sess.Shifts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		updated = p.Apply(*cur)
		if !updated.StartTime.Before(updated.EndTime) {
			return ErrTimeOrdering
		}
		if updated.EmployeeID != target {
			// reassigned between the two reads
			if err := sess.Employees.Lock(ctx, updated.EmployeeID); err != nil {
				return err
			}
		}
		if err := checkOverlap(ctx, sess, updated, &id); err != nil {
			return err
		}
		return sess.Shifts.Update(ctx, &updated)
	})
	if err != nil {
		err = translate(err)
		s.count("update", err)
		return nil, err
	}

	s.count("update", nil)
	s.logger.InfoContext(ctx, "shift updated", slog.Uint64("shift_id", id), slog.Uint64("employee_id", updated.EmployeeID))
	s.publish(ctx, queue.NewShiftEvent(queue.ShiftUpdated, updated, s.stamp()))
	return &updated, nil
}

// Delete removes the shift.  ErrShiftNotFound when id does not resolve.
func (s *ShiftService) Delete(ctx context.Context, id uint64) (*model.Removal, error) {
	var removed *model.Shift
	err := s.store.Session(ctx, false, func(sess *repository.Session) error {
		var err error
		if removed, err = sess.Shifts.GetForUpdate(ctx, id); err != nil {
			return err
		}
		return sess.Shifts.Delete(ctx, id)
	})
	if err != nil {
		err = translate(err)
		s.count("delete", err)
		return nil, err
	}

	s.count("delete", nil)
	s.logger.InfoContext(ctx, "shift deleted", slog.Uint64("shift_id", id))
	s.publish(ctx, queue.NewShiftEvent(queue.ShiftDeleted, *removed, s.stamp()))
	return &model.Removal{ID: id, Deleted: true}, nil
}

func (s *ShiftService) draftToShift(d model.ShiftDraft) (model.Shift, error) {
	if d.StartTime == nil || d.EndTime == nil || !d.StartTime.Before(*d.EndTime) {
		return model.Shift{}, ErrTimeOrdering
	}
	if d.EmployeeID == 0 {
		return model.Shift{}, &ValidationError{Field: "employee_id", Message: "is required"}
	}
	if d.ShiftDate == nil {
		return model.Shift{}, &ValidationError{Field: "shift_date", Message: "is required"}
	}
	if !d.ShiftType.Valid() {
		return model.Shift{}, &ValidationError{Field: "shift", Message: "must be one of MORNING, AFTERNOON, EVENING, NIGHT"}
	}
	return model.Shift{
		EmployeeID: d.EmployeeID,
		ShiftDate:  *d.ShiftDate,
		ShiftType:  d.ShiftType,
		Note:       d.Note,
		StartTime:  *d.StartTime,
		EndTime:    *d.EndTime,
	}, nil
}

func checkOverlap(ctx context.Context, sess *repository.Session, sh model.Shift, excludeID *uint64) error {
	overlaps, err := sess.Shifts.FindOverlapping(ctx, sh.EmployeeID, sh.ShiftDate, sh.StartTime, sh.EndTime, excludeID)
	if err != nil {
		return err
	}
	if len(overlaps) > 0 {
		return &ConflictError{EmployeeID: sh.EmployeeID, Overlaps: overlaps}
	}
	return nil
}

// publish hands ev to the broker once the transaction has committed.  A
// broker failure does not undo the write.
func (s *ShiftService) publish(ctx context.Context, ev queue.ShiftEvent) {
	if err := s.events.Publish(ctx, ev); err != nil {
		s.metrics.Events.WithLabelValues(metrics.ResultDropped).Inc()
		s.logger.WarnContext(ctx, "shift event dropped", slog.String("type", ev.Type), slog.Any("error", err))
		return
	}
	s.metrics.Events.WithLabelValues(metrics.ResultPublished).Inc()
}

func (s *ShiftService) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *ShiftService) count(op string, err error) {
	result := outcome(err)
	if result == metrics.ResultConflict {
		s.metrics.ShiftConflicts.Inc()
	}
	s.metrics.ShiftOperations.WithLabelValues(op, result).Inc()
}

// translate maps repository sentinels onto service errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrShiftNotFound):
		return ErrShiftNotFound
	case errors.Is(err, repository.ErrEmployeeNotFound):
		return ErrEmployeeNotFound
	}
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrShiftNotFound), errors.Is(err, ErrEmployeeNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrShiftConflict):
		return metrics.ResultConflict
	case errors.Is(err, ErrTimeOrdering), errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidPeriod):
		return metrics.ResultInvalid
	}
	return metrics.ResultError
}
