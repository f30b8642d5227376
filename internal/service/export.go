package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/repository"
)

const scheduleSheet = "Schedule"

// ExportService renders a month of shifts as an xlsx workbook.
type ExportService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewExportService(store *repository.Store, logger *slog.Logger) *ExportService {
	return &ExportService{store: store, logger: logger}
}

// ParseYearMonth parses "YYYY-MM" into the first day of that month.
func ParseYearMonth(s string) (model.Date, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return model.Date{}, &ValidationError{Field: "year_month", Message: "must be YYYY-MM"}
	}
	return model.DateOf(t), nil
}

// WriteMonth writes the schedule of the month starting at first to w.  The
// sheet has one row per day and one column per employee; the last row
// totals hours per employee.
func (s *ExportService) WriteMonth(ctx context.Context, first model.Date, w io.Writer) error {
	last := model.DateOf(first.AddDate(0, 1, -1))

	var employees []model.Employee
	var shifts []model.Shift
	err := s.store.Session(ctx, true, func(sess *repository.Session) error {
		var err error
		if employees, err = sess.Employees.List(ctx); err != nil {
			return err
		}
		shifts, err = sess.Shifts.List(ctx, repository.ShiftFilter{StartDate: &first, EndDate: &last})
		return err
	})
	if err != nil {
		return translate(err)
	}

	f, err := buildSchedule(first, last, employees, shifts)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WarnContext(ctx, "could not close workbook", slog.Any("error", err))
		}
	}()

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	s.logger.InfoContext(ctx, "schedule exported",
		slog.String("month", first.Format("2006-01")), slog.Int("employees", len(employees)), slog.Int("shifts", len(shifts)))
	return nil
}

func buildSchedule(first, last model.Date, employees []model.Employee, shifts []model.Shift) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(scheduleSheet)
	if err != nil {
		_ = f.Close()
		return nil, errors.WithStack(err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, errors.WithStack(err)
	}

	set := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(scheduleSheet, cell, v)
	}

	set(1, 1, fmt.Sprintf("Shift schedule %s", first.Format("January 2006")))
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err == nil {
		_ = f.SetCellStyle(scheduleSheet, "A1", "A1", style)
	}

	const headerRow = 3
	set(1, headerRow, "Date")
	set(2, headerRow, "Day")
	column := make(map[uint64]int, len(employees))
	for i, e := range employees {
		column[e.ID] = i + 3
		set(i+3, headerRow, e.Name)
	}

	cells := map[[2]int][]string{}
	hours := map[uint64]float64{}
	for _, sh := range shifts {
		col, ok := column[sh.EmployeeID]
		if !ok {
			continue
		}
		row := headerRow + sh.ShiftDate.Day()
		key := [2]int{col, row}
		cells[key] = append(cells[key], fmt.Sprintf("%s %s-%s", sh.ShiftType, sh.StartTime.Format("15:04"), sh.EndTime.Format("15:04")))
		hours[sh.EmployeeID] += sh.Hours()
	}

	days := last.Day()
	for d := 1; d <= days; d++ {
		date := model.NewDate(first.Year(), first.Month(), d)
		set(1, headerRow+d, date.String())
		set(2, headerRow+d, date.Weekday().String()[:3])
	}
	for key, lines := range cells {
		set(key[0], key[1], strings.Join(lines, "\n"))
	}

	totalRow := headerRow + days + 1
	set(1, totalRow, "Total hours")
	for _, e := range employees {
		set(column[e.ID], totalRow, hours[e.ID])
	}

	if len(employees) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(employees) + 2)
		_ = f.SetColWidth(scheduleSheet, "C", lastCol, 22)
	}
	return f, nil
}
